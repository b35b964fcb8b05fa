// Package api is the HTTP client salesctl uses to talk to the server.
//
// The client wraps a base URL and a configured http.Client and exposes
// JSON helpers (POST/GET/PATCH/DELETE) with optional bearer auth.
//
// Behavior:
//   - the base URL is normalized (trailing "/" trimmed);
//   - Accept: application/json is always sent;
//   - Content-Type: application/json is sent only when a body is present;
//   - 204 No Content is success without reading the body;
//   - an empty response body (EOF while decoding) is not an error;
//   - non-2xx responses produce an error carrying the response body text
//     (or res.Status when the body is empty).
//
// NOTE: NewClient sets InsecureSkipVerify=true so a self-signed dev
// certificate works. Do not use this transport against production.
package api

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the sales backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL with a 10s timeout.
func NewClient(baseURL string) *Client {
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // dev only
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: tr,
		},
	}
}

// readAPIErrorBody turns a non-2xx response into an error with the body
// text, falling back to res.Status for an empty body.
func readAPIErrorBody(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = res.Status
	}
	return errors.New(msg)
}

// decodeJSONOrOK decodes JSON into resp. A nil resp skips decoding and
// io.EOF (empty body) is treated as success.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Client) do(method, path string, req any, resp any, authToken string) error {
	var buf bytes.Buffer
	if req != nil {
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
	}

	r, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		r.Header.Set("Authorization", "Bearer "+authToken)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIErrorBody(res)
	}
	if res.StatusCode == http.StatusNoContent {
		return nil
	}
	return decodeJSONOrOK(res.Body, resp)
}

// PostJSON sends a POST with req serialized as JSON.
func (c *Client) PostJSON(path string, req any, resp any, authToken string) error {
	return c.do(http.MethodPost, path, req, resp, authToken)
}

// GetJSON sends a GET and decodes the JSON response into resp.
func (c *Client) GetJSON(path string, resp any, authToken string) error {
	return c.do(http.MethodGet, path, nil, resp, authToken)
}

// PatchJSON sends a PATCH with req serialized as JSON.
func (c *Client) PatchJSON(path string, req any, resp any, authToken string) error {
	return c.do(http.MethodPatch, path, req, resp, authToken)
}

// DeleteJSON sends a DELETE and decodes the JSON response into resp.
func (c *Client) DeleteJSON(path string, resp any, authToken string) error {
	return c.do(http.MethodDelete, path, nil, resp, authToken)
}
