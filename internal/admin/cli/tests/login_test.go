package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/pdv-labs/api-sales/internal/admin/cli"
	"github.com/pdv-labs/api-sales/internal/admin/config"
)

func TestNewLoginCmd_Success_SavesToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Email != "ana@mail.com" {
			t.Fatalf("expected email ana@mail.com, got %q", req.Email)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"token": "token-1"})
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	credsPath := filepath.Join(t.TempDir(), "creds.json")

	app := &cli.App{
		ServerURL: srv.URL,
		CredsPath: credsPath,
		Creds:     &config.Credentials{},
	}

	cmd := cli.NewLoginCmd(app)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"--email", "ana@mail.com",
		"--password", "strongpassword",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if !strings.Contains(out.String(), "login ok") {
		t.Fatalf("expected success message, got %q", out.String())
	}

	saved, err := config.Load(credsPath)
	if err != nil {
		t.Fatalf("load creds: %v", err)
	}
	if saved.AccessToken != "token-1" {
		t.Fatalf("expected saved token, got %q", saved.AccessToken)
	}
}

// server-side error becomes the command error
func TestNewLoginCmd_BadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	app := &cli.App{
		ServerURL: srv.URL,
		CredsPath: filepath.Join(t.TempDir(), "creds.json"),
		Creds:     &config.Credentials{},
	}

	cmd := cli.NewLoginCmd(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--email", "ghost@mail.com",
		"--password", "whatever",
	})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error")
	}
}

// omitting --password falls back to the prompt seam
func TestNewLoginCmd_PromptSeam(t *testing.T) {
	orig := cli.ReadPassword
	t.Cleanup(func() { cli.ReadPassword = orig })

	cli.ReadPassword = func(cmd *cobra.Command, fromStdin bool) (string, error) {
		return "prompted-password", nil
	}

	var gotPassword string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotPassword = req.Password

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"token": "token-1"})
	})

	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	app := &cli.App{
		ServerURL: srv.URL,
		CredsPath: filepath.Join(t.TempDir(), "creds.json"),
		Creds:     &config.Credentials{},
	}

	cmd := cli.NewLoginCmd(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--email", "ana@mail.com"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotPassword != "prompted-password" {
		t.Fatalf("expected prompted password, got %q", gotPassword)
	}
}
