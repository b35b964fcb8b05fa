package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/pdv-labs/api-sales/internal/server/crypto"
	"github.com/pdv-labs/api-sales/internal/server/models"
	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
)

func TestHandler_Login_BadJSON(t *testing.T) {
	t.Parallel()

	h, _, _, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewBufferString("{bad json"))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

// missing fields come back as per-field localized messages
func TestHandler_Login_Validation(t *testing.T) {
	t.Parallel()

	h, _, _, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if body.Errors["password"] != "É necessário informar a senha." {
		t.Fatalf("unexpected password message: %q", body.Errors["password"])
	}
}

func TestHandler_Login_OK(t *testing.T) {
	t.Parallel()

	h, users, _, _ := NewTestHandler(t)

	password := "strongpassword"
	hash, err := crypto.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	users.EXPECT().
		GetByEmail(gomock.Any(), "ana@mail.com").
		Return(&models.User{ID: 7, Email: "ana@mail.com", PasswordHash: hash}, nil)

	body := bytes.NewBufferString(`{"email":"ana@mail.com","password":"strongpassword"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth", body)
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected non-empty token")
	}
}

// both failure modes surface as the same 404
func TestHandler_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	h, users, _, _ := NewTestHandler(t)

	users.EXPECT().
		GetByEmail(gomock.Any(), "ghost@mail.com").
		Return(nil, serr.ErrNotFound)

	body := bytes.NewBufferString(`{"email":"ghost@mail.com","password":"whatever1"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth", body)
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, rec.Code)
	}
}
