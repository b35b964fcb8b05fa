package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pdv-labs/api-sales/internal/server/crypto"
	"github.com/pdv-labs/api-sales/internal/server/middleware"
	"github.com/pdv-labs/api-sales/internal/server/models"
	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
)

const signingKey = "supersecretkeysupersecretkey123456"

func jwtCfg(ttl time.Duration) crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:     "api-sales",
		Audience:   "api-sales-clients",
		SigningKey: signingKey,
		AccessTTL:  ttl,
	}
}

// fakeResolver resolves any subject to a fixed user, or fails.
type fakeResolver struct {
	user *models.User
	err  error
}

func (f *fakeResolver) ResolveUser(ctx context.Context, subject string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

// guarded wraps a probe handler that records whether it ran and what
// user the guard put into the context.
func guarded(t *testing.T, resolver middleware.UserResolver) (http.Handler, *bool, **models.User) {
	t.Helper()

	v := middleware.NewJWTVerifier(signingKey, "api-sales", "api-sales-clients")

	called := false
	var seen *models.User

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if u, ok := middleware.UserFromContext(r.Context()); ok {
			seen = u
		}
		w.WriteHeader(http.StatusOK)
	})

	return v.Guard(resolver)(next), &called, &seen
}

func TestGuard_OK(t *testing.T) {
	resolver := &fakeResolver{user: &models.User{ID: 7, Email: "ana@mail.com"}}
	h, called, seen := guarded(t, resolver)

	token, err := crypto.NewAccessToken("7", jwtCfg(time.Minute))
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if !*called {
		t.Fatalf("expected next handler to run")
	}
	if *seen == nil || (*seen).ID != 7 {
		t.Fatalf("expected user 7 in context, got %+v", *seen)
	}
}

func TestGuard_MissingToken(t *testing.T) {
	h, called, _ := guarded(t, &fakeResolver{})

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if *called {
		t.Fatalf("next handler must not run")
	}
}

func TestGuard_BadSignature(t *testing.T) {
	h, _, _ := guarded(t, &fakeResolver{})

	otherCfg := jwtCfg(time.Minute)
	otherCfg.SigningKey = "anothersecretkeyanothersecretkey12"
	token, err := crypto.NewAccessToken("7", otherCfg)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestGuard_ExpiredToken(t *testing.T) {
	h, _, _ := guarded(t, &fakeResolver{})

	token, err := crypto.NewAccessToken("7", jwtCfg(-time.Minute))
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestGuard_WrongIssuer(t *testing.T) {
	h, _, _ := guarded(t, &fakeResolver{})

	cfg := jwtCfg(time.Minute)
	cfg.Issuer = "someone-else"
	token, err := crypto.NewAccessToken("7", cfg)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

// a valid token for a user that no longer exists is a plain 401,
// indistinguishable from a bad token
func TestGuard_DeletedUser(t *testing.T) {
	h, called, _ := guarded(t, &fakeResolver{err: serr.ErrNotFound})

	token, err := crypto.NewAccessToken("7", jwtCfg(time.Minute))
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if *called {
		t.Fatalf("next handler must not run")
	}
}

func TestExtractBearer(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
		{"", ""},
		{"  Bearer   spaced.token  ", "spaced.token"},
	}

	for _, c := range cases {
		if got := middleware.ExtractBearer(c.in); got != c.want {
			t.Fatalf("ExtractBearer(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
