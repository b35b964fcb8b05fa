package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/pdv-labs/api-sales/internal/server/api"
	"github.com/pdv-labs/api-sales/internal/server/config"
	"github.com/pdv-labs/api-sales/internal/server/crypto"
	"github.com/pdv-labs/api-sales/internal/server/middleware"
	"github.com/pdv-labs/api-sales/internal/server/models"
	serverhttp "github.com/pdv-labs/api-sales/internal/server/net/http"
	"github.com/pdv-labs/api-sales/internal/server/service"
	svcmocks "github.com/pdv-labs/api-sales/internal/server/service/mocks"
	"github.com/pdv-labs/api-sales/internal/shared/logger"
)

const signingKey = "supersecretkeysupersecretkey123456"

func newTestRouter(t *testing.T) (http.Handler, *svcmocks.MockUsersRepo, *svcmocks.MockProductsRepo, *svcmocks.MockSalesRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := svcmocks.NewMockUsersRepo(ctrl)
	products := svcmocks.NewMockProductsRepo(ctrl)
	sales := svcmocks.NewMockSalesRepo(ctrl)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			Issuer:    "api-sales",
			Audience:  "api-sales-clients",
			AccessTTL: 1 * time.Minute,
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: signingKey,
			},
		},
		Password: config.PasswordConfig{BcryptCost: bcrypt.MinCost},
	}

	svc := service.NewServices(service.Repositories{
		Users:    users,
		Products: products,
		Sales:    sales,
	}, cfg)

	verifier := middleware.NewJWTVerifier(cfg.Auth.JWT.SigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	log := logger.NewHTTPLogger()

	h := api.NewHandler(svc, log, verifier)
	return serverhttp.NewRouter(h, svc.Auth, log), users, products, sales
}

func accessToken(t *testing.T, sub string) string {
	t.Helper()

	token, err := crypto.NewAccessToken(sub, crypto.JWTConfig{
		Issuer:     "api-sales",
		Audience:   "api-sales-clients",
		SigningKey: signingKey,
		AccessTTL:  1 * time.Minute,
	})
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}

// the catalog is open, no token required
func TestRouter_ProductsArePublic(t *testing.T) {
	router, _, products, _ := newTestRouter(t)

	products.EXPECT().
		List(gomock.Any()).
		Return([]models.Product{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestRouter_SalesRequireToken(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRouter_SalesWithToken(t *testing.T) {
	router, users, _, sales := newTestRouter(t)

	// the guard re-resolves the subject on every request
	users.EXPECT().
		GetByID(gomock.Any(), int64(7)).
		Return(&models.User{ID: 7, Email: "ana@mail.com"}, nil)

	sales.EXPECT().
		GetAll(gomock.Any()).
		Return([]models.Sale{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, "7"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
}

// signup is public, the rest of /users is guarded
func TestRouter_UserSignupPublicListGuarded(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d for unauthenticated list, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, rec.Code)
	}
}
