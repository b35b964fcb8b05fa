package tests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/pdv-labs/api-sales/internal/server/api"
	"github.com/pdv-labs/api-sales/internal/server/config"
	"github.com/pdv-labs/api-sales/internal/server/middleware"
	"github.com/pdv-labs/api-sales/internal/server/service"
	svcmocks "github.com/pdv-labs/api-sales/internal/server/service/mocks"
	"github.com/pdv-labs/api-sales/internal/shared/logger"
)

// NewTestHandler builds a Handler over mocked stores.
func NewTestHandler(t *testing.T) (*api.Handler, *svcmocks.MockUsersRepo, *svcmocks.MockProductsRepo, *svcmocks.MockSalesRepo) {
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
				SigningKey: "supersecretkeysupersecretkey123456", // >= 32
			},
		},
		Password: config.PasswordConfig{
			BcryptCost: bcrypt.MinCost,
		},
	}

	svc := service.NewServices(service.Repositories{
		Users:    users,
		Products: products,
		Sales:    sales,
	}, cfg)

	verifier := middleware.NewJWTVerifier(cfg.Auth.JWT.SigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	log := logger.NewHTTPLogger()

	return api.NewHandler(svc, log, verifier), users, products, sales
}

// withID injects the chi {id} URL parameter into the request context.
func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
