// Package http wires the HTTP routes of the sales backend.
//
// The package is responsible for:
//   - registering routes on the chi router;
//   - request-id assignment and request logging for all routes;
//   - the bearer-token guard on protected route groups.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pdv-labs/api-sales/internal/server/api"
	"github.com/pdv-labs/api-sales/internal/server/middleware"
	"github.com/pdv-labs/api-sales/internal/shared/logger"
)

// NewRouter creates and configures the HTTP router.
//
// Public routes: login, user signup, the whole product catalog and the
// swagger UI. Guarded routes: user reads/mutations and everything under
// /sales — the guard verifies the bearer token and re-resolves the user
// through resolver on every request.
func NewRouter(h *api.Handler, resolver middleware.UserResolver, log *logger.HTTPLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.LoggerMiddleware(log))

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// public routes
	r.Post("/auth", h.Login)
	r.Post("/users", h.CreateUser)

	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.CreateProduct)
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
		r.Patch("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})

	// guarded routes
	r.Group(func(r chi.Router) {
		r.Use(h.Verifier.Guard(resolver))

		r.Get("/users", h.ListUsers)
		r.Get("/users/{id}", h.GetUser)
		r.Patch("/users/{id}", h.UpdateUser)
		r.Delete("/users/{id}", h.DeleteUser)

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", h.CreateSale)
			r.Get("/", h.ListSales)
			r.Get("/{id}", h.GetSale)
			r.Patch("/{id}", h.UpdateSale)
			r.Delete("/{id}", h.DeleteSale)
		})
	})

	return r
}
