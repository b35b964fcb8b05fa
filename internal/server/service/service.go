// Package service contains the business logic of the application.
// It is the layer between the HTTP handlers (api) and the stores (repository).
package service

import (
	"context"

	"github.com/pdv-labs/api-sales/internal/server/config"
	"github.com/pdv-labs/api-sales/internal/server/crypto"
	"github.com/pdv-labs/api-sales/internal/server/models"
)

// Repositories is the set of store interfaces the service layer expects
// from the repository layer.
type Repositories struct {
	Users    UsersRepo
	Products ProductsRepo
	Sales    SalesRepo
}

// Services aggregates all application services.
type Services struct {
	Auth     *AuthService
	Users    *UsersService
	Products *ProductsService
	Sales    *SalesService
}

// NewServices wires all services. cfg feeds the auth service (JWT
// parameters) and the users service (bcrypt cost).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth: NewAuthService(repos.Users, crypto.JWTConfig{
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
			SigningKey: cfg.Auth.JWT.SigningKey,
			AccessTTL:  cfg.Auth.AccessTTL,
		}),
		Users:    NewUsersService(repos.Users, cfg.Password.BcryptCost),
		Products: NewProductsService(repos.Products),
		Sales:    NewSalesService(repos.Sales),
	}
}

// UpdateUserParams describes a partial user update; nil fields stay untouched.
type UpdateUserParams struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// UpdateProductParams describes a partial product update.
type UpdateProductParams struct {
	Code  *string
	Name  *string
	Price *float64
}

// UsersRepo is the users store.
type UsersRepo interface {
	Create(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id int64, p UpdateUserParams) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}

// ProductsRepo is the products store.
type ProductsRepo interface {
	Create(ctx context.Context, code, name string, price float64) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id int64, p UpdateProductParams) (*models.Product, error)
	Delete(ctx context.Context, id int64) (*models.Product, error)
}

// SalesRepo is the sales store (CRUD + join resolution).
type SalesRepo interface {
	Create(ctx context.Context, userID int64, productIDs []int64) (*models.Sale, error)
	GetAll(ctx context.Context) ([]models.Sale, error)
	GetByID(ctx context.Context, id int64) (*models.Sale, error)
	Update(ctx context.Context, id int64, userID *int64, productIDs []int64) (*models.Sale, error)
	Delete(ctx context.Context, id int64) (*models.Sale, error)
}
