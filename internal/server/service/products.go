package service

import (
	"context"

	"github.com/pdv-labs/api-sales/internal/server/models"
)

// ProductsService handles product CRUD. The store does the integrity
// work, this layer only exists to keep the api free of repository types.
type ProductsService struct {
	products ProductsRepo
}

func NewProductsService(products ProductsRepo) *ProductsService {
	return &ProductsService{products: products}
}

func (s *ProductsService) Create(ctx context.Context, code, name string, price float64) (*models.Product, error) {
	return s.products.Create(ctx, code, name, price)
}

func (s *ProductsService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *ProductsService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductsService) Update(ctx context.Context, id int64, p UpdateProductParams) (*models.Product, error) {
	return s.products.Update(ctx, id, p)
}

func (s *ProductsService) Delete(ctx context.Context, id int64) (*models.Product, error) {
	return s.products.Delete(ctx, id)
}
