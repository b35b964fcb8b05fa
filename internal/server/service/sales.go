package service

import (
	"context"

	"github.com/pdv-labs/api-sales/internal/server/models"
)

// SalesService handles sale CRUD. The atomic join resolution lives in the
// sales store; this layer passes the resolved identifiers through.
type SalesService struct {
	sales SalesRepo
}

func NewSalesService(sales SalesRepo) *SalesService {
	return &SalesService{sales: sales}
}

func (s *SalesService) Create(ctx context.Context, userID int64, productIDs []int64) (*models.Sale, error) {
	return s.sales.Create(ctx, userID, productIDs)
}

func (s *SalesService) GetAll(ctx context.Context) ([]models.Sale, error) {
	return s.sales.GetAll(ctx)
}

func (s *SalesService) GetByID(ctx context.Context, id int64) (*models.Sale, error) {
	return s.sales.GetByID(ctx, id)
}

func (s *SalesService) Update(ctx context.Context, id int64, userID *int64, productIDs []int64) (*models.Sale, error) {
	return s.sales.Update(ctx, id, userID, productIDs)
}

func (s *SalesService) Delete(ctx context.Context, id int64) (*models.Sale, error) {
	return s.sales.Delete(ctx, id)
}
