package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgconn"

	"github.com/pdv-labs/api-sales/internal/server/models"
	"github.com/pdv-labs/api-sales/internal/server/service"
	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
)

type ProductsRepository struct {
	db *sql.DB
}

func NewProductsRepository(db *sql.DB) *ProductsRepository {
	return &ProductsRepository{db: db}
}

// Create persists a new product. code must be globally unique.
func (r *ProductsRepository) Create(ctx context.Context, code, name string, price float64) (*models.Product, error) {
	p := &models.Product{Code: code, Name: name, Price: price}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (code, name, price)
		 VALUES ($1,$2,$3)
		 RETURNING id, created_at, updated_at`,
		code, name, price,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == uniqueViolation {
			return nil, serr.ErrAlreadyExists
		}
		return nil, serr.ErrInternal
	}

	return p, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	p := &models.Product{ID: id}

	err := r.db.QueryRowContext(ctx,
		`SELECT code, name, price, created_at, updated_at FROM products WHERE id=$1`,
		id,
	).Scan(&p.Code, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serr.ErrNotFound
		}
		return nil, serr.ErrInternal
	}

	return p, nil
}

func (r *ProductsRepository) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, name, price, created_at, updated_at FROM products ORDER BY id`)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, serr.ErrInternal
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return products, nil
}

// Update merges the provided fields and re-stamps updated_at.
func (r *ProductsRepository) Update(ctx context.Context, id int64, p service.UpdateProductParams) (*models.Product, error) {
	out := &models.Product{ID: id}

	err := r.db.QueryRowContext(ctx,
		`UPDATE products
		 SET code       = COALESCE($2, code),
		     name       = COALESCE($3, name),
		     price      = COALESCE($4, price),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING code, name, price, created_at, updated_at`,
		id, p.Code, p.Name, p.Price,
	).Scan(&out.Code, &out.Name, &out.Price, &out.CreatedAt, &out.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serr.ErrNotFound
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == uniqueViolation {
			return nil, serr.ErrAlreadyExists
		}
		return nil, serr.ErrInternal
	}

	return out, nil
}

// Delete removes the product and returns the pre-delete snapshot.
//
// Join rows referencing the product are removed by the sale_products
// cascade; the sales themselves stay.
func (r *ProductsRepository) Delete(ctx context.Context, id int64) (*models.Product, error) {
	p := &models.Product{ID: id}

	err := r.db.QueryRowContext(ctx,
		`DELETE FROM products WHERE id=$1
		 RETURNING code, name, price, created_at, updated_at`,
		id,
	).Scan(&p.Code, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serr.ErrNotFound
		}
		return nil, serr.ErrInternal
	}

	return p, nil
}
