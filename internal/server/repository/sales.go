package repository

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/pdv-labs/api-sales/internal/server/models"
	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
)

// SalesRepository persists sales and owns the join resolution between a
// sale, its owning user and its product set.
//
// Referential integrity at creation time is checked here, before anything
// is written: the user and the products are resolved inside the same
// transaction as the insert, so a failed resolution leaves no residue.
type SalesRepository struct {
	db *sql.DB
}

func NewSalesRepository(db *sql.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

// querier is the subset of *sql.DB / *sql.Tx the lookup helpers need.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Create records a new sale for userID over productIDs atomically.
//
// The user must exist (ErrNotFound otherwise). Product ids are resolved
// against the catalog: ids that do not resolve are dropped silently and
// only a fully empty resolved set is rejected with ErrNotFound. Duplicate
// ids collapse to one product. Either the sale and all its join rows are
// committed or nothing is.
func (r *SalesRepository) Create(ctx context.Context, userID int64, productIDs []int64) (*models.Sale, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer tx.Rollback()

	user, err := saleUserByID(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	products, err := resolveProducts(ctx, tx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, serr.ErrNotFound
	}

	sale := &models.Sale{User: user, Products: products}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO sales (user_id) VALUES ($1)
		 RETURNING id, created_at, updated_at`,
		userID,
	).Scan(&sale.ID, &sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		return nil, serr.ErrInternal
	}

	if err := insertSaleProducts(ctx, tx, sale.ID, products); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, serr.ErrInternal
	}

	return sale, nil
}

// GetAll returns every sale with its user and products eagerly resolved.
func (r *SalesRepository) GetAll(ctx context.Context) ([]models.Sale, error) {
	sales, err := r.querySales(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	if err := r.attachProducts(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// GetByID returns one sale with its user and products eagerly resolved.
func (r *SalesRepository) GetByID(ctx context.Context, id int64) (*models.Sale, error) {
	sales, err := r.querySales(ctx, "WHERE s.id = $1", []any{id})
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, serr.ErrNotFound
	}
	if err := r.attachProducts(ctx, sales); err != nil {
		return nil, err
	}
	return &sales[0], nil
}

// Update re-resolves any provided references and merges them into the
// sale inside one transaction.
//
// userID, when non-nil, must resolve to an existing user. productIDs,
// when non-nil, replace the product set under the same leniency as
// Create (empty resolved set rejected, partial match accepted).
// updated_at is re-stamped whenever the sale exists.
func (r *SalesRepository) Update(ctx context.Context, id int64, userID *int64, productIDs []int64) (*models.Sale, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer tx.Rollback()

	var saleID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM sales WHERE id=$1 FOR UPDATE`, id,
	).Scan(&saleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serr.ErrNotFound
		}
		return nil, serr.ErrInternal
	}

	if userID != nil {
		if _, err := saleUserByID(ctx, tx, *userID); err != nil {
			return nil, err
		}
	}

	if productIDs != nil {
		products, err := resolveProducts(ctx, tx, productIDs)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			return nil, serr.ErrNotFound
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM sale_products WHERE sale_id=$1`, id); err != nil {
			return nil, serr.ErrInternal
		}
		if err := insertSaleProducts(ctx, tx, id, products); err != nil {
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE sales
		 SET user_id = COALESCE($2, user_id), updated_at = now()
		 WHERE id = $1`,
		id, userID,
	); err != nil {
		return nil, serr.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		return nil, serr.ErrInternal
	}

	return r.GetByID(ctx, id)
}

// Delete removes the sale and returns the pre-delete snapshot.
// Join rows go away through the sale_products cascade.
func (r *SalesRepository) Delete(ctx context.Context, id int64) (*models.Sale, error) {
	sale, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id=$1`, id); err != nil {
		return nil, serr.ErrInternal
	}

	return sale, nil
}

// querySales fetches sales joined with their (possibly deleted) user.
func (r *SalesRepository) querySales(ctx context.Context, where string, args []any) ([]models.Sale, error) {
	q := `SELECT s.id, s.created_at, s.updated_at,
	             u.id, u.name, u.email, u.created_at, u.updated_at
	      FROM sales s
	      LEFT JOIN users u ON u.id = s.user_id `
	if where != "" {
		q += where + " "
	}
	q += `ORDER BY s.id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		var (
			s                models.Sale
			uID              sql.NullInt64
			uName, uEmail    sql.NullString
			uCreat, uUpdated sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt,
			&uID, &uName, &uEmail, &uCreat, &uUpdated); err != nil {
			return nil, serr.ErrInternal
		}
		// user is nil when the owning user was deleted after the sale
		if uID.Valid {
			s.User = &models.User{
				ID:        uID.Int64,
				Name:      uName.String,
				Email:     uEmail.String,
				CreatedAt: uCreat.Time,
				UpdatedAt: uUpdated.Time,
			}
		}
		s.Products = []models.Product{}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return sales, nil
}

// attachProducts loads the product sets of the given sales in one query.
func (r *SalesRepository) attachProducts(ctx context.Context, sales []models.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}

	clause, args := inClause(ids, 1)
	rows, err := r.db.QueryContext(ctx,
		`SELECT sp.sale_id, p.id, p.code, p.name, p.price, p.created_at, p.updated_at
		 FROM sale_products sp
		 JOIN products p ON p.id = sp.product_id
		 WHERE sp.sale_id IN (`+clause+`)
		 ORDER BY sp.sale_id, p.id`,
		args...,
	)
	if err != nil {
		return serr.ErrInternal
	}
	defer rows.Close()

	bySale := make(map[int64][]models.Product, len(sales))
	for rows.Next() {
		var (
			saleID int64
			p      models.Product
		)
		if err := rows.Scan(&saleID, &p.ID, &p.Code, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return serr.ErrInternal
		}
		bySale[saleID] = append(bySale[saleID], p)
	}
	if err := rows.Err(); err != nil {
		return serr.ErrInternal
	}

	for i := range sales {
		if ps, ok := bySale[sales[i].ID]; ok {
			sales[i].Products = ps
		}
	}
	return nil
}

// saleUserByID resolves the owning user inside the sale transaction.
// The hash is not selected, the sale only needs the public projection.
func saleUserByID(ctx context.Context, q querier, id int64) (*models.User, error) {
	u := &models.User{ID: id}

	err := q.QueryRowContext(ctx,
		`SELECT name, email, created_at, updated_at FROM users WHERE id=$1`,
		id,
	).Scan(&u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serr.ErrNotFound
		}
		return nil, serr.ErrInternal
	}

	return u, nil
}

// resolveProducts fetches the distinct existing products among ids.
// Unknown ids are simply absent from the result.
func resolveProducts(ctx context.Context, q querier, ids []int64) ([]models.Product, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	clause, args := inClause(ids, 1)
	rows, err := q.QueryContext(ctx,
		`SELECT id, code, name, price, created_at, updated_at
		 FROM products
		 WHERE id IN (`+clause+`)
		 ORDER BY id`,
		args...,
	)
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

func insertSaleProducts(ctx context.Context, tx *sql.Tx, saleID int64, products []models.Product) error {
	for _, p := range products {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sale_products (sale_id, product_id) VALUES ($1,$2)`,
			saleID, p.ID,
		); err != nil {
			return serr.ErrInternal
		}
	}
	return nil
}

// inClause renders "$start,$start+1,..." placeholders plus the matching args.
func inClause(ids []int64, start int) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(start + i))
		args = append(args, id)
	}
	return b.String(), args
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
