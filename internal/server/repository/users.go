// Package repository implements the SQL stores of the application
// (PostgreSQL through the pgx stdlib driver).
//
// The stores own persistence and integrity checks for one entity each and
// raise the shared domain errors; no business logic lives here.
package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgconn"

	"github.com/pdv-labs/api-sales/internal/server/models"
	"github.com/pdv-labs/api-sales/internal/server/service"
	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
)

// uniqueViolation is the PostgreSQL error code for unique_violation.
// Uniqueness is not pre-checked: the constraint violation is surfaced
// by the database and translated here, so concurrent creates cannot race.
const uniqueViolation = "23505"

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create persists a new user. The password arrives already hashed.
func (r *UsersRepository) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	u := &models.User{Name: name, Email: email, PasswordHash: passwordHash}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1,$2,$3)
		 RETURNING id, created_at, updated_at`,
		name, email, passwordHash,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == uniqueViolation {
			return nil, serr.ErrAlreadyExists
		}
		return nil, serr.ErrInternal
	}

	return u, nil
}

// GetByID returns one user without the password hash.
func (r *UsersRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u := &models.User{ID: id}

	err := r.db.QueryRowContext(ctx,
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

// GetByEmail returns one user including the password hash.
//
// The hash is needed for credential verification; only the auth service
// calls this method. Regular reads go through GetByID/List and never see
// the hash.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{Email: email}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, password_hash, created_at, updated_at FROM users WHERE email=$1`,
		email,
	).Scan(&u.ID, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serr.ErrNotFound
		}
		return nil, serr.ErrInternal
	}

	return u, nil
}

// List returns all users ordered by id, without password hashes.
func (r *UsersRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, created_at, updated_at FROM users ORDER BY id`)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, serr.ErrInternal
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return users, nil
}

// Update merges the provided fields into the stored record and re-stamps
// updated_at. The merge is a single UPDATE statement, so a concurrent
// update cannot observe a half-applied patch.
func (r *UsersRepository) Update(ctx context.Context, id int64, p service.UpdateUserParams) (*models.User, error) {
	u := &models.User{ID: id}

	err := r.db.QueryRowContext(ctx,
		`UPDATE users
		 SET name          = COALESCE($2, name),
		     email         = COALESCE($3, email),
		     password_hash = COALESCE($4, password_hash),
		     updated_at    = now()
		 WHERE id = $1
		 RETURNING name, email, created_at, updated_at`,
		id, p.Name, p.Email, p.PasswordHash,
	).Scan(&u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, serr.ErrNotFound
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == uniqueViolation {
			return nil, serr.ErrAlreadyExists
		}
		return nil, serr.ErrInternal
	}

	return u, nil
}

// Delete removes the user and returns the pre-delete snapshot.
//
// Sales owned by the user are not deleted: the schema sets their user_id
// to NULL (orphan-reference policy).
func (r *UsersRepository) Delete(ctx context.Context, id int64) (*models.User, error) {
	u := &models.User{ID: id}

	err := r.db.QueryRowContext(ctx,
		`DELETE FROM users WHERE id=$1
		 RETURNING name, email, created_at, updated_at`,
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
