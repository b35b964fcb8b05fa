package service

import (
	"context"

	"github.com/pdv-labs/api-sales/internal/server/crypto"
	"github.com/pdv-labs/api-sales/internal/server/models"
	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
)

// UsersService handles user CRUD. Plaintext passwords never reach the
// repository, hashing happens here.
type UsersService struct {
	users      UsersRepo
	bcryptCost int
}

func NewUsersService(users UsersRepo, bcryptCost int) *UsersService {
	return &UsersService{users: users, bcryptCost: bcryptCost}
}

// Create hashes the password and persists the user.
// Returns ErrAlreadyExists when the email is taken.
func (s *UsersService) Create(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := crypto.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, serr.ErrInternal
	}
	return s.users.Create(ctx, name, email, hash)
}

func (s *UsersService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Update merges the provided fields. A provided password is re-hashed
// before it reaches the store.
func (s *UsersService) Update(ctx context.Context, id int64, name, email, password *string) (*models.User, error) {
	p := UpdateUserParams{Name: name, Email: email}

	if password != nil {
		hash, err := crypto.HashPassword(*password, s.bcryptCost)
		if err != nil {
			return nil, serr.ErrInternal
		}
		p.PasswordHash = &hash
	}

	return s.users.Update(ctx, id, p)
}

func (s *UsersService) Delete(ctx context.Context, id int64) (*models.User, error) {
	return s.users.Delete(ctx, id)
}
