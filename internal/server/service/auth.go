package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/pdv-labs/api-sales/internal/server/crypto"
	"github.com/pdv-labs/api-sales/internal/server/models"
	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
)

// AuthService implements login and token-to-user resolution.
//
// Responsibility:
//   - credential verification against the stored bcrypt hash
//   - issuing access tokens
//   - resolving a verified token subject back to a live user record
type AuthService struct {
	users UsersRepo
	jwt   crypto.JWTConfig
}

// NewAuthService creates AuthService with its dependencies.
func NewAuthService(users UsersRepo, jwt crypto.JWTConfig) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// Login verifies the credentials and issues an access token.
//
// Unknown email and wrong password both return ErrNotFound, so a caller
// cannot tell which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", serr.ErrInvalidInput
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if !crypto.VerifyPassword(password, user.PasswordHash) {
		// same error as unknown email, do not leak which check failed
		return "", serr.ErrNotFound
	}

	token, err := crypto.NewAccessToken(strconv.FormatInt(user.ID, 10), s.jwt)
	if err != nil {
		return "", serr.ErrInternal
	}

	return token, nil
}

// ResolveUser turns a verified token subject into a live user record.
//
// The lookup runs on every guarded request: a deleted user's token stops
// resolving even before it expires.
func (s *AuthService) ResolveUser(ctx context.Context, subject string) (*models.User, error) {
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, serr.ErrNotFound
	}
	return s.users.GetByID(ctx, id)
}
