package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/pdv-labs/api-sales/internal/server/crypto"
	"github.com/pdv-labs/api-sales/internal/server/models"
	"github.com/pdv-labs/api-sales/internal/server/service"
	"github.com/pdv-labs/api-sales/internal/server/service/mocks"
	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
)

func testJWTConfig() crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:     "api-sales",
		Audience:   "api-sales-clients",
		SigningKey: "supersecretkeysupersecretkey123456", // >= 32
		AccessTTL:  1 * time.Minute,
	}
}

func newAuthService(t *testing.T) (*service.AuthService, *mocks.MockUsersRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewAuthService(users, testJWTConfig())
	return svc, users
}

func TestAuthService_Login_OK(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	password := "strongpassword"
	hash, err := crypto.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)

	users.EXPECT().
		GetByEmail(ctx, "ana@mail.com").
		Return(&models.User{ID: 7, Email: "ana@mail.com", PasswordHash: hash}, nil)

	token, err := svc.Login(ctx, "ana@mail.com", password)

	require.NoError(t, err)
	require.NotEmpty(t, token)
}

// wrong password looks exactly like an unknown email
func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	hash, err := crypto.HashPassword("correct-password", bcrypt.MinCost)
	require.NoError(t, err)

	users.EXPECT().
		GetByEmail(ctx, "ana@mail.com").
		Return(&models.User{ID: 7, Email: "ana@mail.com", PasswordHash: hash}, nil)

	_, err = svc.Login(ctx, "ana@mail.com", "wrong-password")

	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	users.EXPECT().
		GetByEmail(ctx, "ghost@mail.com").
		Return(nil, serr.ErrNotFound)

	_, err := svc.Login(ctx, "ghost@mail.com", "whatever")

	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	_, err := svc.Login(ctx, "   ", "")

	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

func TestAuthService_ResolveUser_OK(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	users.EXPECT().
		GetByID(ctx, int64(7)).
		Return(&models.User{ID: 7, Email: "ana@mail.com"}, nil)

	user, err := svc.ResolveUser(ctx, "7")

	require.NoError(t, err)
	require.Equal(t, int64(7), user.ID)
}

// non-numeric subject never reaches the store
func TestAuthService_ResolveUser_BadSubject(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	_, err := svc.ResolveUser(ctx, "not-a-number")

	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestAuthService_ResolveUser_DeletedUser(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	users.EXPECT().
		GetByID(ctx, int64(7)).
		Return(nil, serr.ErrNotFound)

	_, err := svc.ResolveUser(ctx, "7")

	require.ErrorIs(t, err, serr.ErrNotFound)
}
