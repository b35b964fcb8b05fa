package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/pdv-labs/api-sales/internal/server/crypto"
	"github.com/pdv-labs/api-sales/internal/server/models"
	"github.com/pdv-labs/api-sales/internal/server/service"
	"github.com/pdv-labs/api-sales/internal/server/service/mocks"
	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
)

func newUsersService(t *testing.T) (*service.UsersService, *mocks.MockUsersRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUsersRepo(ctrl)
	svc := service.NewUsersService(users, bcrypt.MinCost)
	return svc, users
}

// the plaintext password never reaches the store
func TestUsersService_Create_HashesPassword(t *testing.T) {
	ctx := context.Background()
	svc, users := newUsersService(t)

	password := "strongpassword"

	users.EXPECT().
		Create(ctx, "Ana", "ana@mail.com", gomock.Any()).
		DoAndReturn(func(ctx context.Context, name, email, hash string) (*models.User, error) {
			require.NotEqual(t, password, hash)
			require.True(t, crypto.VerifyPassword(password, hash))
			return &models.User{ID: 1, Name: name, Email: email, PasswordHash: hash}, nil
		})

	user, err := svc.Create(ctx, "Ana", "ana@mail.com", password)

	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
}

func TestUsersService_Create_EmailTaken(t *testing.T) {
	ctx := context.Background()
	svc, users := newUsersService(t)

	users.EXPECT().
		Create(ctx, "Ana", "ana@mail.com", gomock.Any()).
		Return(nil, serr.ErrAlreadyExists)

	_, err := svc.Create(ctx, "Ana", "ana@mail.com", "strongpassword")

	require.ErrorIs(t, err, serr.ErrAlreadyExists)
}

// a provided password is re-hashed before the merge
func TestUsersService_Update_RehashesPassword(t *testing.T) {
	ctx := context.Background()
	svc, users := newUsersService(t)

	password := "newpassword1"

	users.EXPECT().
		Update(ctx, int64(7), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id int64, p service.UpdateUserParams) (*models.User, error) {
			require.NotNil(t, p.PasswordHash)
			require.True(t, crypto.VerifyPassword(password, *p.PasswordHash))
			require.Nil(t, p.Name)
			require.Nil(t, p.Email)
			return &models.User{ID: id}, nil
		})

	_, err := svc.Update(ctx, 7, nil, nil, &password)

	require.NoError(t, err)
}

// no password in the patch: no hash in the params
func TestUsersService_Update_NoPassword(t *testing.T) {
	ctx := context.Background()
	svc, users := newUsersService(t)

	name := "Ana Maria"

	users.EXPECT().
		Update(ctx, int64(7), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id int64, p service.UpdateUserParams) (*models.User, error) {
			require.Nil(t, p.PasswordHash)
			require.NotNil(t, p.Name)
			require.Equal(t, "Ana Maria", *p.Name)
			return &models.User{ID: id, Name: *p.Name}, nil
		})

	user, err := svc.Update(ctx, 7, &name, nil, nil)

	require.NoError(t, err)
	require.Equal(t, "Ana Maria", user.Name)
}

func TestUsersService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, users := newUsersService(t)

	users.EXPECT().
		Delete(ctx, int64(404)).
		Return(nil, serr.ErrNotFound)

	_, err := svc.Delete(ctx, 404)

	require.ErrorIs(t, err, serr.ErrNotFound)
}
