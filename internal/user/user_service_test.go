package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cuti-management/backend/internal/domain"
	"github.com/cuti-management/backend/internal/user"
	usererrors "github.com/cuti-management/backend/internal/user/errors"
	mock_user "github.com/cuti-management/backend/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeHasher struct {
	err error
}

func (f fakeHasher) HashPassword(password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "hashed:" + password, nil
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success applies default quota and hides hash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, fakeHasher{})

		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, "hashed:user123", u.Password)
				assert.Equal(t, 12, u.AnnualLeaveQuota)
				u.ID = uuid.New()
				return nil
			})

		resp, err := svc.Create(ctx, user.CreateUserRequest{
			Username: "john",
			Password: "user123",
			Name:     "John Doe",
			Email:    "john@company.com",
			Role:     domain.RoleUser,
		})

		assert.NoError(t, err)
		assert.Equal(t, "john", resp.Username)
		assert.Equal(t, 12, resp.AnnualLeaveQuota)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("negative invalid role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := user.NewService(mock_user.NewMockRepository(ctrl), fakeHasher{})

		_, err := svc.Create(ctx, user.CreateUserRequest{Username: "x", Password: "secret1", Role: "root"})

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("negative hasher error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := user.NewService(mock_user.NewMockRepository(ctrl), fakeHasher{err: errors.New("hash failed")})

		_, err := svc.Create(ctx, user.CreateUserRequest{Username: "x", Password: "secret1", Role: domain.RoleUser})

		assert.EqualError(t, err, "hash failed")
	})

	t.Run("negative duplicate username", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, fakeHasher{})

		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(usererrors.ErrUsernameTaken)

		_, err := svc.Create(ctx, user.CreateUserRequest{Username: "john", Password: "secret1", Role: domain.RoleUser})

		assert.ErrorIs(t, err, usererrors.ErrUsernameTaken)
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := user.NewService(mock_user.NewMockRepository(ctrl), fakeHasher{})

		_, err := svc.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mock_user.NewMockRepository(ctrl)
		svc := user.NewService(mockRepo, fakeHasher{})
		id := uuid.New()

		mockRepo.EXPECT().FindByID(gomock.Any(), id).Return(&user.User{ID: id, Username: "bob", Role: domain.RoleUser}, nil)

		resp, err := svc.GetByID(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
		assert.Equal(t, 12, resp.AnnualLeaveQuota)
	})
}
