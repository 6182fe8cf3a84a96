package user

import (
	"context"

	"github.com/cuti-management/backend/internal/shared/contextutil"
	usererrors "github.com/cuti-management/backend/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service provisions accounts. Users are created by seeding or by an
// operator; the HTTP surface never deletes them.
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserPublic, error)
	GetByID(ctx context.Context, id string) (UserPublic, error)
}

// PasswordHasher is satisfied by the auth service.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type service struct {
	repo   Repository
	hasher PasswordHasher
	logger *zap.Logger
}

func NewService(repo Repository, hasher PasswordHasher, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, hasher: hasher, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserPublic, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if !req.Role.Valid() {
		return UserPublic{}, usererrors.ErrInvalidRole
	}

	hashed, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserPublic{}, err
	}

	quota := req.AnnualLeaveQuota
	if quota <= 0 {
		quota = DefaultAnnualLeaveQuota
	}

	u := &User{
		Username:         req.Username,
		Password:         hashed,
		Name:             req.Name,
		Email:            req.Email,
		Department:       req.Department,
		Position:         req.Position,
		Role:             req.Role,
		AnnualLeaveQuota: quota,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		l.Warn("failed to create user", zap.String("username", req.Username), zap.Error(err))
		return UserPublic{}, err
	}

	l.Info("user created", zap.String("user_id", u.ID.String()), zap.String("username", u.Username), zap.String("role", u.Role.String()))
	return ToPublic(*u), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserPublic, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserPublic{}, usererrors.ErrUserNotFound
	}
	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return UserPublic{}, err
	}
	return ToPublic(*u), nil
}
