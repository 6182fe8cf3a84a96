package auth

import (
	"context"
	"errors"
	"time"

	autherrors "github.com/cuti-management/backend/internal/auth/errors"
	"github.com/cuti-management/backend/internal/config"
	"github.com/cuti-management/backend/internal/shared/contextutil"
	"github.com/cuti-management/backend/internal/user"
	usererrors "github.com/cuti-management/backend/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is fixed so stored hashes stay comparable across deployments.
const BcryptCost = 12

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (LoginResponse, error)
	VerifyToken(token string) (*Claims, error)
	Authenticate(token string) (contextutil.Identity, error)
	HashPassword(password string) (string, error)
	GetMe(ctx context.Context, userID string) (user.UserPublic, error)
}

type service struct {
	users  user.Repository
	jwt    config.JWTConfig
	now    func() time.Time
	logger *zap.Logger
}

func NewService(users user.Repository, jwtCfg config.JWTConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if jwtCfg.ExpiresIn <= 0 {
		jwtCfg.ExpiresIn = 24 * time.Hour
	}
	return &service{users: users, jwt: jwtCfg, now: time.Now, logger: l}
}

func (s *service) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	// user tidak ada dan password salah sengaja memberi pesan yang sama
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			l.Info("login rejected", zap.String("username", username), zap.String("reason", "unknown_user"))
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		l.Info("login rejected", zap.String("username", username), zap.String("reason", "bad_password"))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(u)
	if err != nil {
		l.Error("sign token failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	l.Info("login success", zap.String("user_id", u.ID.String()), zap.String("role", u.Role.String()))
	return LoginResponse{Token: token, User: user.ToPublic(*u)}, nil
}

func (s *service) VerifyToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwt.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, autherrors.ErrInvalidToken
	}

	if !claims.Role.Valid() || claims.Username == "" {
		return nil, autherrors.ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *service) Authenticate(token string) (contextutil.Identity, error) {
	claims, err := s.VerifyToken(token)
	if err != nil {
		return contextutil.Identity{}, err
	}
	id, err := claims.Identity()
	if err != nil {
		return contextutil.Identity{}, autherrors.ErrInvalidToken
	}
	return id, nil
}

func (s *service) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (user.UserPublic, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return user.UserPublic{}, usererrors.ErrUserNotFound
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return user.UserPublic{}, err
	}
	return user.ToPublic(*u), nil
}

func (s *service) generateToken(u *user.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   u.ID.String(),
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwt.ExpiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwt.Secret))
}
