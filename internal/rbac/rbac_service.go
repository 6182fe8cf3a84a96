package rbac

import (
	"fmt"

	"github.com/cuti-management/backend/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

// NewService loads the static role policy into enforcer. Every role of
// domain.Roles must have a policy entry.
func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	s := &service{enforcer: enforcer, logger: l}
	if err := s.loadPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadPolicy() error {
	s.enforcer.ClearPolicy()

	for _, role := range domain.Roles {
		perms, ok := rolePolicy[role]
		if !ok {
			return fmt.Errorf("rbac: no policy for role %q", role)
		}
		for _, p := range perms {
			if _, err := s.enforcer.AddPolicy(role.String(), p.Resource, p.Action); err != nil {
				return err
			}
		}
		for _, parent := range roleInheritance[role] {
			if _, err := s.enforcer.AddGroupingPolicy(role.String(), parent.String()); err != nil {
				return err
			}
		}
	}

	s.logger.Debug("rbac policy loaded", zap.Int("roles", len(domain.Roles)))
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if !req.Role.Valid() {
		return false, nil
	}

	allowed, err := s.enforcer.Enforce(req.Role.String(), req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role.String()),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	if !allowed {
		s.logger.Debug("rbac denied",
			zap.String("role", req.Role.String()),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
		)
	}
	return allowed, nil
}
