package rbac

import (
	"testing"

	"github.com/cuti-management/backend/internal/domain"
	"github.com/cuti-management/backend/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc, err := NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name    string
		req     domain.EnforceRequest
		allowed bool
	}{
		{"user reads own leaves", domain.EnforceRequest{Role: domain.RoleUser, Resource: domain.ResourceLeave, Action: domain.ActionRead}, true},
		{"user creates leave", domain.EnforceRequest{Role: domain.RoleUser, Resource: domain.ResourceLeave, Action: domain.ActionCreate}, true},
		{"user deletes leave", domain.EnforceRequest{Role: domain.RoleUser, Resource: domain.ResourceLeave, Action: domain.ActionDelete}, true},
		{"user reads stats", domain.EnforceRequest{Role: domain.RoleUser, Resource: domain.ResourceUserStats, Action: domain.ActionRead}, true},
		{"user cannot approve", domain.EnforceRequest{Role: domain.RoleUser, Resource: domain.ResourceAdminLeave, Action: domain.ActionApprove}, false},
		{"user cannot list all", domain.EnforceRequest{Role: domain.RoleUser, Resource: domain.ResourceAdminLeave, Action: domain.ActionRead}, false},
		{"user cannot read admin stats", domain.EnforceRequest{Role: domain.RoleUser, Resource: domain.ResourceAdminStats, Action: domain.ActionRead}, false},
		{"admin approves", domain.EnforceRequest{Role: domain.RoleAdmin, Resource: domain.ResourceAdminLeave, Action: domain.ActionApprove}, true},
		{"admin exports", domain.EnforceRequest{Role: domain.RoleAdmin, Resource: domain.ResourceAdminLeave, Action: domain.ActionExport}, true},
		{"admin inherits user permissions", domain.EnforceRequest{Role: domain.RoleAdmin, Resource: domain.ResourceLeave, Action: domain.ActionCreate}, true},
		{"unknown role denied", domain.EnforceRequest{Role: "root", Resource: domain.ResourceLeave, Action: domain.ActionRead}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tt.req)
			assert.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestRolePolicy_CoversEveryRole(t *testing.T) {
	for _, role := range domain.Roles {
		_, ok := rolePolicy[role]
		assert.True(t, ok, "missing policy for %s", role)
	}
}
