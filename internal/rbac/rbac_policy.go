package rbac

import "github.com/cuti-management/backend/internal/domain"

type Permission struct {
	Resource string
	Action   string
}

// rolePolicy holds the permissions granted directly to each role.
var rolePolicy = map[domain.Role][]Permission{
	domain.RoleUser: {
		{Resource: domain.ResourceLeave, Action: domain.ActionRead},
		{Resource: domain.ResourceLeave, Action: domain.ActionCreate},
		{Resource: domain.ResourceLeave, Action: domain.ActionDelete},
		{Resource: domain.ResourceUserStats, Action: domain.ActionRead},
	},
	domain.RoleAdmin: {
		{Resource: domain.ResourceAdminLeave, Action: domain.ActionRead},
		{Resource: domain.ResourceAdminLeave, Action: domain.ActionApprove},
		{Resource: domain.ResourceAdminLeave, Action: domain.ActionExport},
		{Resource: domain.ResourceAdminStats, Action: domain.ActionRead},
	},
}

// roleInheritance: admin can do everything a user can.
var roleInheritance = map[domain.Role][]domain.Role{
	domain.RoleAdmin: {domain.RoleUser},
}
