package domain

// EnforceRequest is one authorization question: may Role perform Action on Resource.
type EnforceRequest struct {
	Role     Role
	Resource string
	Action   string
}

// Resources and actions guarded by the RBAC layer.
const (
	ResourceLeave      = "leave"
	ResourceUserStats  = "user_stats"
	ResourceAdminLeave = "admin_leave"
	ResourceAdminStats = "admin_stats"

	ActionRead    = "read"
	ActionCreate  = "create"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionExport  = "export"
)
