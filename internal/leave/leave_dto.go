package leave

import (
	"time"

	"github.com/cuti-management/backend/internal/shared/apperror"
	"github.com/cuti-management/backend/internal/shared/response"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	dateLayout = "2006-01-02"
)

func init() {
	apperror.RegisterFieldMessages(map[string]string{
		"leave_type":       "Jenis cuti tidak valid",
		"start_date":       "Format tanggal harus YYYY-MM-DD",
		"end_date":         "Format tanggal harus YYYY-MM-DD",
		"days":             "Jumlah hari minimal 1",
		"reason":           "Alasan wajib diisi",
		"rejection_reason": "Alasan penolakan wajib diisi",
		"status":           "Status tidak valid",
		"user_id":          "User ID tidak valid",
		"page":             "Page minimal 1",
		"limit":            "Limit harus antara 1 dan 100",
	})
	apperror.RegisterFieldLabels(map[string]string{
		"days":  "Jumlah hari",
		"page":  "Page",
		"limit": "Limit",
	})
}

type CreateLeaveRequest struct {
	LeaveType LeaveType `json:"leave_type" binding:"required,oneof=annual sick personal maternity other"`
	StartDate string    `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string    `json:"end_date" binding:"required,datetime=2006-01-02"`
	Days      int       `json:"days" binding:"required,min=1"`
	Reason    string    `json:"reason" binding:"required"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

// ListQuery is the user facing list filter.
type ListQuery struct {
	Status LeaveStatus `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Page   int         `form:"page" binding:"omitempty,min=1"`
	Limit  int         `form:"limit" binding:"omitempty,min=1,max=100"`
}

// AdminListQuery adds the requester filter used by admins.
type AdminListQuery struct {
	ListQuery
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

// normalize applies the defaults for missing paging values.
func (q ListQuery) normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

type UserSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Department *string `json:"department"`
}

type ApproverSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LeaveResponse struct {
	ID              string      `json:"id"`
	LeaveType       LeaveType   `json:"leave_type"`
	LeaveTypeLabel  string      `json:"leave_type_label"`
	StartDate       string      `json:"start_date"`
	EndDate         string      `json:"end_date"`
	Days            int         `json:"days"`
	Reason          string      `json:"reason"`
	Status          LeaveStatus `json:"status"`
	ApprovedBy      *string     `json:"approved_by"`
	ApprovedAt      *time.Time  `json:"approved_at"`
	RejectionReason *string     `json:"rejection_reason"`
	CreatedAt       time.Time   `json:"created_at"`
}

// AdminLeaveResponse is one row of the admin list.
type AdminLeaveResponse struct {
	LeaveResponse
	User *UserSummary `json:"user"`
}

type LeaveDetailResponse struct {
	LeaveResponse
	User           *UserSummary     `json:"user"`
	ApprovedByUser *ApproverSummary `json:"approved_by_user"`
}

type LeaveListResponse struct {
	Leaves     []LeaveResponse         `json:"leaves"`
	Pagination response.PaginationMeta `json:"pagination"`
}

type AdminLeaveListResponse struct {
	Leaves     []AdminLeaveResponse    `json:"leaves"`
	Pagination response.PaginationMeta `json:"pagination"`
}

type UserStatsResponse struct {
	TotalRequests  int64 `json:"total_requests"`
	Pending        int64 `json:"pending"`
	Approved       int64 `json:"approved"`
	Rejected       int64 `json:"rejected"`
	AnnualQuota    int   `json:"annual_quota"`
	UsedQuota      int   `json:"used_quota"`
	RemainingQuota int   `json:"remaining_quota"`
}

type AdminStatsResponse struct {
	TotalRequests     int64 `json:"total_requests"`
	Pending           int64 `json:"pending"`
	Approved          int64 `json:"approved"`
	Rejected          int64 `json:"rejected"`
	TotalUsers        int64 `json:"total_users"`
	ThisMonthRequests int64 `json:"this_month_requests"`
}
