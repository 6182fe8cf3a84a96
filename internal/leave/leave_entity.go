package leave

import (
	"time"

	"github.com/cuti-management/backend/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType string

const (
	LeaveTypeAnnual    LeaveType = "annual"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypePersonal  LeaveType = "personal"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypeOther     LeaveType = "other"
)

var leaveTypeLabels = map[LeaveType]string{
	LeaveTypeAnnual:    "Cuti Tahunan",
	LeaveTypeSick:      "Cuti Sakit",
	LeaveTypePersonal:  "Cuti Pribadi",
	LeaveTypeMaternity: "Cuti Melahirkan",
	LeaveTypeOther:     "Lainnya",
}

// Label returns the Indonesian display name; unknown types label as themselves.
func (t LeaveType) Label() string {
	if label, ok := leaveTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

type LeaveStatus string

const (
	StatusPending  LeaveStatus = "pending"
	StatusApproved LeaveStatus = "approved"
	StatusRejected LeaveStatus = "rejected"
)

// Terminal statuses cannot change again.
func (s LeaveStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type LeaveRequest struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_leave_requests_user_status"`

	LeaveType LeaveType `gorm:"column:leave_type;type:varchar(20);not null"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null"`
	Days      int       `gorm:"column:days;not null"`
	Reason    string    `gorm:"column:reason;type:text;not null"`

	Status          LeaveStatus `gorm:"column:status;type:varchar(20);not null;default:'pending';index:idx_leave_requests_user_status;index:idx_leave_requests_status"`
	ApprovedBy      *uuid.UUID  `gorm:"column:approved_by;type:uuid"`
	ApprovedAt      *time.Time  `gorm:"column:approved_at"`
	RejectionReason *string     `gorm:"column:rejection_reason;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index:idx_leave_requests_created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	User     *user.User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Approver *user.User `gorm:"foreignKey:ApprovedBy;references:ID;constraint:OnDelete:SET NULL"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (l *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
