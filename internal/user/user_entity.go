package user

import (
	"time"

	"github.com/cuti-management/backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultAnnualLeaveQuota = 12

type User struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Username string    `gorm:"column:username;type:varchar(50);not null;uniqueIndex:uq_users_username"`
	Password string    `gorm:"column:password;type:varchar(255);not null"`
	Name     string    `gorm:"column:name;type:varchar(255);not null"`
	Email    string    `gorm:"column:email;type:varchar(255);not null"`

	Department *string `gorm:"column:department;type:varchar(100)"`
	Position   *string `gorm:"column:position;type:varchar(100)"`

	Role             domain.Role `gorm:"column:role;type:varchar(20);not null;default:'user';index:idx_users_role"`
	AnnualLeaveQuota int         `gorm:"column:annual_leave_quota;not null;default:12"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// EffectiveQuota falls back to the default when no quota was configured.
func (u User) EffectiveQuota() int {
	if u.AnnualLeaveQuota <= 0 {
		return DefaultAnnualLeaveQuota
	}
	return u.AnnualLeaveQuota
}
