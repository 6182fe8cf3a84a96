package app

import (
	"github.com/cuti-management/backend/internal/leave"
	"github.com/cuti-management/backend/internal/messaging/kafka"
	"github.com/cuti-management/backend/internal/user"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&leave.LeaveRequest{},
		&kafka.OutboxEvent{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
