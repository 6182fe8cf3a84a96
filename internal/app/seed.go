package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cuti-management/backend/internal/auth"
	"github.com/cuti-management/backend/internal/config"
	"github.com/cuti-management/backend/internal/domain"
	"github.com/cuti-management/backend/internal/leave"
	"github.com/cuti-management/backend/internal/messaging/kafka"
	"github.com/cuti-management/backend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedLeave struct {
	owner     string
	leaveType leave.LeaveType
	start     string
	end       string
	days      int
	reason    string
	status    leave.LeaveStatus
	decidedAt string
	rejection string
}

func strPtr(s string) *string { return &s }

var seedUsers = []user.CreateUserRequest{
	{Username: "admin", Password: "admin123", Name: "Administrator", Email: "admin@company.com", Role: domain.RoleAdmin, Department: strPtr("Management"), Position: strPtr("System Administrator"), AnnualLeaveQuota: 12},
	{Username: "john", Password: "user123", Name: "John Doe", Email: "john@company.com", Role: domain.RoleUser, Department: strPtr("IT"), Position: strPtr("Software Developer"), AnnualLeaveQuota: 12},
	{Username: "jane", Password: "user123", Name: "Jane Smith", Email: "jane@company.com", Role: domain.RoleUser, Department: strPtr("HR"), Position: strPtr("HR Manager"), AnnualLeaveQuota: 12},
	{Username: "bob", Password: "user123", Name: "Bob Wilson", Email: "bob@company.com", Role: domain.RoleUser, Department: strPtr("Finance"), Position: strPtr("Accountant"), AnnualLeaveQuota: 12},
}

var seedLeaves = []seedLeave{
	{owner: "john", leaveType: leave.LeaveTypeAnnual, start: "2024-12-20", end: "2024-12-24", days: 5, reason: "Liburan akhir tahun bersama keluarga", status: leave.StatusPending},
	{owner: "john", leaveType: leave.LeaveTypeSick, start: "2024-11-10", end: "2024-11-11", days: 2, reason: "Flu dan demam", status: leave.StatusApproved, decidedAt: "2024-11-10"},
	{owner: "jane", leaveType: leave.LeaveTypePersonal, start: "2024-12-27", end: "2024-12-28", days: 2, reason: "Mengurus dokumen penting", status: leave.StatusPending},
	{owner: "jane", leaveType: leave.LeaveTypeAnnual, start: "2024-10-15", end: "2024-10-17", days: 3, reason: "Pernikahan saudara", status: leave.StatusApproved, decidedAt: "2024-10-14"},
	{owner: "bob", leaveType: leave.LeaveTypeSick, start: "2024-12-05", end: "2024-12-05", days: 1, reason: "Check-up kesehatan rutin", status: leave.StatusRejected, decidedAt: "2024-12-04", rejection: "Tidak dapat disetujui untuk alasan check-up, silakan ajukan cuti tahunan"},
	{owner: "bob", leaveType: leave.LeaveTypeAnnual, start: "2025-01-02", end: "2025-01-03", days: 2, reason: "Perpanjangan libur tahun baru", status: leave.StatusPending},
}

type SeedSummary struct {
	Users  int
	Leaves int
}

// Seed wipes leave data and users, then loads the demo accounts
// (admin/admin123, john|jane|bob/user123) and their sample requests.
func Seed(ctx context.Context, db *gorm.DB, jwtCfg config.JWTConfig, logger *zap.Logger) (SeedSummary, error) {
	log := logger.Named("app.seed")
	var summary SeedSummary

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{&kafka.OutboxEvent{}, &leave.LeaveRequest{}, &user.User{}} {
			if err := wipe.Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		log.Info("cleared existing data")

		userRepo := user.NewRepository(tx)
		userService := user.NewService(userRepo, auth.NewService(userRepo, jwtCfg, logger), logger)

		ids := make(map[string]uuid.UUID, len(seedUsers))
		for _, req := range seedUsers {
			created, err := userService.Create(ctx, req)
			if err != nil {
				return fmt.Errorf("seed user %s: %w", req.Username, err)
			}
			ids[req.Username] = uuid.MustParse(created.ID)
			summary.Users++
		}

		leaveRepo := leave.NewRepository(tx)
		adminID := ids["admin"]
		for _, s := range seedLeaves {
			l, err := s.build(ids[s.owner], adminID)
			if err != nil {
				return err
			}
			if err := leaveRepo.Create(ctx, l); err != nil {
				return fmt.Errorf("seed leave for %s: %w", s.owner, err)
			}
			summary.Leaves++
		}
		return nil
	})
	if err != nil {
		return SeedSummary{}, err
	}

	log.Info("database seed completed",
		zap.Int("users", summary.Users),
		zap.Int("leave_requests", summary.Leaves),
	)
	return summary, nil
}

func (s seedLeave) build(owner, admin uuid.UUID) (*leave.LeaveRequest, error) {
	start, err := time.Parse(time.DateOnly, s.start)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.DateOnly, s.end)
	if err != nil {
		return nil, err
	}

	l := &leave.LeaveRequest{
		UserID:    owner,
		LeaveType: s.leaveType,
		StartDate: start,
		EndDate:   end,
		Days:      s.days,
		Reason:    s.reason,
		Status:    s.status,
	}
	if s.status.Terminal() {
		decided, err := time.Parse(time.DateOnly, s.decidedAt)
		if err != nil {
			return nil, err
		}
		l.ApprovedBy = &admin
		l.ApprovedAt = &decided
	}
	if s.rejection != "" {
		l.RejectionReason = strPtr(s.rejection)
	}
	return l, nil
}
