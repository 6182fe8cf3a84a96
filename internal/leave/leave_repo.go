package leave

import (
	"context"
	"errors"
	"time"

	leaveerrors "github.com/cuti-management/backend/internal/leave/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter selects a page of leave requests, newest first.
type ListFilter struct {
	UserID   *uuid.UUID
	Status   LeaveStatus
	Offset   int
	Limit    int
	WithUser bool
}

// Decision is the single write applied when a pending request is decided.
type Decision struct {
	Status          LeaveStatus
	ApprovedBy      uuid.UUID
	ApprovedAt      time.Time
	RejectionReason *string
}

type StatusCounts struct {
	Total    int64
	Pending  int64
	Approved int64
	Rejected int64
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	List(ctx context.Context, f ListFilter) ([]LeaveRequest, int64, error)
	DecidePending(ctx context.Context, id uuid.UUID, d Decision) (bool, error)
	DeletePending(ctx context.Context, id, userID uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context, userID *uuid.UUID) (StatusCounts, error)
	SumApprovedDays(ctx context.Context, userID uuid.UUID) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("User", "Approver").Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &l, nil
}

// FindDetailByID also loads the requester and the approver.
func (r *repository) FindDetailByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Approver").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &l, nil
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]LeaveRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("created_at DESC").Order("id DESC").Offset(f.Offset).Limit(f.Limit)
	if f.WithUser {
		q = q.Preload("User")
	}

	var leaves []LeaveRequest
	if err := q.Find(&leaves).Error; err != nil {
		return nil, 0, err
	}
	return leaves, total, nil
}

// DecidePending only touches rows that are still pending; false means the
// request was decided or removed concurrently.
func (r *repository) DecidePending(ctx context.Context, id uuid.UUID, d Decision) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":           d.Status,
			"approved_by":      d.ApprovedBy,
			"approved_at":      d.ApprovedAt,
			"rejection_reason": d.RejectionReason,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) DeletePending(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, StatusPending).
		Delete(&LeaveRequest{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) CountByStatus(ctx context.Context, userID *uuid.UUID) (StatusCounts, error) {
	var rows []struct {
		Status LeaveStatus
		Count  int64
	}

	q := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("status, COUNT(*) AS count")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if err := q.Group("status").Scan(&rows).Error; err != nil {
		return StatusCounts{}, err
	}

	var counts StatusCounts
	for _, row := range rows {
		counts.Total += row.Count
		switch row.Status {
		case StatusPending:
			counts.Pending = row.Count
		case StatusApproved:
			counts.Approved = row.Count
		case StatusRejected:
			counts.Rejected = row.Count
		}
	}
	return counts, nil
}

func (r *repository) SumApprovedDays(ctx context.Context, userID uuid.UUID) (int, error) {
	var sum int
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("COALESCE(SUM(days), 0)").
		Where("user_id = ? AND status = ?", userID, StatusApproved).
		Scan(&sum).Error
	return sum, err
}

func (r *repository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}
