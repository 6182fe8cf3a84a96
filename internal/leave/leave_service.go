package leave

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cuti-management/backend/internal/domain"
	"github.com/cuti-management/backend/internal/events"
	leaveerrors "github.com/cuti-management/backend/internal/leave/errors"
	"github.com/cuti-management/backend/internal/messaging/kafka"
	"github.com/cuti-management/backend/internal/metrics"
	"github.com/cuti-management/backend/internal/shared/apperror"
	"github.com/cuti-management/backend/internal/shared/contextutil"
	"github.com/cuti-management/backend/internal/shared/response"
	"github.com/cuti-management/backend/internal/user"
	usererrors "github.com/cuti-management/backend/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	adminStatsKey = "admin_stats"
	exportMaxRows = 10000
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateLeaveRequest) (LeaveResponse, error)
	GetByUser(ctx context.Context, userID uuid.UUID, q ListQuery) (LeaveListResponse, error)
	GetByID(ctx context.Context, id string, ownerID *uuid.UUID) (LeaveDetailResponse, error)
	Delete(ctx context.Context, id string, userID uuid.UUID) error
	GetUserStats(ctx context.Context, userID uuid.UUID) (UserStatsResponse, error)
	GetAll(ctx context.Context, q AdminListQuery) (AdminLeaveListResponse, error)
	Approve(ctx context.Context, id string, approverID uuid.UUID) (LeaveResponse, error)
	Reject(ctx context.Context, id string, approverID uuid.UUID, reason string) (LeaveResponse, error)
	GetAdminStats(ctx context.Context) (AdminStatsResponse, error)
	Export(ctx context.Context, q AdminListQuery) (*bytes.Buffer, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	users  user.Repository
	outbox kafka.OutboxRepository
	sf     singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires the leave workflow. db may be nil when the repository does
// not need a transaction (tests); outbox may be nil to disable lifecycle events.
func NewService(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		users:  users,
		outbox: outbox,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave requested",
		zap.String("user_id", userID.String()),
		zap.String("leave_type", string(req.LeaveType)),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		UserID:    userID,
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		Days:      req.Days,
		Reason:    req.Reason,
		Status:    StatusPending,
	}

	err = s.withTx(ctx, func(repo Repository, outbox kafka.OutboxRepository) error {
		if err := repo.Create(ctx, l); err != nil {
			return err
		}
		return s.enqueue(ctx, outbox, newLeaveEvent(events.LeaveCreated, *l, userID, s.now()))
	})
	if err != nil {
		log.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	metrics.ObserveLeaveCreated(string(l.LeaveType))
	log.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return mapToResponse(*l), nil
}

func (s *service) GetByUser(ctx context.Context, userID uuid.UUID, q ListQuery) (LeaveListResponse, error) {
	q = q.normalize()
	leaves, total, err := s.repo.List(ctx, ListFilter{
		UserID: &userID,
		Status: q.Status,
		Offset: (q.Page - 1) * q.Limit,
		Limit:  q.Limit,
	})
	if err != nil {
		return LeaveListResponse{}, err
	}

	return LeaveListResponse{
		Leaves:     mapToListResponse(leaves),
		Pagination: response.NewPaginationMeta(total, q.Page, q.Limit),
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string, ownerID *uuid.UUID) (LeaveDetailResponse, error) {
	leaveID, err := parseLeaveID(id)
	if err != nil {
		return LeaveDetailResponse{}, err
	}

	l, err := s.repo.FindDetailByID(ctx, leaveID)
	if err != nil {
		return LeaveDetailResponse{}, err
	}
	if ownerID != nil && l.UserID != *ownerID {
		return LeaveDetailResponse{}, leaveerrors.ErrNotOwner
	}

	return mapToDetailResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id string, userID uuid.UUID) error {
	log := contextutil.GetLogger(ctx, s.logger)

	leaveID, err := parseLeaveID(id)
	if err != nil {
		return err
	}

	err = s.withTx(ctx, func(repo Repository, outbox kafka.OutboxRepository) error {
		l, err := repo.FindByID(ctx, leaveID)
		if err != nil {
			return err
		}
		if l.UserID != userID {
			return leaveerrors.ErrNotOwner
		}
		if l.Status != StatusPending {
			return leaveerrors.ErrOnlyPendingDeletable
		}

		deleted, err := repo.DeletePending(ctx, leaveID, userID)
		if err != nil {
			return err
		}
		if !deleted {
			log.Warn("delete leave lost race", zap.String("leave_id", id))
			return leaveerrors.ErrOnlyPendingDeletable
		}
		return s.enqueue(ctx, outbox, newLeaveEvent(events.LeaveDeleted, *l, userID, s.now()))
	})
	if err != nil {
		if apperror.ToHTTP(err).Status >= http.StatusInternalServerError {
			log.Error("delete leave failed", zap.String("leave_id", id), zap.Error(err))
		}
		return err
	}

	log.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) GetUserStats(ctx context.Context, userID uuid.UUID) (UserStatsResponse, error) {
	counts, err := s.repo.CountByStatus(ctx, &userID)
	if err != nil {
		return UserStatsResponse{}, err
	}
	used, err := s.repo.SumApprovedDays(ctx, userID)
	if err != nil {
		return UserStatsResponse{}, err
	}

	quota := user.DefaultAnnualLeaveQuota
	u, err := s.users.FindByID(ctx, userID)
	switch {
	case err == nil:
		quota = u.EffectiveQuota()
	case errors.Is(err, usererrors.ErrUserNotFound):
	default:
		return UserStatsResponse{}, err
	}

	return UserStatsResponse{
		TotalRequests:  counts.Total,
		Pending:        counts.Pending,
		Approved:       counts.Approved,
		Rejected:       counts.Rejected,
		AnnualQuota:    quota,
		UsedQuota:      used,
		RemainingQuota: quota - used,
	}, nil
}

func (s *service) GetAll(ctx context.Context, q AdminListQuery) (AdminLeaveListResponse, error) {
	f, err := adminFilter(q)
	if err != nil {
		return AdminLeaveListResponse{}, err
	}

	page := q.ListQuery.normalize()
	f.Offset = (page.Page - 1) * page.Limit
	f.Limit = page.Limit

	leaves, total, err := s.repo.List(ctx, f)
	if err != nil {
		return AdminLeaveListResponse{}, err
	}

	return AdminLeaveListResponse{
		Leaves:     mapToAdminListResponse(leaves),
		Pagination: response.NewPaginationMeta(total, page.Page, page.Limit),
	}, nil
}

func (s *service) Approve(ctx context.Context, id string, approverID uuid.UUID) (LeaveResponse, error) {
	return s.decide(ctx, id, approverID, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, id string, approverID uuid.UUID, reason string) (LeaveResponse, error) {
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}
	return s.decide(ctx, id, approverID, StatusRejected, &reason)
}

func (s *service) decide(
	ctx context.Context,
	id string,
	approverID uuid.UUID,
	target LeaveStatus,
	rejectionReason *string,
) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("approver_id", approverID.String()),
		zap.String("target_status", string(target)),
	)

	leaveID, err := parseLeaveID(id)
	if err != nil {
		return LeaveResponse{}, err
	}

	var decided *LeaveRequest
	err = s.withTx(ctx, func(repo Repository, outbox kafka.OutboxRepository) error {
		current, err := repo.FindByID(ctx, leaveID)
		if err != nil {
			return err
		}
		if current.Status != StatusPending {
			return leaveerrors.ErrAlreadyProcessed
		}

		now := s.now()
		ok, err := repo.DecidePending(ctx, leaveID, Decision{
			Status:          target,
			ApprovedBy:      approverID,
			ApprovedAt:      now,
			RejectionReason: rejectionReason,
		})
		if err != nil {
			return err
		}
		if !ok {
			return leaveerrors.ErrAlreadyProcessed
		}

		decided, err = repo.FindByID(ctx, leaveID)
		if err != nil {
			return err
		}

		eventType := events.LeaveApproved
		if target == StatusRejected {
			eventType = events.LeaveRejected
		}
		return s.enqueue(ctx, outbox, newLeaveEvent(eventType, *decided, approverID, now))
	})
	if err != nil {
		if errors.Is(err, leaveerrors.ErrAlreadyProcessed) {
			log.Warn("decide leave rejected: not pending", zap.String("leave_id", id))
		} else if !errors.Is(err, leaveerrors.ErrLeaveNotFound) {
			log.Error("decide leave failed", zap.String("leave_id", id), zap.Error(err))
		}
		return LeaveResponse{}, err
	}

	metrics.ObserveLeaveDecision(string(target))
	log.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", string(target)),
	)
	return mapToResponse(*decided), nil
}

// GetAdminStats collapses concurrent dashboard loads into one set of queries.
func (s *service) GetAdminStats(ctx context.Context) (AdminStatsResponse, error) {
	v, err, _ := s.sf.Do(adminStatsKey, func() (any, error) {
		counts, err := s.repo.CountByStatus(ctx, nil)
		if err != nil {
			return nil, err
		}
		totalUsers, err := s.users.CountByRole(ctx, domain.RoleUser)
		if err != nil {
			return nil, err
		}
		thisMonth, err := s.repo.CountCreatedSince(ctx, startOfMonth(s.now()))
		if err != nil {
			return nil, err
		}
		return AdminStatsResponse{
			TotalRequests:     counts.Total,
			Pending:           counts.Pending,
			Approved:          counts.Approved,
			Rejected:          counts.Rejected,
			TotalUsers:        totalUsers,
			ThisMonthRequests: thisMonth,
		}, nil
	})
	if err != nil {
		return AdminStatsResponse{}, err
	}
	return v.(AdminStatsResponse), nil
}

func (s *service) Export(ctx context.Context, q AdminListQuery) (*bytes.Buffer, error) {
	f, err := adminFilter(q)
	if err != nil {
		return nil, err
	}
	f.Limit = exportMaxRows

	leaves, _, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	buf, err := buildWorkbook(leaves)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("export leave workbook failed", zap.Error(err))
		return nil, err
	}
	return buf, nil
}

func (s *service) withTx(ctx context.Context, fn func(repo Repository, outbox kafka.OutboxRepository) error) error {
	if s.db == nil {
		return fn(s.repo, s.outbox)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var outbox kafka.OutboxRepository
		if s.outbox != nil {
			outbox = s.outbox.WithTx(tx)
		}
		return fn(s.repo.WithTx(tx), outbox)
	})
}

func (s *service) enqueue(ctx context.Context, outbox kafka.OutboxRepository, event events.LeaveEvent) error {
	if outbox == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return outbox.Create(ctx, &kafka.OutboxEvent{
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: events.LeaveAggregate,
		AggregateID:   event.LeaveID,
		EventType:     event.EventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
	})
}

func newLeaveEvent(eventType string, l LeaveRequest, actorID uuid.UUID, at time.Time) events.LeaveEvent {
	return events.LeaveEvent{
		EventType:       eventType,
		LeaveID:         l.ID.String(),
		UserID:          l.UserID.String(),
		LeaveType:       string(l.LeaveType),
		StartDate:       formatDate(l.StartDate),
		EndDate:         formatDate(l.EndDate),
		Days:            l.Days,
		Status:          string(l.Status),
		ActorID:         actorID.String(),
		RejectionReason: l.RejectionReason,
		OccurredAt:      at.UTC(),
	}
}

func adminFilter(q AdminListQuery) (ListFilter, error) {
	f := ListFilter{Status: q.Status, WithUser: true}
	if q.UserID != "" {
		uid, err := uuid.Parse(q.UserID)
		if err != nil {
			return ListFilter{}, apperror.NewValidationError(map[string][]string{
				"user_id": {"User ID tidak valid"},
			})
		}
		f.UserID = &uid
	}
	return f, nil
}

// parseLeaveID treats ids that cannot exist as missing records.
func parseLeaveID(id string) (uuid.UUID, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, leaveerrors.ErrLeaveNotFound
	}
	return leaveID, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
