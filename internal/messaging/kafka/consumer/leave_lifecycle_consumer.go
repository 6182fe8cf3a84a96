package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cuti-management/backend/internal/bootstrap"
	"github.com/cuti-management/backend/internal/events"
	"github.com/cuti-management/backend/internal/metrics"
	"github.com/cuti-management/backend/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const fetchRetryDelay = time.Second

var errUnknownEventType = errors.New("unknown leave event type")

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLeaveLifecycle writes one audit entry per leave lifecycle event.
// Undecodable messages are committed and skipped.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			select {
			case <-ctx.Done():
				log.Info("leave lifecycle consumer stopped")
				return
			case <-time.After(fetchRetryDelay):
			}
			continue
		}

		handleMessage(ctx, reader, audit, log, msg)
	}
}

func handleMessage(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	log *zap.Logger,
	msg kafkago.Message,
) {
	event, err := decodeLeaveEvent(msg.Value)
	if err != nil {
		metrics.ObserveEventConsumed("unknown", "skipped")
		log.Error("decode leave event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
		}
		return
	}

	auditCtx := ctx
	if rid := headerValue(msg, "request_id"); rid != "" {
		auditCtx = contextutil.WithRequestID(ctx, rid)
	}
	audit.Log(auditCtx, auditEntry(event))

	if err := reader.CommitMessages(ctx, msg); err != nil {
		metrics.ObserveEventConsumed(event.EventType, "commit_failed")
		log.Error("commit leave lifecycle message failed", zap.Error(err))
		return
	}

	metrics.ObserveEventConsumed(event.EventType, "ok")
	log.Debug("leave event audited",
		zap.String("event_type", event.EventType),
		zap.String("leave_id", event.LeaveID),
	)
}

func decodeLeaveEvent(raw []byte) (events.LeaveEvent, error) {
	var event events.LeaveEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return events.LeaveEvent{}, err
	}
	switch event.EventType {
	case events.LeaveCreated, events.LeaveApproved, events.LeaveRejected, events.LeaveDeleted:
		return event, nil
	default:
		return events.LeaveEvent{}, fmt.Errorf("%w: %q", errUnknownEventType, event.EventType)
	}
}

// auditEntry: leave.approved -> LEAVE_APPROVED
func auditEntry(event events.LeaveEvent) bootstrap.AuditLog {
	meta := map[string]any{
		"leave_id":    event.LeaveID,
		"user_id":     event.UserID,
		"actor_id":    event.ActorID,
		"leave_type":  event.LeaveType,
		"start_date":  event.StartDate,
		"end_date":    event.EndDate,
		"days":        event.Days,
		"status":      event.Status,
		"occurred_at": event.OccurredAt.Format(time.RFC3339),
	}
	if event.RejectionReason != nil {
		meta["rejection_reason"] = *event.RejectionReason
	}

	return bootstrap.AuditLog{
		Action:  strings.ToUpper(strings.ReplaceAll(event.EventType, ".", "_")),
		Message: fmt.Sprintf("leave request %s %s", event.LeaveID, strings.TrimPrefix(event.EventType, "leave.")),
		Meta:    meta,
	}
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
