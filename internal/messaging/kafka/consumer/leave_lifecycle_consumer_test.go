package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cuti-management/backend/internal/bootstrap"
	"github.com/cuti-management/backend/internal/events"
	"github.com/cuti-management/backend/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
)

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		r.cancel()
		return kafkago.Message{}, context.Canceled
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

type recordingAudit struct {
	entries    []bootstrap.AuditLog
	requestIDs []string
}

func (a *recordingAudit) Log(ctx context.Context, entry bootstrap.AuditLog) {
	a.entries = append(a.entries, entry)
	a.requestIDs = append(a.requestIDs, contextutil.GetRequestID(ctx))
}

func eventMessage(t *testing.T, offset int64, ev events.LeaveEvent) kafkago.Message {
	t.Helper()
	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	return kafkago.Message{
		Offset:  offset,
		Value:   raw,
		Headers: []kafkago.Header{{Key: "request_id", Value: []byte("req-7")}},
	}
}

func TestConsumeLeaveLifecycle(t *testing.T) {
	reason := "Kuota habis"
	approved := events.LeaveEvent{
		EventType:  events.LeaveApproved,
		LeaveID:    "leave-1",
		UserID:     "user-1",
		ActorID:    "admin-1",
		Status:     "approved",
		Days:       2,
		OccurredAt: time.Date(2024, 11, 10, 8, 0, 0, 0, time.UTC),
	}
	rejected := approved
	rejected.EventType = events.LeaveRejected
	rejected.LeaveID = "leave-2"
	rejected.Status = "rejected"
	rejected.RejectionReason = &reason

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{cancel: cancel, queue: []kafkago.Message{
		eventMessage(t, 1, approved),
		{Offset: 2, Value: []byte("not json")},
		eventMessage(t, 3, rejected),
	}}
	audit := &recordingAudit{}

	ConsumeLeaveLifecycle(ctx, reader, audit, zap.NewNop())

	require.Len(t, audit.entries, 2)
	assert.Equal(t, "LEAVE_APPROVED", audit.entries[0].Action)
	assert.Equal(t, "leave-1", audit.entries[0].Meta["leave_id"])
	assert.Equal(t, "2024-11-10T08:00:00Z", audit.entries[0].Meta["occurred_at"])
	assert.Equal(t, "LEAVE_REJECTED", audit.entries[1].Action)
	assert.Equal(t, "Kuota habis", audit.entries[1].Meta["rejection_reason"])
	assert.Equal(t, []string{"req-7", "req-7"}, audit.requestIDs)

	// the poison message is committed too
	assert.Len(t, reader.committed, 3)
}

func TestDecodeLeaveEvent(t *testing.T) {
	_, err := decodeLeaveEvent([]byte(`{"event_type":"leave.archived"}`))
	assert.True(t, errors.Is(err, errUnknownEventType))

	ev, err := decodeLeaveEvent([]byte(`{"event_type":"leave.deleted","leave_id":"d"}`))
	assert.NoError(t, err)
	assert.Equal(t, "LEAVE_DELETED", auditEntry(ev).Action)
	assert.Equal(t, "leave request d deleted", auditEntry(ev).Message)

	ev, err = decodeLeaveEvent([]byte(`{"event_type":"leave.created","leave_id":"x"}`))
	assert.NoError(t, err)
	assert.Equal(t, "x", ev.LeaveID)
}
