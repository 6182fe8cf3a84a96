package kafka

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuti-management/backend/internal/shared/testdb"
)

func newTestOutboxRepo(t *testing.T, now time.Time) *outboxRepository {
	t.Helper()
	db := testdb.Open(t, &OutboxEvent{})
	return &outboxRepository{db: db, now: func() time.Time { return now }}
}

func validEvent() *OutboxEvent {
	return &OutboxEvent{
		AggregateType: "leave_request",
		AggregateID:   "leave-1",
		EventType:     "leave.created",
		Topic:         "hr.leave.lifecycle.v1",
		Payload:       []byte(`{}`),
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := newTestOutboxRepo(t, time.Now())

	ev := validEvent()
	require.NoError(t, repo.Create(ctx, ev))
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, OutboxStatusPending, ev.Status)

	missingTopic := validEvent()
	missingTopic.Topic = ""
	assert.EqualError(t, repo.Create(ctx, missingTopic), "outbox topic is required")

	badStatus := validEvent()
	badStatus.Status = "lost"
	assert.EqualError(t, repo.Create(ctx, badStatus), "invalid outbox status: lost")
}

func TestOutboxRepository_MarkFailedSchedulesRetry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	repo := newTestOutboxRepo(t, now)

	ev := validEvent()
	require.NoError(t, repo.Create(ctx, ev))

	reason := strings.Repeat("x", outboxErrorMaxLen+50)
	require.NoError(t, repo.MarkFailed(ctx, *ev, reason))

	var stored OutboxEvent
	require.NoError(t, repo.db.First(&stored, "id = ?", ev.ID).Error)
	assert.Equal(t, OutboxStatusFailed, stored.Status)
	assert.Equal(t, 1, stored.RetryCount)
	require.NotNil(t, stored.ErrorMessage)
	assert.Len(t, *stored.ErrorMessage, outboxErrorMaxLen)
	require.NotNil(t, stored.NextRetryAt)
	assert.True(t, stored.NextRetryAt.Equal(now.Add(outboxRetryStep)))

	// belum waktunya retry
	pending, err := repo.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	repo.now = func() time.Time { return now.Add(time.Minute) }
	pending, err = repo.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ev.ID, pending[0].ID)
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	ctx := context.Background()
	repo := newTestOutboxRepo(t, time.Now())

	ev := validEvent()
	require.NoError(t, repo.Create(ctx, ev))
	require.NoError(t, repo.MarkSent(ctx, ev.ID))

	var stored OutboxEvent
	require.NoError(t, repo.db.First(&stored, "id = ?", ev.ID).Error)
	assert.Equal(t, OutboxStatusSent, stored.Status)
	assert.NotNil(t, stored.ProcessedAt)

	pending, err := repo.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
