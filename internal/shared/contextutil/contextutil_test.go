package contextutil_test

import (
	"context"
	"testing"

	"github.com/cuti-management/backend/internal/domain"
	"github.com/cuti-management/backend/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIdentityRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, ok := contextutil.GetIdentity(ctx)
	assert.False(t, ok)
	assert.Equal(t, "", contextutil.GetUserID(ctx))

	uid := uuid.New()
	ctx = contextutil.WithIdentity(ctx, contextutil.Identity{UserID: uid, Username: "admin", Role: domain.RoleAdmin})
	ctx = contextutil.WithRequestID(ctx, "rid-1")

	id, ok := contextutil.GetIdentity(ctx)
	assert.True(t, ok)
	assert.True(t, id.IsAdmin())
	assert.Equal(t, contextutil.Metadata{RequestID: "rid-1", UserID: uid.String()}, contextutil.ExtractMetadata(ctx))
}

func TestGetLoggerFallback(t *testing.T) {
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))

	def := zap.NewNop()
	assert.Same(t, def, contextutil.GetLogger(context.Background(), def))

	scoped := zap.NewExample()
	ctx := contextutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, contextutil.GetLogger(ctx, def))
}
