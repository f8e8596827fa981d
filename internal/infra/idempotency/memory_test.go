//go:build unit

package idempotency_test

import (
	"context"
	"testing"
	"time"

	"innkeeper/internal/infra/idempotency"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC))
	store := idempotency.NewMemoryStore(clk)
	ttl := time.Hour

	rec, inserted, err := store.TryInsert(ctx, "k1", "hash-a", ttl)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, shared.IdempotencyProcessing, rec.Status)

	t.Run("second insert sees the processing record", func(t *testing.T) {
		rec, inserted, err := store.TryInsert(ctx, "k1", "hash-b", ttl)
		require.NoError(t, err)
		assert.False(t, inserted)
		assert.Equal(t, "hash-a", rec.RequestHash)
		assert.Equal(t, shared.IdempotencyProcessing, rec.Status)
	})

	t.Run("completed record carries the reservation", func(t *testing.T) {
		id := uuid.New()
		require.NoError(t, store.MarkCompleted(ctx, "k1", id, ttl))

		rec, inserted, err := store.TryInsert(ctx, "k1", "hash-a", ttl)
		require.NoError(t, err)
		assert.False(t, inserted)
		assert.Equal(t, shared.IdempotencyCompleted, rec.Status)
		assert.Equal(t, id, rec.ResultReservationID)
	})

	t.Run("expired key can be reused", func(t *testing.T) {
		clk.Add(ttl)
		_, inserted, err := store.TryInsert(ctx, "k1", "hash-c", ttl)
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("deleted key can be reused", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "k1"))
		_, inserted, err := store.TryInsert(ctx, "k1", "hash-d", ttl)
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("completing an unknown key fails", func(t *testing.T) {
		assert.Error(t, store.MarkCompleted(ctx, "missing", uuid.New(), ttl))
	})
}
