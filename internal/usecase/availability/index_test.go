//go:build unit

package availability_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/availability"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expiry = time.Date(2025, 11, 1, 12, 15, 0, 0, time.UTC)

func stay(t *testing.T, in, out string) reservation.StayRange {
	t.Helper()
	s, err := reservation.ParseStayRange(in, out)
	require.NoError(t, err)
	return s
}

func TestIndex_TryClaim(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()

	x := availability.NewIndex()
	first := uuid.New()
	_, err := x.TryClaim(ctx, roomID, stay(t, "2025-11-12", "2025-11-14"), first, expiry)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		in, out  string
		conflict bool
	}{
		{name: "identical range", in: "2025-11-12", out: "2025-11-14", conflict: true},
		{name: "overlapping tail", in: "2025-11-13", out: "2025-11-16", conflict: true},
		{name: "overlapping head", in: "2025-11-10", out: "2025-11-13", conflict: true},
		{name: "enclosing", in: "2025-11-01", out: "2025-11-30", conflict: true},
		{name: "back to back after", in: "2025-11-14", out: "2025-11-15"},
		{name: "back to back before", in: "2025-11-11", out: "2025-11-12"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id := uuid.New()
			_, err := x.TryClaim(ctx, roomID, stay(t, tc.in, tc.out), id, expiry)
			if !tc.conflict {
				require.NoError(t, err)
				released, err := x.Release(ctx, roomID, id)
				require.NoError(t, err)
				assert.True(t, released)
				return
			}
			var conflict *errs.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.ErrorIs(t, err, errs.ErrAvailabilityConflict)
			assert.Equal(t, first, conflict.ReservationID)
			assert.Equal(t, "2025-11-12", conflict.CheckIn.Format(time.DateOnly))
		})
	}

	t.Run("another room is independent", func(t *testing.T) {
		_, err := x.TryClaim(ctx, uuid.New(), stay(t, "2025-11-12", "2025-11-14"), uuid.New(), expiry)
		assert.NoError(t, err)
	})

	t.Run("empty range is rejected", func(t *testing.T) {
		_, err := x.TryClaim(ctx, roomID, reservation.StayRange{}, uuid.New(), expiry)
		assert.ErrorIs(t, err, errs.ErrInvalidRange)
	})

	t.Run("cancelled context claims nothing", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := x.TryClaim(cctx, roomID, stay(t, "2026-01-01", "2026-01-02"), uuid.New(), expiry)
		assert.ErrorIs(t, err, context.Canceled)
		free, err := x.IsFree(ctx, roomID, stay(t, "2026-01-01", "2026-01-02"))
		require.NoError(t, err)
		assert.True(t, free)
	})
}

func TestIndex_ConcurrentClaimsNeverDoubleBook(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	x := availability.NewIndex()

	const workers = 64
	var (
		wg        sync.WaitGroup
		won       atomic.Int32
		conflicts atomic.Int32
		start     = make(chan struct{})
	)
	// every worker asks for a range that overlaps [11-12, 11-14)
	ranges := []reservation.StayRange{
		stay(t, "2025-11-12", "2025-11-14"),
		stay(t, "2025-11-13", "2025-11-15"),
		stay(t, "2025-11-11", "2025-11-13"),
		stay(t, "2025-11-10", "2025-11-20"),
	}

	for i := range workers {
		wg.Add(1)
		go func(r reservation.StayRange) {
			defer wg.Done()
			<-start
			_, err := x.TryClaim(ctx, roomID, r, uuid.New(), expiry)
			switch {
			case err == nil:
				won.Add(1)
			case errors.Is(err, errs.ErrAvailabilityConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(ranges[i%len(ranges)])
	}
	close(start)
	wg.Wait()

	claims := x.Claims(roomID)
	for i := 1; i < len(claims); i++ {
		assert.False(t, claims[i-1].Stay.Overlaps(claims[i].Stay), "claims %d and %d overlap", i-1, i)
	}
	assert.Equal(t, int32(workers), won.Load()+conflicts.Load())
	assert.Equal(t, int32(len(claims)), won.Load())
	// [11-12,11-14) overlaps every other range, so at most two disjoint winners exist
	assert.LessOrEqual(t, won.Load(), int32(2))
}

func TestIndex_ConfirmAndRelease(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	resID := uuid.New()
	x := availability.NewIndex()

	_, err := x.TryClaim(ctx, roomID, stay(t, "2025-11-12", "2025-11-14"), resID, expiry)
	require.NoError(t, err)

	require.NoError(t, x.Confirm(ctx, roomID, resID))
	require.NoError(t, x.Confirm(ctx, roomID, resID))
	claim, ok := x.Lookup(roomID, resID)
	require.True(t, ok)
	assert.Equal(t, availability.KindConfirmed, claim.Kind)
	assert.True(t, claim.ExpiresAt.IsZero())
	assert.False(t, claim.Expired(expiry.Add(time.Hour)))

	assert.ErrorIs(t, x.Confirm(ctx, roomID, uuid.New()), errs.ErrNotFound)
	assert.ErrorIs(t, x.Confirm(ctx, uuid.New(), resID), errs.ErrNotFound)

	released, err := x.Release(ctx, roomID, resID)
	require.NoError(t, err)
	assert.True(t, released)

	released, err = x.Release(ctx, roomID, resID)
	require.NoError(t, err)
	assert.False(t, released)

	free, err := x.IsFree(ctx, roomID, stay(t, "2025-11-12", "2025-11-14"))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestIndex_ExpiredHolds(t *testing.T) {
	ctx := context.Background()
	x := availability.NewIndex()

	late := uuid.New()
	early := uuid.New()
	confirmed := uuid.New()
	fresh := uuid.New()

	_, err := x.TryClaim(ctx, uuid.New(), stay(t, "2025-11-12", "2025-11-14"), late, expiry.Add(time.Minute))
	require.NoError(t, err)
	_, err = x.TryClaim(ctx, uuid.New(), stay(t, "2025-11-12", "2025-11-14"), early, expiry)
	require.NoError(t, err)
	confirmedRoom := uuid.New()
	_, err = x.TryClaim(ctx, confirmedRoom, stay(t, "2025-11-12", "2025-11-14"), confirmed, expiry)
	require.NoError(t, err)
	require.NoError(t, x.Confirm(ctx, confirmedRoom, confirmed))
	_, err = x.TryClaim(ctx, uuid.New(), stay(t, "2025-11-12", "2025-11-14"), fresh, expiry.Add(time.Hour))
	require.NoError(t, err)

	expired := x.ExpiredHolds(expiry.Add(time.Minute))
	require.Len(t, expired, 2)
	assert.Equal(t, early, expired[0].ReservationID)
	assert.Equal(t, late, expired[1].ReservationID)

	assert.Empty(t, x.ExpiredHolds(expiry.Add(-time.Second)))
}

func TestIndex_Restore(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	x := availability.NewIndex()

	claim := availability.Claim{
		RoomID:        roomID,
		ReservationID: uuid.New(),
		Stay:          stay(t, "2025-11-12", "2025-11-14"),
		Kind:          availability.KindConfirmed,
	}
	require.NoError(t, x.Restore(ctx, claim))

	restored, ok := x.Lookup(roomID, claim.ReservationID)
	require.True(t, ok)
	assert.Equal(t, availability.KindConfirmed, restored.Kind)

	clash := claim
	clash.ReservationID = uuid.New()
	assert.ErrorIs(t, x.Restore(ctx, clash), errs.ErrAvailabilityConflict)
}
