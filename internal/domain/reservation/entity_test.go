//go:build unit

package reservation_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/pkg/errs"
	"innkeeper/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bogota = time.FixedZone("America/Bogota", -5*60*60)

func newPending(t *testing.T) *reservation.Reservation {
	t.Helper()
	res, err := builder.NewReservationBuilder().BuildDomain()
	require.NoError(t, err)
	return res
}

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual := newPending(t)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, reservation.StatePending, actual.State())
		assert.Equal(t, 2, actual.Nights())
		assert.Equal(t, int64(300000), actual.BaseTotal().Minor())
		assert.False(t, actual.Paid())
		assert.Equal(t, int64(1), actual.Version())
	})

	testCases := []struct {
		name   string
		mutate func(*builder.ReservationBuilder)
		errIs  error
	}{
		{
			name:   "guests above capacity",
			mutate: func(b *builder.ReservationBuilder) { b.WithGuests(3) },
			errIs:  errs.ErrCapacityExceeded,
		},
		{
			name:   "guests at capacity",
			mutate: func(b *builder.ReservationBuilder) { b.WithGuests(2) },
		},
		{
			name:   "no guests",
			mutate: func(b *builder.ReservationBuilder) { b.WithGuests(0) },
			errIs:  reservation.ErrNoGuests,
		},
		{
			name:   "missing guest id",
			mutate: func(b *builder.ReservationBuilder) { b.GuestID = uuid.Nil },
			errIs:  reservation.ErrMissingGuest,
		},
		{
			name:   "check-out equal to check-in",
			mutate: func(b *builder.ReservationBuilder) { b.WithStay("2025-11-12", "2025-11-12") },
			errIs:  errs.ErrInvalidRange,
		},
		{
			name:   "check-out before check-in",
			mutate: func(b *builder.ReservationBuilder) { b.WithStay("2025-11-14", "2025-11-12") },
			errIs:  errs.ErrInvalidRange,
		},
		{
			name:   "malformed date",
			mutate: func(b *builder.ReservationBuilder) { b.WithStay("12/11/2025", "2025-11-14") },
			errIs:  errs.ErrInvalidRange,
		},
		{
			name:   "note too long",
			mutate: func(b *builder.ReservationBuilder) { b.Note = strings.Repeat("a", reservation.MaxNoteLength+1) },
			errIs:  errs.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.NewReservationBuilder().With(tc.mutate).BuildDomain()
			if tc.errIs == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.errIs), "expected %v, got %v", tc.errIs, err)
		})
	}
}

func TestStateMachine(t *testing.T) {
	allowed := map[reservation.State][]reservation.Event{
		reservation.StatePending:    {reservation.EventConfirm, reservation.EventCancel, reservation.EventExpire},
		reservation.StateConfirmed:  {reservation.EventCheckIn, reservation.EventCancel},
		reservation.StateCheckedIn:  {reservation.EventCheckOut},
		reservation.StateCheckedOut: {},
		reservation.StateCancelled:  {},
	}
	events := []reservation.Event{
		reservation.EventConfirm, reservation.EventCheckIn, reservation.EventCheckOut,
		reservation.EventCancel, reservation.EventExpire,
	}

	for from, ok := range allowed {
		for _, e := range events {
			_, err := from.Next(e)
			if contains(ok, e) {
				assert.NoError(t, err, "%s --%s-->", from, e)
			} else {
				assert.ErrorIs(t, err, errs.ErrInvalidTransition, "%s --%s-->", from, e)
			}
		}
	}

	assert.True(t, reservation.StateCheckedOut.IsTerminal())
	assert.True(t, reservation.StateCancelled.IsTerminal())
	assert.True(t, reservation.StatePending.HoldsRoom())
	assert.True(t, reservation.StateCheckedIn.HoldsRoom())
	assert.False(t, reservation.StateCancelled.HoldsRoom())
}

func contains(events []reservation.Event, e reservation.Event) bool {
	for _, x := range events {
		if x == e {
			return true
		}
	}
	return false
}

func TestReservation_Lifecycle(t *testing.T) {
	now := time.Date(2025, 11, 12, 15, 0, 0, 0, bogota)

	res := newPending(t)
	require.NoError(t, res.Confirm(0, 0, now))
	assert.Equal(t, reservation.StateConfirmed, res.State())

	require.NoError(t, res.CheckIn(now, bogota, 0))
	assert.Equal(t, reservation.StateCheckedIn, res.State())

	var balanceErr *errs.BalanceError
	err := res.CheckOut(pricing.NewMoney(25000), false, now)
	require.ErrorAs(t, err, &balanceErr)
	assert.Equal(t, int64(25000), balanceErr.AmountDue)
	assert.ErrorIs(t, err, errs.ErrBalanceNotSettled)
	assert.Equal(t, reservation.StateCheckedIn, res.State())

	require.NoError(t, res.CheckOut(0, false, now))
	assert.Equal(t, reservation.StateCheckedOut, res.State())

	_, err = res.Cancel(reservation.CancelReasonRequested, now)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestReservation_CheckOutOverride(t *testing.T) {
	now := time.Date(2025, 11, 13, 9, 0, 0, 0, bogota)
	res := builder.NewReservationBuilder().WithState(reservation.StateCheckedIn).BuildStored()

	require.NoError(t, res.CheckOut(pricing.NewMoney(5000), true, now))
	assert.Equal(t, reservation.StateCheckedOut, res.State())
}

func TestReservation_Confirm(t *testing.T) {
	now := time.Date(2025, 11, 1, 13, 0, 0, 0, bogota)

	t.Run("deposit missing", func(t *testing.T) {
		res := newPending(t)
		err := res.Confirm(pricing.NewMoney(10000), pricing.NewMoney(90000), now)
		assert.ErrorIs(t, err, reservation.ErrDepositRequired)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, reservation.StatePending, res.State())
	})

	t.Run("deposit covered", func(t *testing.T) {
		res := newPending(t)
		require.NoError(t, res.Confirm(pricing.NewMoney(90000), pricing.NewMoney(90000), now))
		assert.Equal(t, reservation.StateConfirmed, res.State())
		assert.Equal(t, int64(2), res.Version())
	})

	t.Run("confirming a cancelled reservation", func(t *testing.T) {
		res := builder.NewReservationBuilder().WithState(reservation.StateCancelled).BuildStored()
		assert.ErrorIs(t, res.Confirm(0, 0, now), errs.ErrInvalidTransition)
	})
}

func TestReservation_CheckInWindow(t *testing.T) {
	testCases := []struct {
		name  string
		now   time.Time
		grace time.Duration
		ok    bool
	}{
		{name: "the day before", now: time.Date(2025, 11, 11, 20, 0, 0, 0, bogota), ok: false},
		{name: "the day before within grace", now: time.Date(2025, 11, 11, 20, 0, 0, 0, bogota), grace: 6 * time.Hour, ok: true},
		{name: "midnight of check-in", now: time.Date(2025, 11, 12, 0, 0, 0, 0, bogota), ok: true},
		{name: "last night of the stay", now: time.Date(2025, 11, 13, 23, 59, 0, 0, bogota), ok: true},
		{name: "check-out day", now: time.Date(2025, 11, 14, 0, 0, 0, 0, bogota), ok: false},
		// 04:00 UTC on the 12th is still the 11th in Bogota
		{name: "zone is honoured", now: time.Date(2025, 11, 12, 4, 0, 0, 0, time.UTC), ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := builder.NewReservationBuilder().WithState(reservation.StateConfirmed).BuildStored()
			err := res.CheckIn(tc.now, bogota, tc.grace)
			if tc.ok {
				assert.NoError(t, err)
				assert.Equal(t, reservation.StateCheckedIn, res.State())
			} else {
				assert.ErrorIs(t, err, reservation.ErrOutsideCheckIn)
				assert.Equal(t, reservation.StateConfirmed, res.State())
			}
		})
	}
}

func TestReservation_Cancel(t *testing.T) {
	now := time.Date(2025, 11, 2, 10, 0, 0, 0, bogota)

	res := newPending(t)
	changed, err := res.Cancel(reservation.CancelReasonRequested, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, reservation.CancelReasonRequested, res.CancelReason())
	version := res.Version()

	changed, err = res.Cancel(reservation.CancelReasonRequested, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, version, res.Version())

	checkedIn := builder.NewReservationBuilder().WithState(reservation.StateCheckedIn).BuildStored()
	_, err = checkedIn.Cancel(reservation.CancelReasonRequested, now)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestReservation_Expire(t *testing.T) {
	now := time.Date(2025, 11, 1, 12, 30, 0, 0, time.UTC)

	res := newPending(t)
	assert.True(t, res.Expire(now))
	assert.Equal(t, reservation.StateCancelled, res.State())
	assert.Equal(t, reservation.CancelReasonHoldExpired, res.CancelReason())

	confirmed := builder.NewReservationBuilder().WithState(reservation.StateConfirmed).BuildStored()
	assert.False(t, confirmed.Expire(now))
	assert.Equal(t, reservation.StateConfirmed, confirmed.State())
}

func TestReservation_SyncPaid(t *testing.T) {
	now := time.Date(2025, 11, 1, 12, 30, 0, 0, time.UTC)
	res := newPending(t)

	assert.False(t, res.SyncPaid(false, now))
	assert.True(t, res.SyncPaid(true, now))
	assert.True(t, res.Paid())
	assert.False(t, res.SyncPaid(true, now))
}
