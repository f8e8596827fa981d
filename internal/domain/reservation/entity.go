package reservation

import (
	"time"

	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/room"
	"innkeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNoGuests        = errs.Wrap(errs.ErrValidation, "guest count must be at least 1")
	ErrMissingGuest    = errs.Wrap(errs.ErrValidation, "guest id is required")
	ErrOutsideCheckIn  = errs.Wrap(errs.ErrInvalidTransition, "check-in is only possible between the check-in date (minus grace window) and the check-out date")
	ErrDepositRequired = errs.Wrap(errs.ErrInvalidTransition, "deposit has not been received")
)

type Reservation struct {
	id           uuid.UUID
	roomID       uuid.UUID
	guestID      uuid.UUID
	stay         StayRange
	guests       int
	baseTotal    pricing.Money
	paid         bool
	state        State
	cancelReason CancelReason
	note         Note
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

// ValidateBooking checks the request against the room before any range is
// claimed, so a rejected request never leaves a claim behind.
func ValidateBooking(rm *room.Room, guestID uuid.UUID, guests int) error {
	if guestID == uuid.Nil {
		return ErrMissingGuest
	}
	if guests < 1 {
		return ErrNoGuests
	}
	if !rm.Fits(guests) {
		return errs.Wrapf(errs.ErrCapacityExceeded,
			"room %s holds %d guests, %d requested", rm.Number(), rm.Capacity(), guests)
	}
	return nil
}

func NewReservation(
	id uuid.UUID,
	rm *room.Room,
	guestID uuid.UUID,
	stay StayRange,
	guests int,
	baseTotal pricing.Money,
	note Note,
	now time.Time,
) (*Reservation, error) {
	if err := ValidateBooking(rm, guestID, guests); err != nil {
		return nil, err
	}
	if stay.Nights() < 1 {
		return nil, errs.AssertionFailed("reservation built with %d nights", stay.Nights())
	}
	if baseTotal.IsNegative() {
		return nil, errs.AssertionFailed("reservation built with negative base total %d", baseTotal)
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Reservation{
		id:        id,
		roomID:    rm.ID(),
		guestID:   guestID,
		stay:      stay,
		guests:    guests,
		baseTotal: baseTotal,
		state:     StatePending,
		note:      note,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructReservation(
	id, roomID, guestID uuid.UUID,
	stay StayRange,
	guests int,
	baseTotal pricing.Money,
	paid bool,
	state State,
	cancelReason CancelReason,
	note Note,
	version int64,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		roomID:       roomID,
		guestID:      guestID,
		stay:         stay,
		guests:       guests,
		baseTotal:    baseTotal,
		paid:         paid,
		state:        state,
		cancelReason: cancelReason,
		note:         note,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Reservation) apply(e Event, now time.Time) error {
	next, err := r.state.Next(e)
	if err != nil {
		return errs.Wrapf(err, "reservation %s", r.id)
	}
	r.state = next
	r.touch(now)
	return nil
}

func (r *Reservation) touch(now time.Time) {
	r.version++
	r.updatedAt = now
}

// Confirm moves PENDING to CONFIRMED. depositDue is the share of the base
// total that must already be paid; zero means the policy allows no deposit.
func (r *Reservation) Confirm(amountPaid, depositDue pricing.Money, now time.Time) error {
	if r.state == StatePending && amountPaid < depositDue {
		return errs.Wrapf(ErrDepositRequired, "reservation %s: %d of %d paid", r.id, amountPaid, depositDue)
	}
	return r.apply(EventConfirm, now)
}

// CheckIn is allowed from grace before midnight of the check-in date up to
// (excluding) midnight of the check-out date, in the property zone.
func (r *Reservation) CheckIn(now time.Time, loc *time.Location, grace time.Duration) error {
	if r.state == StateConfirmed {
		opens := r.stay.CheckInAt(loc).Add(-grace)
		closes := r.stay.CheckOutAt(loc)
		if now.Before(opens) || !now.Before(closes) {
			return errs.Wrapf(ErrOutsideCheckIn, "reservation %s at %s", r.id, now.In(loc).Format(time.RFC3339))
		}
	}
	return r.apply(EventCheckIn, now)
}

// CheckOut requires a settled folio unless the operator overrides it.
func (r *Reservation) CheckOut(balanceDue pricing.Money, override bool, now time.Time) error {
	if r.state == StateCheckedIn && balanceDue > 0 && !override {
		return &errs.BalanceError{ReservationID: r.id, AmountDue: balanceDue.Minor()}
	}
	return r.apply(EventCheckOut, now)
}

// Cancel is idempotent: an already cancelled reservation reports changed=false
// and no error.
func (r *Reservation) Cancel(reason CancelReason, now time.Time) (changed bool, err error) {
	if r.state == StateCancelled {
		return false, nil
	}
	if err := r.apply(EventCancel, now); err != nil {
		return false, err
	}
	r.cancelReason = reason
	return true, nil
}

// Expire cancels an abandoned PENDING reservation. Any other state is left
// untouched.
func (r *Reservation) Expire(now time.Time) bool {
	if r.state != StatePending {
		return false
	}
	if err := r.apply(EventExpire, now); err != nil {
		return false
	}
	r.cancelReason = CancelReasonHoldExpired
	return true
}

// SyncPaid records the derived paid flag. It reports whether it changed.
func (r *Reservation) SyncPaid(paid bool, now time.Time) bool {
	if r.paid == paid {
		return false
	}
	r.paid = paid
	r.touch(now)
	return true
}

func (r *Reservation) IsTerminal() bool { return r.state.IsTerminal() }

func (r *Reservation) ID() uuid.UUID              { return r.id }
func (r *Reservation) RoomID() uuid.UUID          { return r.roomID }
func (r *Reservation) GuestID() uuid.UUID         { return r.guestID }
func (r *Reservation) Stay() StayRange            { return r.stay }
func (r *Reservation) Nights() int                { return r.stay.Nights() }
func (r *Reservation) Guests() int                { return r.guests }
func (r *Reservation) BaseTotal() pricing.Money   { return r.baseTotal }
func (r *Reservation) Paid() bool                 { return r.paid }
func (r *Reservation) State() State               { return r.state }
func (r *Reservation) CancelReason() CancelReason { return r.cancelReason }
func (r *Reservation) Note() Note                 { return r.note }
func (r *Reservation) Version() int64             { return r.version }
func (r *Reservation) CreatedAt() time.Time       { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time       { return r.updatedAt }
