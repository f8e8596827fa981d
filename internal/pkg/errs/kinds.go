package errs

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stable error kinds returned to callers. Every domain failure wraps exactly
// one of these so errors.Is keeps working across layers.
var (
	ErrAvailabilityConflict = errors.New("AvailabilityConflict")
	ErrCapacityExceeded     = errors.New("CapacityExceeded")
	ErrInvalidRange         = errors.New("InvalidRange")
	ErrInvalidTransition    = errors.New("InvalidTransition")
	ErrReservationClosed    = errors.New("ReservationClosed")
	ErrBalanceNotSettled    = errors.New("BalanceNotSettled")
	ErrNotFound             = errors.New("NotFound")
	ErrValidation           = errors.New("Validation")
	ErrIdempotencyConflict  = errors.New("IdempotencyConflict")
)

const KindInternal = "Internal"

var kinds = []error{
	ErrAvailabilityConflict,
	ErrCapacityExceeded,
	ErrInvalidRange,
	ErrInvalidTransition,
	ErrReservationClosed,
	ErrBalanceNotSettled,
	ErrNotFound,
	ErrValidation,
	ErrIdempotencyConflict,
}

// KindOf returns the stable kind string for err, or KindInternal.
func KindOf(err error) string {
	if err == nil || IsAssertionFailure(err) {
		return KindInternal
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return KindInternal
}

// ConflictError names the reservation and dates that block a claim.
type ConflictError struct {
	RoomID        uuid.UUID
	ReservationID uuid.UUID
	CheckIn       time.Time
	CheckOut      time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %s is held by reservation %s from %s to %s",
		e.RoomID, e.ReservationID, e.CheckIn.Format(time.DateOnly), e.CheckOut.Format(time.DateOnly))
}

func (e *ConflictError) Unwrap() error { return ErrAvailabilityConflict }

// BalanceError carries the exact amount (minor units) still owed.
type BalanceError struct {
	ReservationID uuid.UUID
	AmountDue     int64
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("reservation %s has an unsettled balance of %d", e.ReservationID, e.AmountDue)
}

func (e *BalanceError) Unwrap() error { return ErrBalanceNotSettled }
