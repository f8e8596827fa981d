package room

import (
	"strings"
	"time"

	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyNumber     = errs.Wrap(errs.ErrValidation, "room number cannot be empty")
	ErrNumberTooLong   = errs.Wrap(errs.ErrValidation, "room number is too long (max 16 characters)")
	ErrInvalidType     = errs.Wrap(errs.ErrValidation, "invalid room type")
	ErrInvalidStatus   = errs.Wrap(errs.ErrValidation, "invalid room status")
	ErrNegativeRate    = errs.Wrap(errs.ErrValidation, "nightly rate cannot be negative")
	ErrInvalidCapacity = errs.Wrap(errs.ErrValidation, "capacity must be at least 1")
)

const MaxNumberLength = 16

type Room struct {
	id        uuid.UUID
	number    string
	roomType  Type
	rate      pricing.Money
	capacity  int
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewRoom(number string, roomType Type, rate pricing.Money, capacity int, now time.Time) (*Room, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrEmptyNumber
	}
	if len(number) > MaxNumberLength {
		return nil, ErrNumberTooLong
	}
	if !roomType.IsValid() {
		return nil, ErrInvalidType
	}
	if rate.IsNegative() {
		return nil, ErrNegativeRate
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	return &Room{
		id:        uuid.New(),
		number:    number,
		roomType:  roomType,
		rate:      rate,
		capacity:  capacity,
		status:    StatusAvailable,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructRoom(
	id uuid.UUID,
	number string,
	roomType Type,
	rate pricing.Money,
	capacity int,
	status Status,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:        id,
		number:    number,
		roomType:  roomType,
		rate:      rate,
		capacity:  capacity,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Room) Fits(guests int) bool {
	return guests >= 1 && guests <= r.capacity
}

func (r *Room) ChangeStatus(status Status, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	r.status = status
	r.updatedAt = now
	return nil
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Number() string       { return r.number }
func (r *Room) Type() Type           { return r.roomType }
func (r *Room) Rate() pricing.Money  { return r.rate }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) Status() Status       { return r.status }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }
