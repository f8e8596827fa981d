package request

import (
	"strings"

	"innkeeper/internal/domain/folio"
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/pkg/patch"
	"innkeeper/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID   uuid.UUID `json:"roomId" binding:"required"`
	GuestID  uuid.UUID `json:"guestId" binding:"required"`
	CheckIn  string    `json:"checkIn" binding:"required"`
	CheckOut string    `json:"checkOut" binding:"required"`
	Guests   int       `json:"guests" binding:"required,min=1"`
	Note     *string   `json:"note,omitempty" binding:"omitempty,max=500"`
}

// ToInput parses the calendar dates; a malformed or empty range is an
// InvalidRange error.
func (r CreateReservationRequest) ToInput(idempotencyKey string) (commands.CreateReservationInput, error) {
	stay, err := reservation.ParseStayRange(r.CheckIn, r.CheckOut)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	return commands.CreateReservationInput{
		RoomID:         r.RoomID,
		GuestID:        r.GuestID,
		CheckIn:        stay.CheckIn(),
		CheckOut:       stay.CheckOut(),
		Guests:         r.Guests,
		Note:           strings.TrimSpace(patch.Coalesce(r.Note, "")),
		IdempotencyKey: idempotencyKey,
	}, nil
}

type CheckOutRequest struct {
	Tip           *int64  `json:"tip,omitempty" binding:"omitempty,min=0"`
	PaymentMethod *string `json:"paymentMethod,omitempty" binding:"omitempty,oneof=cash card transfer other"`
	Override      *bool   `json:"override,omitempty"`
}

func (r CheckOutRequest) ToInput(reservationID uuid.UUID) commands.CheckOutInput {
	in := commands.CheckOutInput{
		ReservationID: reservationID,
		PaymentMethod: folio.PaymentMethod(patch.Coalesce(r.PaymentMethod, "")),
		Override:      patch.Coalesce(r.Override, false),
	}
	if r.Tip != nil {
		tip := pricing.NewMoney(*r.Tip)
		in.Tip = &tip
	}
	return in
}
