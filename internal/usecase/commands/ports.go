package commands

import (
	"time"

	"innkeeper/internal/domain/folio"
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/domain/room"

	"github.com/google/uuid"
)

// Command inputs are plain values so that handlers never build domain
// entities themselves.

type CreateReservationInput struct {
	RoomID   uuid.UUID `json:"roomId"`
	GuestID  uuid.UUID `json:"guestId"`
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
	Guests   int       `json:"guests"`
	Note     string    `json:"note"`
	// optional; excluded from the request hash
	IdempotencyKey string `json:"-"`
}

type CreateReservationResult struct {
	Reservation *reservation.Reservation
	IsReplayed  bool
}

type CheckOutInput struct {
	ReservationID uuid.UUID
	// nil keeps the tip already on the folio
	Tip *pricing.Money
	// when set, the outstanding balance is paid with this method first
	PaymentMethod folio.PaymentMethod
	Override      bool
}

type CheckOutResult struct {
	Reservation *reservation.Reservation
	Folio       folio.Folio
}

type RestoreReport struct {
	Restored int
	Expired  int
	Failed   int
}

type AddConsumptionInput struct {
	ReservationID uuid.UUID
	Description   string
	Category      folio.Category
	Quantity      int
	UnitPrice     pricing.Money
}

type AddExtraChargeInput struct {
	ReservationID uuid.UUID
	Description   string
	Amount        pricing.Money
	Reason        string
}

type PaymentInput struct {
	ReservationID uuid.UUID
	Amount        pricing.Money
	Method        folio.PaymentMethod
	// empty means SUCCEEDED
	Status folio.PaymentStatus
}

type SettleResult struct {
	Payment *folio.Payment
	Folio   folio.Folio
}

type RegisterRoomInput struct {
	Number   string
	Type     room.Type
	Rate     pricing.Money
	Capacity int
}
