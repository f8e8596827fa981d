package response

import (
	"time"

	"innkeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID           uuid.UUID `json:"id"`
	RoomID       uuid.UUID `json:"roomId"`
	GuestID      uuid.UUID `json:"guestId"`
	CheckIn      string    `json:"checkIn"`
	CheckOut     string    `json:"checkOut"`
	Nights       int       `json:"nights"`
	Guests       int       `json:"guests"`
	BaseTotal    int64     `json:"baseTotal"`
	Paid         bool      `json:"paid"`
	State        string    `json:"state"`
	CancelReason *string   `json:"cancelReason,omitempty"`
	Note         *string   `json:"note,omitempty"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	// field names match one to one
	_ = copier.Copy(&resp, v)
	return &resp
}

type CheckOutResponse struct {
	Reservation *ReservationResponse `json:"reservation"`
	Folio       *FolioResponse       `json:"folio"`
}

type AvailabilityResponse struct {
	RoomID    uuid.UUID `json:"roomId"`
	CheckIn   string    `json:"checkIn"`
	CheckOut  string    `json:"checkOut"`
	Available bool      `json:"available"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	var resp AvailabilityResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

type ClaimResponse struct {
	ReservationID uuid.UUID  `json:"reservationId"`
	CheckIn       string     `json:"checkIn"`
	CheckOut      string     `json:"checkOut"`
	Kind          string     `json:"kind"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

func FromClaimViews(vs []queries.ClaimView) []ClaimResponse {
	resp := make([]ClaimResponse, 0, len(vs))
	_ = copier.Copy(&resp, &vs)
	return resp
}
