//go:build unit || e2e

package builder

import (
	"time"

	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/domain/room"
	reqdto "innkeeper/internal/handler/dto/request"
	"innkeeper/internal/usecase/commands"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID        uuid.UUID
	Room      *room.Room
	GuestID   uuid.UUID
	CheckIn   string
	CheckOut  string
	Guests    int
	Note      string
	State     reservation.State
	Paid      bool
	CreatedAt time.Time
}

// NewReservationBuilder describes a two-night SUITE stay, 2025-11-12 to
// 2025-11-14, at 150000 per night.
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:        uuid.New(),
		Room:      NewRoomBuilder().BuildDomain(),
		GuestID:   uuid.New(),
		CheckIn:   "2025-11-12",
		CheckOut:  "2025-11-14",
		Guests:    2,
		State:     reservation.StatePending,
		CreatedAt: time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) WithRoom(rm *room.Room) *ReservationBuilder {
	r.Room = rm
	return r
}

func (r *ReservationBuilder) WithStay(checkIn, checkOut string) *ReservationBuilder {
	r.CheckIn = checkIn
	r.CheckOut = checkOut
	return r
}

func (r *ReservationBuilder) WithGuests(guests int) *ReservationBuilder {
	r.Guests = guests
	return r
}

func (r *ReservationBuilder) WithState(state reservation.State) *ReservationBuilder {
	r.State = state
	return r
}

func (r *ReservationBuilder) Stay() reservation.StayRange {
	stay, err := reservation.ParseStayRange(r.CheckIn, r.CheckOut)
	if err != nil {
		panic(err)
	}
	return stay
}

// Build methods
func (r *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	stay, err := reservation.ParseStayRange(r.CheckIn, r.CheckOut)
	if err != nil {
		return nil, err
	}
	note, err := reservation.NewNote(r.Note)
	if err != nil {
		return nil, err
	}
	base, err := pricing.BaseTotal(r.Room.Rate(), stay.Nights())
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(r.ID, r.Room, r.GuestID, stay, r.Guests, base, note, r.CreatedAt)
}

// BuildStored returns the reservation as a repository would load it, in
// whatever state the builder names.
func (r *ReservationBuilder) BuildStored() *reservation.Reservation {
	stay := r.Stay()
	note, _ := reservation.NewNote(r.Note)
	base, _ := pricing.BaseTotal(r.Room.Rate(), stay.Nights())
	var reason reservation.CancelReason
	if r.State == reservation.StateCancelled {
		reason = reservation.CancelReasonRequested
	}
	return reservation.ReconstructReservation(
		r.ID, r.Room.ID(), r.GuestID, stay, r.Guests, base, r.Paid,
		r.State, reason, note, 1, r.CreatedAt, r.CreatedAt,
	)
}

func (r *ReservationBuilder) BuildInput() commands.CreateReservationInput {
	stay := r.Stay()
	return commands.CreateReservationInput{
		RoomID:   r.Room.ID(),
		GuestID:  r.GuestID,
		CheckIn:  stay.CheckIn(),
		CheckOut: stay.CheckOut(),
		Guests:   r.Guests,
		Note:     r.Note,
	}
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	req := reqdto.CreateReservationRequest{
		RoomID:   r.Room.ID(),
		GuestID:  r.GuestID,
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
		Guests:   r.Guests,
	}
	if r.Note != "" {
		note := r.Note
		req.Note = &note
	}
	return req
}
