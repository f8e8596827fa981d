//go:build unit || e2e

package builder

import (
	"time"

	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/room"
	reqdto "innkeeper/internal/handler/dto/request"
	"innkeeper/internal/usecase/commands"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	ID        uuid.UUID
	Number    string
	Type      room.Type
	Rate      int64
	Capacity  int
	Status    room.Status
	CreatedAt time.Time
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		ID:        uuid.New(),
		Number:    "101",
		Type:      room.TypeSuite,
		Rate:      150000,
		Capacity:  2,
		Status:    room.StatusAvailable,
		CreatedAt: time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(r)
	return r
}

func (r *RoomBuilder) WithNumber(number string) *RoomBuilder {
	r.Number = number
	return r
}

func (r *RoomBuilder) WithCapacity(capacity int) *RoomBuilder {
	r.Capacity = capacity
	return r
}

func (r *RoomBuilder) WithRate(rate int64) *RoomBuilder {
	r.Rate = rate
	return r
}

// Build methods
func (r *RoomBuilder) BuildDomain() *room.Room {
	return room.ReconstructRoom(r.ID, r.Number, r.Type, pricing.NewMoney(r.Rate), r.Capacity, r.Status, r.CreatedAt, r.CreatedAt)
}

func (r *RoomBuilder) BuildInput() commands.RegisterRoomInput {
	return commands.RegisterRoomInput{
		Number:   r.Number,
		Type:     r.Type,
		Rate:     pricing.NewMoney(r.Rate),
		Capacity: r.Capacity,
	}
}

func (r *RoomBuilder) BuildRegisterRequestDTO() reqdto.RegisterRoomRequest {
	rate := r.Rate
	return reqdto.RegisterRoomRequest{
		Number:   r.Number,
		Type:     string(r.Type),
		Rate:     &rate,
		Capacity: r.Capacity,
	}
}
