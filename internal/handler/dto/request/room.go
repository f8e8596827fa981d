package request

import (
	"strings"

	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/domain/room"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/commands"

	"github.com/google/uuid"
)

type RegisterRoomRequest struct {
	Number   string `json:"number" binding:"required,max=16"`
	Type     string `json:"type" binding:"required,oneof=SIMPLE DOUBLE SUITE FAMILY"`
	Rate     *int64 `json:"rate" binding:"required,min=0"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

func (r RegisterRoomRequest) ToInput() commands.RegisterRoomInput {
	return commands.RegisterRoomInput{
		Number:   strings.TrimSpace(r.Number),
		Type:     room.Type(r.Type),
		Rate:     pricing.NewMoney(*r.Rate),
		Capacity: r.Capacity,
	}
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=AVAILABLE OCCUPIED MAINTENANCE CLEANING RESERVED"`
}

type AvailabilityRequest struct {
	RoomID   string `form:"roomId" binding:"required,uuid"`
	CheckIn  string `form:"checkIn" binding:"required"`
	CheckOut string `form:"checkOut" binding:"required"`
}

func (r AvailabilityRequest) Parse() (uuid.UUID, reservation.StayRange, error) {
	roomID, err := uuid.Parse(r.RoomID)
	if err != nil {
		return uuid.Nil, reservation.StayRange{}, errs.Wrapf(errs.ErrValidation, "room id %q", r.RoomID)
	}
	stay, err := reservation.ParseStayRange(r.CheckIn, r.CheckOut)
	if err != nil {
		return uuid.Nil, reservation.StayRange{}, err
	}
	return roomID, stay, nil
}
