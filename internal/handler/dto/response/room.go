package response

import (
	"time"

	"innkeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	Type      string    `json:"type"`
	Rate      int64     `json:"rate"`
	Capacity  int       `json:"capacity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromRoomView(v *queries.RoomView) *RoomResponse {
	var resp RoomResponse
	_ = copier.Copy(&resp, v)
	return &resp
}
