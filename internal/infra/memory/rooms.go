package memory

import (
	"context"
	"sort"
	"time"

	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/room"
	"innkeeper/internal/infra"

	"github.com/google/uuid"
)

type roomRow struct {
	id        uuid.UUID
	number    string
	roomType  room.Type
	rate      pricing.Money
	capacity  int
	status    room.Status
	createdAt time.Time
	updatedAt time.Time
}

func toRoomRow(rm *room.Room) roomRow {
	return roomRow{
		id:        rm.ID(),
		number:    rm.Number(),
		roomType:  rm.Type(),
		rate:      rm.Rate(),
		capacity:  rm.Capacity(),
		status:    rm.Status(),
		createdAt: rm.CreatedAt(),
		updatedAt: rm.UpdatedAt(),
	}
}

func (r roomRow) toDomain() *room.Room {
	return room.ReconstructRoom(r.id, r.number, r.roomType, r.rate, r.capacity, r.status, r.createdAt, r.updatedAt)
}

type roomRepo struct {
	tx *memTx
}

func (r *roomRepo) Create(_ context.Context, rm *room.Room) error {
	s := r.tx.store
	if _, ok := s.rooms[rm.ID()]; ok {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "room already exists", nil)
	}
	for _, row := range s.rooms {
		if row.number == rm.Number() {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "room number already exists", nil)
		}
	}
	if err := r.tx.write(restoreKey(s.rooms, rm.ID())); err != nil {
		return err
	}
	s.rooms[rm.ID()] = toRoomRow(rm)
	return nil
}

func (r *roomRepo) Update(_ context.Context, rm *room.Room) error {
	s := r.tx.store
	if _, ok := s.rooms[rm.ID()]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "room not found", nil)
	}
	if err := r.tx.write(restoreKey(s.rooms, rm.ID())); err != nil {
		return err
	}
	s.rooms[rm.ID()] = toRoomRow(rm)
	return nil
}

func (r *roomRepo) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	row, ok := r.tx.store.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "room not found", nil)
	}
	return row.toDomain(), nil
}

func (r *roomRepo) List(_ context.Context) ([]*room.Room, error) {
	rows := make([]roomRow, 0, len(r.tx.store.rooms))
	for _, row := range r.tx.store.rooms {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].number < rows[j].number })

	rooms := make([]*room.Room, 0, len(rows))
	for _, row := range rows {
		rooms = append(rooms, row.toDomain())
	}
	return rooms, nil
}
