package memory

import (
	"context"
	"sort"
	"time"

	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/infra"

	"github.com/google/uuid"
)

type reservationRow struct {
	id           uuid.UUID
	roomID       uuid.UUID
	guestID      uuid.UUID
	stay         reservation.StayRange
	guests       int
	baseTotal    pricing.Money
	paid         bool
	state        reservation.State
	cancelReason reservation.CancelReason
	note         reservation.Note
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

func toReservationRow(res *reservation.Reservation) reservationRow {
	return reservationRow{
		id:           res.ID(),
		roomID:       res.RoomID(),
		guestID:      res.GuestID(),
		stay:         res.Stay(),
		guests:       res.Guests(),
		baseTotal:    res.BaseTotal(),
		paid:         res.Paid(),
		state:        res.State(),
		cancelReason: res.CancelReason(),
		note:         res.Note(),
		version:      res.Version(),
		createdAt:    res.CreatedAt(),
		updatedAt:    res.UpdatedAt(),
	}
}

func (r reservationRow) toDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(
		r.id, r.roomID, r.guestID,
		r.stay,
		r.guests,
		r.baseTotal,
		r.paid,
		r.state,
		r.cancelReason,
		r.note,
		r.version,
		r.createdAt, r.updatedAt,
	)
}

type reservationRepo struct {
	tx *memTx
}

func (r *reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	s := r.tx.store
	if _, ok := s.reservations[res.ID()]; ok {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "reservation already exists", nil)
	}
	if _, ok := s.rooms[res.RoomID()]; !ok {
		return infra.WrapRepoErr(infra.KindForeignKeyViolated, "reservation references unknown room", nil)
	}
	if err := r.tx.write(restoreKey(s.reservations, res.ID())); err != nil {
		return err
	}
	s.reservations[res.ID()] = toReservationRow(res)
	return nil
}

func (r *reservationRepo) Update(_ context.Context, res *reservation.Reservation, expectedVersion int64) error {
	s := r.tx.store
	row, ok := s.reservations[res.ID()]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	if row.version != expectedVersion {
		return infra.WrapRepoErr(infra.KindVersionConflict, "reservation version mismatch", nil)
	}
	if err := r.tx.write(restoreKey(s.reservations, res.ID())); err != nil {
		return err
	}
	s.reservations[res.ID()] = toReservationRow(res)
	return nil
}

func (r *reservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, ok := r.tx.store.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return row.toDomain(), nil
}

func (r *reservationRepo) ListActive(_ context.Context) ([]*reservation.Reservation, error) {
	var rows []reservationRow
	for _, row := range r.tx.store.reservations {
		if row.state.HoldsRoom() {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].createdAt.Before(rows[j].createdAt) })

	out := make([]*reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
