package converter

import (
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/domain/room"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type RoomRow struct {
	ID        pgtype.UUID
	Number    string
	RoomType  string
	Rate      int64
	Capacity  int32
	Status    string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

func RoomToRow(rm *room.Room) RoomRow {
	return RoomRow{
		ID:        pgconv.UUIDToPgtype(rm.ID()),
		Number:    rm.Number(),
		RoomType:  rm.Type().String(),
		Rate:      rm.Rate().Minor(),
		Capacity:  int32(rm.Capacity()), // #nosec G115 -- capacity is validated small
		Status:    rm.Status().String(),
		CreatedAt: pgconv.TimeToPgtype(rm.CreatedAt()),
		UpdatedAt: pgconv.TimeToPgtype(rm.UpdatedAt()),
	}
}

func RoomToDomain(row RoomRow) (*room.Room, error) {
	roomType, status := room.Type(row.RoomType), room.Status(row.Status)
	if !roomType.IsValid() || !status.IsValid() {
		return nil, errs.AssertionFailed("stored room %s has type=%q status=%q", row.Number, row.RoomType, row.Status)
	}
	return room.ReconstructRoom(
		pgconv.UUIDFromPgtype(row.ID),
		row.Number,
		roomType,
		pricing.NewMoney(row.Rate),
		int(row.Capacity),
		status,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

type ReservationRow struct {
	ID           pgtype.UUID
	RoomID       pgtype.UUID
	GuestID      pgtype.UUID
	CheckIn      pgtype.Date
	CheckOut     pgtype.Date
	Guests       int32
	BaseTotal    int64
	Paid         bool
	State        string
	CancelReason pgtype.Text
	Note         pgtype.Text
	Version      int64
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

func ReservationToRow(res *reservation.Reservation) ReservationRow {
	return ReservationRow{
		ID:           pgconv.UUIDToPgtype(res.ID()),
		RoomID:       pgconv.UUIDToPgtype(res.RoomID()),
		GuestID:      pgconv.UUIDToPgtype(res.GuestID()),
		CheckIn:      pgconv.DateToPgtype(res.Stay().CheckIn()),
		CheckOut:     pgconv.DateToPgtype(res.Stay().CheckOut()),
		Guests:       int32(res.Guests()), // #nosec G115 -- bounded by room capacity
		BaseTotal:    res.BaseTotal().Minor(),
		Paid:         res.Paid(),
		State:        res.State().String(),
		CancelReason: pgconv.OptionalStringToPgtype(string(res.CancelReason())),
		Note:         pgconv.OptionalStringToPgtype(res.Note().String()),
		Version:      res.Version(),
		CreatedAt:    pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:    pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func ReservationToDomain(row ReservationRow) (*reservation.Reservation, error) {
	id := pgconv.UUIDFromPgtype(row.ID)
	stay, err := reservation.NewStayRange(pgconv.DateFromPgtype(row.CheckIn), pgconv.DateFromPgtype(row.CheckOut))
	if err != nil {
		return nil, errs.AssertionFailed("stored reservation %s has an invalid range: %v", id, err)
	}
	state := reservation.State(row.State)
	if !state.IsValid() {
		return nil, errs.AssertionFailed("stored reservation %s has state %q", id, row.State)
	}
	note, err := reservation.NewNote(pgconv.StringFromPgtype(row.Note))
	if err != nil {
		return nil, errs.AssertionFailed("stored reservation %s has an invalid note: %v", id, err)
	}

	return reservation.ReconstructReservation(
		id,
		pgconv.UUIDFromPgtype(row.RoomID),
		pgconv.UUIDFromPgtype(row.GuestID),
		stay,
		int(row.Guests),
		pricing.NewMoney(row.BaseTotal),
		row.Paid,
		state,
		reservation.CancelReason(pgconv.StringFromPgtype(row.CancelReason)),
		note,
		row.Version,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
