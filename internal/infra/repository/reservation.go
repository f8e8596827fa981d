package repository

import (
	"context"

	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/infra"
	"innkeeper/internal/infra/db"
	"innkeeper/internal/infra/repository/converter"
	"innkeeper/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const reservationColumns = `id, room_id, guest_id, check_in, check_out, guests, base_total, paid, state,
	cancel_reason, note, version, created_at, updated_at`

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	row := converter.ReservationToRow(res)
	_, err := r.db.Exec(ctx,
		`INSERT INTO reservations (`+reservationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		row.ID, row.RoomID, row.GuestID, row.CheckIn, row.CheckOut, row.Guests, row.BaseTotal, row.Paid,
		row.State, row.CancelReason, row.Note, row.Version, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		switch {
		case pgconv.IsUniqueViolation(err):
			return infra.WrapRepoErr(infra.KindDuplicateKey, "reservation already exists", err)
		case pgconv.IsForeignKeyViolation(err):
			return infra.WrapRepoErr(infra.KindForeignKeyViolated, "reservation references unknown room", err)
		default:
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to create reservation", err)
		}
	}
	return nil
}

// Update is a compare-and-swap on version so a concurrent writer in another
// process cannot be silently overwritten.
func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation, expectedVersion int64) error {
	row := converter.ReservationToRow(res)
	tag, err := r.db.Exec(ctx,
		`UPDATE reservations
		    SET paid = $2, state = $3, cancel_reason = $4, note = $5, version = $6, updated_at = $7
		  WHERE id = $1 AND version = $8`,
		row.ID, row.Paid, row.State, row.CancelReason, row.Note, row.Version, row.UpdatedAt, expectedVersion,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, row.ID).Scan(&exists); err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to check reservation", err)
		}
		if !exists {
			return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
		}
		return infra.WrapRepoErr(infra.KindVersionConflict, "reservation version mismatch", nil)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query reservation", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[converter.ReservationRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservation", err)
	}
	return converter.ReservationToDomain(row)
}

func (r *ReservationRepository) ListActive(ctx context.Context) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		  WHERE state IN ('PENDING', 'CONFIRMED', 'CHECKED_IN')
		  ORDER BY created_at`,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list active reservations", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[converter.ReservationRow])
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservations", err)
	}

	out := make([]*reservation.Reservation, 0, len(records))
	for _, rec := range records {
		res, err := converter.ReservationToDomain(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
