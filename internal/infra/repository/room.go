package repository

import (
	"context"

	"innkeeper/internal/domain/room"
	"innkeeper/internal/infra"
	"innkeeper/internal/infra/db"
	"innkeeper/internal/infra/repository/converter"
	"innkeeper/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const roomColumns = `id, number, room_type, rate, capacity, status, created_at, updated_at`

type RoomRepository struct {
	db db.DBTX
}

func NewRoomRepository(dbtx db.DBTX) *RoomRepository {
	return &RoomRepository{db: dbtx}
}

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	row := converter.RoomToRow(rm)
	_, err := r.db.Exec(ctx,
		`INSERT INTO rooms (`+roomColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		row.ID, row.Number, row.RoomType, row.Rate, row.Capacity, row.Status, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "room number already exists", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create room", err)
	}
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) error {
	row := converter.RoomToRow(rm)
	tag, err := r.db.Exec(ctx,
		`UPDATE rooms SET status = $2, rate = $3, capacity = $4, updated_at = $5 WHERE id = $1`,
		row.ID, row.Status, row.Rate, row.Capacity, row.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "room not found", nil)
	}
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	rows, err := r.db.Query(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query room", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[converter.RoomRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "room not found", nil)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan room", err)
	}
	return converter.RoomToDomain(row)
}

func (r *RoomRepository) List(ctx context.Context) ([]*room.Room, error) {
	rows, err := r.db.Query(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY number`)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list rooms", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[converter.RoomRow])
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan rooms", err)
	}

	rooms := make([]*room.Room, 0, len(records))
	for _, rec := range records {
		rm, err := converter.RoomToDomain(rec)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, nil
}
