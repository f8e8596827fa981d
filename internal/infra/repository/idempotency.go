package repository

import (
	"context"
	"time"

	"innkeeper/internal/infra"
	"innkeeper/internal/infra/db"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/pgconv"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// IdempotencyRepository keeps idempotency keys next to the reservations they
// guard. Rows past expires_at are treated as absent and overwritten.
type IdempotencyRepository struct {
	db    db.DBTX
	clock clock.Clock
}

func NewIdempotencyRepository(dbtx db.DBTX, clk clock.Clock) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx, clock: clk}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, requestHash string, ttl time.Duration) (shared.IdempotencyRecord, bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return shared.IdempotencyRecord{}, false, err
		}
		now := r.clock.Now()

		tag, err := r.db.Exec(ctx,
			`INSERT INTO idempotency_keys (key, status, request_hash, expires_at, created_at)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (key) DO UPDATE
			    SET status = EXCLUDED.status,
			        request_hash = EXCLUDED.request_hash,
			        result_reservation_id = NULL,
			        expires_at = EXCLUDED.expires_at,
			        created_at = EXCLUDED.created_at
			  WHERE idempotency_keys.expires_at <= EXCLUDED.created_at`,
			key, string(shared.IdempotencyProcessing), requestHash,
			pgconv.TimeToPgtype(now.Add(ttl)), pgconv.TimeToPgtype(now),
		)
		if err != nil {
			return shared.IdempotencyRecord{}, false, infra.WrapRepoErr(infra.KindDBFailure, "failed to try insert idempotency key", err)
		}
		if tag.RowsAffected() == 1 {
			return shared.IdempotencyRecord{
				Key:         key,
				Status:      shared.IdempotencyProcessing,
				RequestHash: requestHash,
			}, true, nil
		}

		var (
			status   string
			hash     string
			resultID pgtype.UUID
		)
		err = r.db.QueryRow(ctx,
			`SELECT status, request_hash, result_reservation_id FROM idempotency_keys WHERE key = $1`, key,
		).Scan(&status, &hash, &resultID)
		if pgconv.IsNoRows(err) {
			// deleted between INSERT and SELECT
			continue
		}
		if err != nil {
			return shared.IdempotencyRecord{}, false, infra.WrapRepoErr(infra.KindDBFailure, "failed to get idempotency key", err)
		}
		return shared.IdempotencyRecord{
			Key:                 key,
			Status:              shared.IdempotencyStatus(status),
			RequestHash:         hash,
			ResultReservationID: pgconv.UUIDFromPgtype(resultID),
		}, false, nil
	}
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key string, reservationID uuid.UUID, ttl time.Duration) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE idempotency_keys
		    SET status = $2, result_reservation_id = $3, expires_at = $4
		  WHERE key = $1`,
		key, string(shared.IdempotencyCompleted), pgconv.UUIDToPgtype(reservationID),
		pgconv.TimeToPgtype(r.clock.Now().Add(ttl)),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update idempotency key status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "idempotency key is not reserved", nil)
	}
	return nil
}

func (r *IdempotencyRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM idempotency_keys WHERE key = $1`, key); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to delete idempotency key", err)
	}
	return nil
}

// DeleteExpired purges keys nobody can replay anymore.
func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM idempotency_keys WHERE expires_at <= $1`, pgconv.TimeToPgtype(r.clock.Now()))
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
