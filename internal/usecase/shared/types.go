package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

type IdempotencyRecord struct {
	Key                 string
	Status              IdempotencyStatus
	RequestHash         string
	ResultReservationID uuid.UUID
}

// IdempotencyStore remembers CreateReservation keys for a bounded time.
type IdempotencyStore interface {
	// TryInsert stores key as processing. When the key is already known it
	// returns the stored record and inserted=false.
	TryInsert(ctx context.Context, key, requestHash string, ttl time.Duration) (rec IdempotencyRecord, inserted bool, err error)
	MarkCompleted(ctx context.Context, key string, reservationID uuid.UUID, ttl time.Duration) error
	// Delete frees a key whose request failed so the client can retry.
	Delete(ctx context.Context, key string) error
}
