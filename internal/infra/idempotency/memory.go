// Package idempotency keeps CreateReservation idempotency keys, either in
// process or in Redis.
package idempotency

import (
	"context"
	"sync"
	"time"

	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type memoryEntry struct {
	record    shared.IdempotencyRecord
	expiresAt time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	clock   clock.Clock
	entries map[string]memoryEntry
}

func NewMemoryStore(clock clock.Clock) *MemoryStore {
	return &MemoryStore{
		clock:   clock,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) TryInsert(ctx context.Context, key, requestHash string, ttl time.Duration) (shared.IdempotencyRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return shared.IdempotencyRecord{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if e, ok := s.entries[key]; ok && now.Before(e.expiresAt) {
		return e.record, false, nil
	}

	rec := shared.IdempotencyRecord{
		Key:         key,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
	}
	s.entries[key] = memoryEntry{record: rec, expiresAt: now.Add(ttl)}
	s.evictExpired(now)
	return rec, true, nil
}

func (s *MemoryStore) MarkCompleted(ctx context.Context, key string, reservationID uuid.UUID, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return errs.Newf("idempotency key %q is not reserved", key)
	}
	e.record.Status = shared.IdempotencyCompleted
	e.record.ResultReservationID = reservationID
	e.expiresAt = s.clock.Now().Add(ttl)
	s.entries[key] = e
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// evictExpired is called with mu held.
func (s *MemoryStore) evictExpired(now time.Time) {
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}
