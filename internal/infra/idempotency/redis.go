package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idempotency:reservation:"

type redisState struct {
	Status        shared.IdempotencyStatus `json:"status"`
	RequestHash   string                   `json:"request_hash"`
	ReservationID *uuid.UUID               `json:"reservation_id,omitempty"`
}

type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(idempotencyKey string) string {
	return keyPrefix + idempotencyKey
}

func (s *RedisStore) TryInsert(ctx context.Context, key, requestHash string, ttl time.Duration) (shared.IdempotencyRecord, bool, error) {
	k := s.key(key)
	raw, err := json.Marshal(redisState{Status: shared.IdempotencyProcessing, RequestHash: requestHash})
	if err != nil {
		return shared.IdempotencyRecord{}, false, err
	}

	for {
		if ctx.Err() != nil {
			return shared.IdempotencyRecord{}, false, ctx.Err()
		}

		_, err := s.client.SetArgs(ctx, k, raw, redis.SetArgs{Mode: "NX", TTL: ttl}).Result()
		if err == nil {
			return shared.IdempotencyRecord{
				Key:         key,
				Status:      shared.IdempotencyProcessing,
				RequestHash: requestHash,
			}, true, nil
		}
		if !errors.Is(err, redis.Nil) {
			return shared.IdempotencyRecord{}, false, errs.Wrap(err, "redis set")
		}

		data, err := s.client.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			// expired between SET and GET
			continue
		}
		if err != nil {
			return shared.IdempotencyRecord{}, false, errs.Wrap(err, "redis get")
		}

		var state redisState
		if err := json.Unmarshal(data, &state); err != nil {
			return shared.IdempotencyRecord{}, false, errs.Wrap(err, "redis unmarshal")
		}
		rec := shared.IdempotencyRecord{
			Key:         key,
			Status:      state.Status,
			RequestHash: state.RequestHash,
		}
		if state.ReservationID != nil {
			rec.ResultReservationID = *state.ReservationID
		}
		return rec, false, nil
	}
}

func (s *RedisStore) MarkCompleted(ctx context.Context, key string, reservationID uuid.UUID, ttl time.Duration) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	k := s.key(key)

	data, err := s.client.Get(ctx, k).Bytes()
	if err != nil {
		return errs.Wrap(err, "redis get")
	}
	var state redisState
	if err := json.Unmarshal(data, &state); err != nil {
		return errs.Wrap(err, "redis unmarshal")
	}

	state.Status = shared.IdempotencyCompleted
	state.ReservationID = &reservationID
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, k, raw, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return s.client.Del(ctx, s.key(key)).Err()
}
