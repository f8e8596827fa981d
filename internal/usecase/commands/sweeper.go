package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/availability"
)

// HoldSweeper periodically expires abandoned holds so callers never have to.
type HoldSweeper struct {
	ledger   ReservationLedger
	index    *availability.Index
	clock    clock.Clock
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewHoldSweeper(ledger ReservationLedger, index *availability.Index, clock clock.Clock, settings EngineSettings) *HoldSweeper {
	return &HoldSweeper{
		ledger:   ledger,
		index:    index,
		clock:    clock,
		interval: settings.SweepInterval,
	}
}

// Sweep runs one pass and returns how many holds were expired.
func (s *HoldSweeper) Sweep(ctx context.Context) int {
	expired := 0
	for _, claim := range s.index.ExpiredHolds(s.clock.Now()) {
		if ctx.Err() != nil {
			break
		}
		ok, err := s.ledger.ExpireHold(ctx, claim.ReservationID)
		switch {
		case errors.Is(err, errs.ErrNotFound):
			// nothing durable backs this claim
			if _, relErr := s.index.Release(ctx, claim.RoomID, claim.ReservationID); relErr == nil {
				slog.Warn("released orphan hold", "reservation_id", claim.ReservationID, "room_id", claim.RoomID)
			}
		case err != nil:
			slog.Error("failed to expire hold", "reservation_id", claim.ReservationID, "error", err.Error())
		case ok:
			expired++
		}
	}
	if expired > 0 {
		slog.Info("expired holds swept", "count", expired)
	}
	return expired
}

func (s *HoldSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}(s.done)
	slog.Info("hold sweeper started", "interval", s.interval.String())
}

// Stop halts the loop and performs one final sweep with ctx.
func (s *HoldSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	n := s.Sweep(ctx)
	slog.Info("hold sweeper stopped", "final_sweep_expired", n)
	return nil
}
