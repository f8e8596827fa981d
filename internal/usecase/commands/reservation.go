package commands

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/commands/ledger.go -package=commandsmock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"innkeeper/internal/domain/folio"
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/domain/room"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/pkg/keylock"
	"innkeeper/internal/usecase/availability"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationLedger interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error)
	Confirm(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	CheckIn(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	CheckOut(ctx context.Context, in CheckOutInput) (*CheckOutResult, error)
	Cancel(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// ExpireHold cancels a PENDING reservation whose hold ran out. It reports
	// whether anything changed.
	ExpireHold(ctx context.Context, id uuid.UUID) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// Restore re-claims the ranges of every active reservation in the index.
	Restore(ctx context.Context) (RestoreReport, error)
}

type reservationLedger struct {
	uow      shared.UnitOfWork
	index    *availability.Index
	locks    *keylock.Locker[uuid.UUID]
	idem     shared.IdempotencyStore
	metrics  shared.EngineMetrics
	clock    clock.Clock
	settings EngineSettings
}

func NewReservationLedger(
	uow shared.UnitOfWork,
	index *availability.Index,
	locks *keylock.Locker[uuid.UUID],
	idem shared.IdempotencyStore,
	metrics shared.EngineMetrics,
	clock clock.Clock,
	settings EngineSettings,
) ReservationLedger {
	return &reservationLedger{
		uow:      uow,
		index:    index,
		locks:    locks,
		idem:     idem,
		metrics:  metrics,
		clock:    clock,
		settings: settings,
	}
}

func (l *reservationLedger) CreateReservation(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error) {
	if in.IdempotencyKey == "" {
		res, err := l.createReservation(ctx, in)
		if err != nil {
			return nil, reportBug("create", in.RoomID, err)
		}
		return &CreateReservationResult{Reservation: res}, nil
	}

	requestHash := calculateRequestHash(in)
	existing, err := l.handleIdempotency(ctx, in.IdempotencyKey, requestHash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		l.metrics.IdempotentReplay()
		return &CreateReservationResult{
			Reservation: existing,
			IsReplayed:  true,
		}, nil
	}

	res, err := l.createReservation(ctx, in)
	if err != nil {
		// free the key so the client may retry with the same one
		if delErr := l.idem.Delete(context.WithoutCancel(ctx), in.IdempotencyKey); delErr != nil {
			slog.Warn("failed to release idempotency key", "key", in.IdempotencyKey, "error", delErr.Error())
		}
		return nil, reportBug("create", in.RoomID, err)
	}

	if err := l.idem.MarkCompleted(ctx, in.IdempotencyKey, res.ID(), l.settings.IdempotencyTTL); err != nil {
		// the reservation exists; a lost key only costs replay protection
		slog.Warn("failed to complete idempotency key",
			"key", in.IdempotencyKey,
			"reservation_id", res.ID(),
			"error", err.Error())
	}
	return &CreateReservationResult{Reservation: res}, nil
}

func (l *reservationLedger) handleIdempotency(ctx context.Context, key, requestHash string) (*reservation.Reservation, error) {
	rec, inserted, err := l.idem.TryInsert(ctx, key, requestHash, l.settings.IdempotencyTTL)
	if err != nil {
		return nil, errs.Wrap(err, "idempotency check failed")
	}
	if inserted {
		return nil, nil
	}

	if rec.RequestHash != requestHash {
		return nil, errs.Wrapf(errs.ErrIdempotencyConflict, "idempotency key %q was used with a different request", key)
	}
	switch rec.Status {
	case shared.IdempotencyCompleted:
		return l.Get(ctx, rec.ResultReservationID)
	case shared.IdempotencyProcessing:
		return nil, errs.Wrapf(errs.ErrIdempotencyConflict, "request with idempotency key %q is still in progress", key)
	default:
		return nil, errs.AssertionFailed("invalid idempotency key status %q", rec.Status)
	}
}

func (l *reservationLedger) createReservation(ctx context.Context, in CreateReservationInput) (*reservation.Reservation, error) {
	stay, err := reservation.NewStayRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	note, err := reservation.NewNote(in.Note)
	if err != nil {
		return nil, err
	}

	rm, err := l.findRoom(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	// capacity is checked before claiming so a rejection leaves nothing behind
	if err := reservation.ValidateBooking(rm, in.GuestID, in.Guests); err != nil {
		return nil, err
	}

	id := uuid.New()
	unlock, err := l.locks.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := l.clock.Now()
	claim, err := l.index.TryClaim(ctx, rm.ID(), stay, id, now.Add(l.settings.HoldTTL))
	if err != nil {
		var conflict *errs.ConflictError
		if errors.As(err, &conflict) {
			l.metrics.AvailabilityConflict()
			slog.Warn("availability conflict",
				"room_id", rm.ID(),
				"requested", stay.String(),
				"blocking_reservation_id", conflict.ReservationID)
		}
		return nil, err
	}

	res, err := l.persistNew(ctx, id, rm, in, stay, note, now)
	if err != nil {
		if _, relErr := l.index.Release(context.WithoutCancel(ctx), claim.RoomID, id); relErr != nil {
			slog.Error("failed to release claim after failed create",
				"reservation_id", id,
				"room_id", claim.RoomID,
				"error", relErr.Error())
		}
		return nil, err
	}

	l.metrics.ReservationCreated(rm.Type().String())
	slog.Info("reservation created",
		"reservation_id", res.ID(),
		"room_id", rm.ID(),
		"stay", stay.String(),
		"base_total", res.BaseTotal().Minor())
	return res, nil
}

// persistNew prices the stay outside the room lock and stores the new
// reservation.
func (l *reservationLedger) persistNew(
	ctx context.Context,
	id uuid.UUID,
	rm *room.Room,
	in CreateReservationInput,
	stay reservation.StayRange,
	note reservation.Note,
	now time.Time,
) (*reservation.Reservation, error) {
	total, err := pricing.StayTotal(rm.Rate(), stay.Nights(), l.settings.TaxRates)
	if err != nil {
		return nil, err
	}
	res, err := reservation.NewReservation(id, rm, in.GuestID, stay, in.Guests, total, note, now)
	if err != nil {
		return nil, err
	}

	err = l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reservations().Create(ctx, res)
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to persist reservation")
	}
	return res, nil
}

func (l *reservationLedger) Confirm(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	unlock, err := l.locks.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := l.clock.Now()
	var from reservation.State
	res, err := l.withReservation(ctx, id, func(ctx context.Context, tx shared.Tx, res *reservation.Reservation) (bool, error) {
		from = res.State()
		if res.State() == reservation.StatePending {
			claim, ok := l.index.Lookup(res.RoomID(), res.ID())
			if !ok {
				return false, errs.AssertionFailed("pending reservation %s holds no claim", id)
			}
			if claim.Expired(now) {
				return false, errs.Wrapf(ErrHoldExpired, "reservation %s", id)
			}
		}

		entries, err := tx.Folios().Entries(ctx, id)
		if err != nil {
			return false, translateRepoErr(err, "folio", id)
		}
		if err := res.Confirm(entries.AmountPaid(), l.settings.DepositDue(res.BaseTotal()), now); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, reportBug("confirm", id, err)
	}

	// cannot fail while we hold the reservation lock and the claim was found above
	if err := l.index.Confirm(context.WithoutCancel(ctx), res.RoomID(), id); err != nil {
		slog.Error("failed to confirm claim", "reservation_id", id, "error", err.Error())
	}
	l.recordTransition(from, res)
	return res, nil
}

func (l *reservationLedger) CheckIn(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	unlock, err := l.locks.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := l.clock.Now()
	var from reservation.State
	res, err := l.withReservation(ctx, id, func(_ context.Context, _ shared.Tx, res *reservation.Reservation) (bool, error) {
		from = res.State()
		if err := res.CheckIn(now, l.settings.Location, l.settings.GraceWindow); err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, reportBug("check-in", id, err)
	}

	l.recordTransition(from, res)
	l.markRoom(ctx, res.RoomID(), room.StatusOccupied)
	return res, nil
}

func (l *reservationLedger) CheckOut(ctx context.Context, in CheckOutInput) (*CheckOutResult, error) {
	id := in.ReservationID
	unlock, err := l.locks.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := l.clock.Now()
	var (
		from  reservation.State
		final folio.Folio
	)
	res, err := l.withReservation(ctx, id, func(ctx context.Context, tx shared.Tx, res *reservation.Reservation) (bool, error) {
		from = res.State()
		// guard before touching the folio so a wrong state records nothing
		if _, err := res.State().Next(reservation.EventCheckOut); err != nil {
			return false, errs.Wrapf(err, "reservation %s", id)
		}

		if in.Tip != nil {
			if in.Tip.IsNegative() {
				return false, folio.ErrNegativeTip
			}
			if err := tx.Folios().SetTip(ctx, id, *in.Tip); err != nil {
				return false, translateRepoErr(err, "folio", id)
			}
		}

		entries, err := tx.Folios().Entries(ctx, id)
		if err != nil {
			return false, translateRepoErr(err, "folio", id)
		}
		f, err := folio.Compute(id, res.BaseTotal(), entries, nil)
		if err != nil {
			return false, err
		}

		if in.PaymentMethod != "" && f.BalanceDue > 0 {
			payment, err := folio.NewPayment(id, f.BalanceDue, in.PaymentMethod, folio.PaymentSucceeded, now)
			if err != nil {
				return false, err
			}
			if err := tx.Folios().AddPayment(ctx, payment); err != nil {
				return false, translateRepoErr(err, "folio", id)
			}
			entries.Payments = append(entries.Payments, payment)
			if f, err = folio.Compute(id, res.BaseTotal(), entries, nil); err != nil {
				return false, err
			}
		}

		res.SyncPaid(f.Paid(), now)
		if err := res.CheckOut(f.BalanceDue, in.Override, now); err != nil {
			return false, err
		}
		if in.Override && f.BalanceDue > 0 {
			slog.Warn("check-out with unsettled balance by override",
				"reservation_id", id,
				"balance_due", f.BalanceDue.Minor())
		}
		final = f
		return true, nil
	})
	if err != nil {
		return nil, reportBug("check-out", id, err)
	}

	if _, err := l.index.Release(context.WithoutCancel(ctx), res.RoomID(), id); err != nil {
		slog.Error("failed to release claim on check-out", "reservation_id", id, "error", err.Error())
	}
	l.recordTransition(from, res)
	l.markRoom(ctx, res.RoomID(), room.StatusCleaning)
	return &CheckOutResult{Reservation: res, Folio: final}, nil
}

func (l *reservationLedger) Cancel(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	unlock, err := l.locks.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := l.clock.Now()
	var from reservation.State
	res, err := l.withReservation(ctx, id, func(_ context.Context, _ shared.Tx, res *reservation.Reservation) (bool, error) {
		from = res.State()
		return res.Cancel(reservation.CancelReasonRequested, now)
	})
	if err != nil {
		return nil, reportBug("cancel", id, err)
	}

	// released even on a repeated cancel so a stray claim never outlives its reservation
	if _, err := l.index.Release(context.WithoutCancel(ctx), res.RoomID(), id); err != nil {
		slog.Error("failed to release claim on cancel", "reservation_id", id, "error", err.Error())
	}
	if from != res.State() {
		l.recordTransition(from, res)
	}
	return res, nil
}

func (l *reservationLedger) ExpireHold(ctx context.Context, id uuid.UUID) (bool, error) {
	unlock, err := l.locks.Lock(ctx, id)
	if err != nil {
		return false, err
	}
	defer unlock()

	now := l.clock.Now()
	expired := false
	res, err := l.withReservation(ctx, id, func(_ context.Context, _ shared.Tx, res *reservation.Reservation) (bool, error) {
		if res.State() != reservation.StatePending {
			return false, nil
		}
		deadline := res.CreatedAt().Add(l.settings.HoldTTL)
		if claim, ok := l.index.Lookup(res.RoomID(), id); ok {
			deadline = claim.ExpiresAt
		}
		if now.Before(deadline) {
			return false, nil
		}
		expired = res.Expire(now)
		return expired, nil
	})
	if err != nil {
		return false, reportBug("expire", id, err)
	}
	if !expired {
		return false, nil
	}

	if _, err := l.index.Release(context.WithoutCancel(ctx), res.RoomID(), id); err != nil {
		slog.Error("failed to release expired hold", "reservation_id", id, "error", err.Error())
	}
	l.metrics.HoldExpired()
	l.recordTransition(reservation.StatePending, res)
	return true, nil
}

func (l *reservationLedger) Get(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var res *reservation.Reservation
	err := l.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		res = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (l *reservationLedger) Restore(ctx context.Context) (RestoreReport, error) {
	var active []*reservation.Reservation
	err := l.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		active, err = tx.Reservations().ListActive(ctx)
		return err
	})
	if err != nil {
		return RestoreReport{}, errs.Wrap(err, "failed to load active reservations")
	}

	var report RestoreReport
	now := l.clock.Now()
	for _, res := range active {
		claim := availability.Claim{
			RoomID:        res.RoomID(),
			ReservationID: res.ID(),
			Stay:          res.Stay(),
			Kind:          availability.KindConfirmed,
		}
		if res.State() == reservation.StatePending {
			claim.Kind = availability.KindHold
			claim.ExpiresAt = res.CreatedAt().Add(l.settings.HoldTTL)
			if !now.Before(claim.ExpiresAt) {
				expired, err := l.ExpireHold(ctx, res.ID())
				if err != nil {
					report.Failed++
					slog.Error("failed to expire stale hold", "reservation_id", res.ID(), "error", err.Error())
					continue
				}
				if expired {
					report.Expired++
				}
				continue
			}
		}

		if err := l.index.Restore(ctx, claim); err != nil {
			report.Failed++
			slog.Error("failed to restore claim",
				"reservation_id", res.ID(),
				"room_id", res.RoomID(),
				"stay", res.Stay().String(),
				"error", err.Error())
			continue
		}
		report.Restored++
	}

	slog.Info("availability index restored",
		"restored", report.Restored,
		"expired", report.Expired,
		"failed", report.Failed)
	return report, nil
}

// withReservation loads the reservation, lets fn mutate it, and stores it in
// the same transaction when fn reports a change. Callers hold the
// reservation's lock.
func (l *reservationLedger) withReservation(
	ctx context.Context,
	id uuid.UUID,
	fn func(ctx context.Context, tx shared.Tx, res *reservation.Reservation) (bool, error),
) (*reservation.Reservation, error) {
	var out *reservation.Reservation
	err := l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, id)
		if err != nil {
			return err
		}
		version := res.Version()
		changed, err := fn(ctx, tx, res)
		if err != nil {
			return err
		}
		if changed {
			if err := tx.Reservations().Update(ctx, res, version); err != nil {
				return translateRepoErr(err, "reservation", id)
			}
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (l *reservationLedger) findRoom(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	var rm *room.Room
	err := l.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Rooms().FindByID(ctx, id)
		if err != nil {
			return translateRepoErr(err, "room", id)
		}
		rm = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rm, nil
}

// markRoom updates the room's display status. Failures are logged only since
// availability never consults it.
func (l *reservationLedger) markRoom(ctx context.Context, roomID uuid.UUID, status room.Status) {
	err := l.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		rm, err := tx.Rooms().FindByID(ctx, roomID)
		if err != nil {
			return err
		}
		if err := rm.ChangeStatus(status, l.clock.Now()); err != nil {
			return err
		}
		return tx.Rooms().Update(ctx, rm)
	})
	if err != nil {
		slog.Warn("failed to update room status", "room_id", roomID, "status", status, "error", err.Error())
	}
}

func (l *reservationLedger) recordTransition(from reservation.State, res *reservation.Reservation) {
	l.metrics.Transition(from, res.State())
	slog.Info("reservation transitioned",
		"reservation_id", res.ID(),
		"from", from,
		"to", res.State(),
		"version", res.Version())
}

func calculateRequestHash(in CreateReservationInput) string {
	in.IdempotencyKey = ""
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
