package commands

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/commands/folio.go -package=commandsmock

import (
	"context"
	"log/slog"

	"innkeeper/internal/domain/folio"
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/pkg/keylock"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type FolioService interface {
	AddConsumption(ctx context.Context, in AddConsumptionInput) (*folio.Consumption, error)
	AddExtraCharge(ctx context.Context, in AddExtraChargeInput) (*folio.ExtraCharge, error)
	RemoveConsumption(ctx context.Context, consumptionID uuid.UUID) error
	// ComputeFolio never writes. A nil tip uses the recorded one.
	ComputeFolio(ctx context.Context, reservationID uuid.UUID, tip *pricing.Money) (folio.Folio, error)
	// Settle records a payment. It never transitions the reservation.
	Settle(ctx context.Context, in PaymentInput) (*SettleResult, error)
	SetTip(ctx context.Context, reservationID uuid.UUID, tip pricing.Money) (folio.Folio, error)
}

type folioService struct {
	uow   shared.UnitOfWork
	locks *keylock.Locker[uuid.UUID]
	clock clock.Clock
}

// NewFolioService shares the ledger's per-reservation locks so a folio edit
// never interleaves with a transition of the same reservation.
func NewFolioService(uow shared.UnitOfWork, locks *keylock.Locker[uuid.UUID], clock clock.Clock) FolioService {
	return &folioService{
		uow:   uow,
		locks: locks,
		clock: clock,
	}
}

// ensureAppendable: charges may be added before the stay (CONFIRMED) or
// during it (CHECKED_IN).
func ensureAppendable(res *reservation.Reservation) error {
	switch res.State() {
	case reservation.StateConfirmed, reservation.StateCheckedIn:
		return nil
	case reservation.StatePending:
		return errs.Wrapf(errs.ErrInvalidTransition, "reservation %s is not confirmed yet", res.ID())
	default:
		return ensureOpen(res)
	}
}

func ensureOpen(res *reservation.Reservation) error {
	if res.IsTerminal() {
		return errs.Wrapf(errs.ErrReservationClosed, "reservation %s is %s", res.ID(), res.State())
	}
	return nil
}

func (s *folioService) AddConsumption(ctx context.Context, in AddConsumptionInput) (*folio.Consumption, error) {
	var added *folio.Consumption
	_, err := s.mutate(ctx, in.ReservationID, func(ctx context.Context, tx shared.Tx, res *reservation.Reservation) error {
		if err := ensureAppendable(res); err != nil {
			return err
		}
		c, err := folio.NewConsumption(res.ID(), in.Description, in.Category, in.Quantity, in.UnitPrice, s.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Folios().AddConsumption(ctx, c); err != nil {
			return translateRepoErr(err, "folio", res.ID())
		}
		added = c
		return nil
	})
	if err != nil {
		return nil, reportBug("add-consumption", in.ReservationID, err)
	}

	slog.Info("consumption added",
		"reservation_id", in.ReservationID,
		"consumption_id", added.ID,
		"category", added.Category)
	return added, nil
}

func (s *folioService) AddExtraCharge(ctx context.Context, in AddExtraChargeInput) (*folio.ExtraCharge, error) {
	var added *folio.ExtraCharge
	_, err := s.mutate(ctx, in.ReservationID, func(ctx context.Context, tx shared.Tx, res *reservation.Reservation) error {
		if err := ensureAppendable(res); err != nil {
			return err
		}
		c, err := folio.NewExtraCharge(res.ID(), in.Description, in.Amount, in.Reason, s.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Folios().AddExtraCharge(ctx, c); err != nil {
			return translateRepoErr(err, "folio", res.ID())
		}
		added = c
		return nil
	})
	if err != nil {
		return nil, reportBug("add-extra-charge", in.ReservationID, err)
	}

	slog.Info("extra charge added",
		"reservation_id", in.ReservationID,
		"charge_id", added.ID,
		"amount", added.Amount.Minor())
	return added, nil
}

func (s *folioService) RemoveConsumption(ctx context.Context, consumptionID uuid.UUID) error {
	var reservationID uuid.UUID
	err := s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Folios().FindConsumption(ctx, consumptionID)
		if err != nil {
			return translateRepoErr(err, "consumption", consumptionID)
		}
		reservationID = c.ReservationID
		return nil
	})
	if err != nil {
		return err
	}

	_, err = s.mutate(ctx, reservationID, func(ctx context.Context, tx shared.Tx, res *reservation.Reservation) error {
		if err := ensureOpen(res); err != nil {
			return err
		}
		if err := tx.Folios().DeleteConsumption(ctx, consumptionID); err != nil {
			return translateRepoErr(err, "consumption", consumptionID)
		}
		return nil
	})
	if err != nil {
		return reportBug("remove-consumption", reservationID, err)
	}

	slog.Info("consumption voided", "reservation_id", reservationID, "consumption_id", consumptionID)
	return nil
}

func (s *folioService) ComputeFolio(ctx context.Context, reservationID uuid.UUID, tip *pricing.Money) (folio.Folio, error) {
	var f folio.Folio
	err := s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		entries, err := tx.Folios().Entries(ctx, reservationID)
		if err != nil {
			return translateRepoErr(err, "folio", reservationID)
		}
		f, err = folio.Compute(reservationID, res.BaseTotal(), entries, tip)
		return err
	})
	if err != nil {
		return folio.Folio{}, reportBug("compute-folio", reservationID, err)
	}
	return f, nil
}

func (s *folioService) Settle(ctx context.Context, in PaymentInput) (*SettleResult, error) {
	var payment *folio.Payment
	f, err := s.mutate(ctx, in.ReservationID, func(ctx context.Context, tx shared.Tx, res *reservation.Reservation) error {
		if err := ensureOpen(res); err != nil {
			return err
		}
		p, err := folio.NewPayment(res.ID(), in.Amount, in.Method, in.Status, s.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Folios().AddPayment(ctx, p); err != nil {
			return translateRepoErr(err, "folio", res.ID())
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, reportBug("settle", in.ReservationID, err)
	}

	slog.Info("payment recorded",
		"reservation_id", in.ReservationID,
		"payment_id", payment.ID,
		"amount", payment.Amount.Minor(),
		"status", payment.Status,
		"balance_due", f.BalanceDue.Minor())
	return &SettleResult{Payment: payment, Folio: f}, nil
}

func (s *folioService) SetTip(ctx context.Context, reservationID uuid.UUID, tip pricing.Money) (folio.Folio, error) {
	if tip.IsNegative() {
		return folio.Folio{}, folio.ErrNegativeTip
	}
	f, err := s.mutate(ctx, reservationID, func(ctx context.Context, tx shared.Tx, res *reservation.Reservation) error {
		if err := ensureOpen(res); err != nil {
			return err
		}
		if err := tx.Folios().SetTip(ctx, res.ID(), tip); err != nil {
			return translateRepoErr(err, "folio", res.ID())
		}
		return nil
	})
	if err != nil {
		return folio.Folio{}, reportBug("set-tip", reservationID, err)
	}
	return f, nil
}

// mutate runs fn under the reservation's lock and then refreshes the
// reservation's derived paid flag from the resulting folio, all in one
// transaction.
func (s *folioService) mutate(
	ctx context.Context,
	reservationID uuid.UUID,
	fn func(ctx context.Context, tx shared.Tx, res *reservation.Reservation) error,
) (folio.Folio, error) {
	unlock, err := s.locks.Lock(ctx, reservationID)
	if err != nil {
		return folio.Folio{}, err
	}
	defer unlock()

	var f folio.Folio
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := loadReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		version := res.Version()
		if err := fn(ctx, tx, res); err != nil {
			return err
		}

		entries, err := tx.Folios().Entries(ctx, reservationID)
		if err != nil {
			return translateRepoErr(err, "folio", reservationID)
		}
		f, err = folio.Compute(reservationID, res.BaseTotal(), entries, nil)
		if err != nil {
			return err
		}
		if res.SyncPaid(f.Paid(), s.clock.Now()) {
			if err := tx.Reservations().Update(ctx, res, version); err != nil {
				return translateRepoErr(err, "reservation", reservationID)
			}
		}
		return nil
	})
	if err != nil {
		return folio.Folio{}, err
	}
	return f, nil
}
