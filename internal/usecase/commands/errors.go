package commands

import (
	"context"
	"log/slog"

	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrHoldExpired = errs.Wrap(errs.ErrInvalidTransition, "hold has expired")

// translateRepoErr maps storage failures onto the engine's error kinds.
func translateRepoErr(err error, entity string, id uuid.UUID) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Wrapf(errs.ErrNotFound, "%s %s not found", entity, id)
	case infra.IsKind(err, infra.KindVersionConflict):
		return errs.Wrapf(errs.ErrInvalidTransition, "%s %s was modified concurrently", entity, id)
	default:
		return errs.Wrapf(err, "%s %s", entity, id)
	}
}

func loadReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoErr(err, "reservation", id)
	}
	return res, nil
}

// reportBug logs invariant violations loudly; ordinary kinds pass silently.
func reportBug(op string, id uuid.UUID, err error) error {
	if err != nil && errs.IsAssertionFailure(err) {
		slog.Error("invariant violated",
			"op", op,
			"id", id,
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, 12))
	}
	return err
}
