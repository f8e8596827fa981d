package queries

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/queries/reservation.go -package=queriesmock

import (
	"context"
	"time"

	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/availability"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
}

type reservationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReservationQueries(uow shared.UnitOfWork) ReservationQueries {
	return &reservationQueriesImpl{uow: uow}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	var view *ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().FindByID(ctx, id)
		if err != nil {
			return notFound(err, "reservation", id)
		}
		view = NewReservationView(res)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

type AvailabilityQueries interface {
	IsAvailable(ctx context.Context, roomID uuid.UUID, stay reservation.StayRange) (*AvailabilityView, error)
	// Claims lists what currently blocks the room, ordered by check-in.
	Claims(ctx context.Context, roomID uuid.UUID) ([]ClaimView, error)
}

type availabilityQueriesImpl struct {
	uow   shared.UnitOfWork
	index *availability.Index
}

func NewAvailabilityQueries(uow shared.UnitOfWork, index *availability.Index) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow, index: index}
}

func (q *availabilityQueriesImpl) IsAvailable(ctx context.Context, roomID uuid.UUID, stay reservation.StayRange) (*AvailabilityView, error) {
	if err := q.ensureRoom(ctx, roomID); err != nil {
		return nil, err
	}
	free, err := q.index.IsFree(ctx, roomID, stay)
	if err != nil {
		return nil, err
	}
	return &AvailabilityView{
		RoomID:    roomID,
		CheckIn:   stay.CheckIn().Format(time.DateOnly),
		CheckOut:  stay.CheckOut().Format(time.DateOnly),
		Available: free,
	}, nil
}

func (q *availabilityQueriesImpl) Claims(ctx context.Context, roomID uuid.UUID) ([]ClaimView, error) {
	if err := q.ensureRoom(ctx, roomID); err != nil {
		return nil, err
	}
	claims := q.index.Claims(roomID)
	views := make([]ClaimView, 0, len(claims))
	for _, c := range claims {
		v := ClaimView{
			ReservationID: c.ReservationID,
			CheckIn:       c.Stay.CheckIn().Format(time.DateOnly),
			CheckOut:      c.Stay.CheckOut().Format(time.DateOnly),
			Kind:          string(c.Kind),
		}
		if !c.ExpiresAt.IsZero() {
			expiresAt := c.ExpiresAt
			v.ExpiresAt = &expiresAt
		}
		views = append(views, v)
	}
	return views, nil
}

func (q *availabilityQueriesImpl) ensureRoom(ctx context.Context, roomID uuid.UUID) error {
	return q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Rooms().FindByID(ctx, roomID); err != nil {
			return notFound(err, "room", roomID)
		}
		return nil
	})
}

func notFound(err error, entity string, id uuid.UUID) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Wrapf(errs.ErrNotFound, "%s %s not found", entity, id)
	}
	return err
}
