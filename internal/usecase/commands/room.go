package commands

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/commands/room.go -package=commandsmock

import (
	"context"
	"log/slog"

	"innkeeper/internal/domain/room"
	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrDuplicateRoomNumber = errs.Wrap(errs.ErrValidation, "room number already exists")

type RoomCatalog interface {
	Register(ctx context.Context, in RegisterRoomInput) (*room.Room, error)
	Get(ctx context.Context, id uuid.UUID) (*room.Room, error)
	// List returns rooms ordered by number.
	List(ctx context.Context) ([]*room.Room, error)
	// UpdateStatus changes the operational flag only. Availability never reads it.
	UpdateStatus(ctx context.Context, id uuid.UUID, status room.Status) (*room.Room, error)
}

type roomCatalog struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRoomCatalog(uow shared.UnitOfWork, clock clock.Clock) RoomCatalog {
	return &roomCatalog{
		uow:   uow,
		clock: clock,
	}
}

func (c *roomCatalog) Register(ctx context.Context, in RegisterRoomInput) (*room.Room, error) {
	rm, err := room.NewRoom(in.Number, in.Type, in.Rate, in.Capacity, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Rooms().Create(ctx, rm)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Wrapf(ErrDuplicateRoomNumber, "room %s", rm.Number())
		}
		return nil, errs.Wrap(err, "failed to register room")
	}

	slog.Info("room registered", "room_id", rm.ID(), "number", rm.Number(), "type", rm.Type())
	return rm, nil
}

func (c *roomCatalog) Get(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	var rm *room.Room
	err := c.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
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

func (c *roomCatalog) List(ctx context.Context) ([]*room.Room, error) {
	var rooms []*room.Room
	err := c.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		rooms, err = tx.Rooms().List(ctx)
		return err
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to list rooms")
	}
	return rooms, nil
}

func (c *roomCatalog) UpdateStatus(ctx context.Context, id uuid.UUID, status room.Status) (*room.Room, error) {
	var rm *room.Room
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Rooms().FindByID(ctx, id)
		if err != nil {
			return translateRepoErr(err, "room", id)
		}
		if err := found.ChangeStatus(status, c.clock.Now()); err != nil {
			return err
		}
		if err := tx.Rooms().Update(ctx, found); err != nil {
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
