package shared

import (
	"context"

	"innkeeper/internal/domain/folio"
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/domain/room"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: all writes made through tx commit together or not at all
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: consistent multi-repository reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Rooms() RoomRepository
	Reservations() ReservationRepository
	Folios() FolioRepository
}

type RoomRepository interface {
	Create(ctx context.Context, rm *room.Room) error
	Update(ctx context.Context, rm *room.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	List(ctx context.Context) ([]*room.Room, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	// Update succeeds only while the stored version equals expectedVersion.
	Update(ctx context.Context, res *reservation.Reservation, expectedVersion int64) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// ListActive returns reservations that still hold their room.
	ListActive(ctx context.Context) ([]*reservation.Reservation, error)
}

type FolioRepository interface {
	AddConsumption(ctx context.Context, c *folio.Consumption) error
	FindConsumption(ctx context.Context, id uuid.UUID) (*folio.Consumption, error)
	DeleteConsumption(ctx context.Context, id uuid.UUID) error
	AddExtraCharge(ctx context.Context, c *folio.ExtraCharge) error
	AddPayment(ctx context.Context, p *folio.Payment) error
	SetTip(ctx context.Context, reservationID uuid.UUID, tip pricing.Money) error
	Entries(ctx context.Context, reservationID uuid.UUID) (folio.Entries, error)
}
