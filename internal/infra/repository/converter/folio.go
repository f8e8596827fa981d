package converter

import (
	"innkeeper/internal/domain/folio"
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type ConsumptionRow struct {
	ID            pgtype.UUID
	ReservationID pgtype.UUID
	Description   string
	Category      string
	Quantity      int32
	UnitPrice     int64
	CreatedAt     pgtype.Timestamptz
}

func ConsumptionToDomain(row ConsumptionRow) *folio.Consumption {
	return &folio.Consumption{
		ID:            pgconv.UUIDFromPgtype(row.ID),
		ReservationID: pgconv.UUIDFromPgtype(row.ReservationID),
		Description:   row.Description,
		Category:      folio.Category(row.Category),
		Quantity:      int(row.Quantity),
		UnitPrice:     pricing.NewMoney(row.UnitPrice),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

type ExtraChargeRow struct {
	ID            pgtype.UUID
	ReservationID pgtype.UUID
	Description   string
	Amount        int64
	Reason        pgtype.Text
	CreatedAt     pgtype.Timestamptz
}

func ExtraChargeToDomain(row ExtraChargeRow) *folio.ExtraCharge {
	return &folio.ExtraCharge{
		ID:            pgconv.UUIDFromPgtype(row.ID),
		ReservationID: pgconv.UUIDFromPgtype(row.ReservationID),
		Description:   row.Description,
		Amount:        pricing.NewMoney(row.Amount),
		Reason:        pgconv.StringFromPgtype(row.Reason),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

type PaymentRow struct {
	ID            pgtype.UUID
	ReservationID pgtype.UUID
	Amount        int64
	Method        string
	Status        string
	CreatedAt     pgtype.Timestamptz
}

func PaymentToDomain(row PaymentRow) *folio.Payment {
	return &folio.Payment{
		ID:            pgconv.UUIDFromPgtype(row.ID),
		ReservationID: pgconv.UUIDFromPgtype(row.ReservationID),
		Amount:        pricing.NewMoney(row.Amount),
		Method:        folio.PaymentMethod(row.Method),
		Status:        folio.PaymentStatus(row.Status),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
