package repository

import (
	"context"

	"innkeeper/internal/domain/folio"
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/infra"
	"innkeeper/internal/infra/db"
	"innkeeper/internal/infra/repository/converter"
	"innkeeper/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FolioRepository struct {
	db db.DBTX
}

func NewFolioRepository(dbtx db.DBTX) *FolioRepository {
	return &FolioRepository{db: dbtx}
}

func insertErr(err error, what string) error {
	if pgconv.IsForeignKeyViolation(err) {
		return infra.WrapRepoErr(infra.KindForeignKeyViolated, what+" references unknown reservation", err)
	}
	return infra.WrapRepoErr(infra.KindDBFailure, "failed to insert "+what, err)
}

func (r *FolioRepository) AddConsumption(ctx context.Context, c *folio.Consumption) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO consumptions (id, reservation_id, description, category, quantity, unit_price, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		pgconv.UUIDToPgtype(c.ID), pgconv.UUIDToPgtype(c.ReservationID), c.Description, string(c.Category),
		c.Quantity, c.UnitPrice.Minor(), pgconv.TimeToPgtype(c.CreatedAt),
	)
	if err != nil {
		return insertErr(err, "consumption")
	}
	return nil
}

func (r *FolioRepository) FindConsumption(ctx context.Context, id uuid.UUID) (*folio.Consumption, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, reservation_id, description, category, quantity, unit_price, created_at
		   FROM consumptions WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query consumption", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[converter.ConsumptionRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "consumption not found", nil)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan consumption", err)
	}
	return converter.ConsumptionToDomain(row), nil
}

func (r *FolioRepository) DeleteConsumption(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM consumptions WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to delete consumption", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "consumption not found", nil)
	}
	return nil
}

func (r *FolioRepository) AddExtraCharge(ctx context.Context, c *folio.ExtraCharge) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO extra_charges (id, reservation_id, description, amount, reason, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		pgconv.UUIDToPgtype(c.ID), pgconv.UUIDToPgtype(c.ReservationID), c.Description, c.Amount.Minor(),
		pgconv.OptionalStringToPgtype(c.Reason), pgconv.TimeToPgtype(c.CreatedAt),
	)
	if err != nil {
		return insertErr(err, "extra charge")
	}
	return nil
}

func (r *FolioRepository) AddPayment(ctx context.Context, p *folio.Payment) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO payments (id, reservation_id, amount, method, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		pgconv.UUIDToPgtype(p.ID), pgconv.UUIDToPgtype(p.ReservationID), p.Amount.Minor(),
		string(p.Method), string(p.Status), pgconv.TimeToPgtype(p.CreatedAt),
	)
	if err != nil {
		return insertErr(err, "payment")
	}
	return nil
}

func (r *FolioRepository) SetTip(ctx context.Context, reservationID uuid.UUID, tip pricing.Money) error {
	tag, err := r.db.Exec(ctx, `UPDATE reservations SET tip = $2 WHERE id = $1`, pgconv.UUIDToPgtype(reservationID), tip.Minor())
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to set tip", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}

func (r *FolioRepository) Entries(ctx context.Context, reservationID uuid.UUID) (folio.Entries, error) {
	id := pgconv.UUIDToPgtype(reservationID)
	var e folio.Entries

	var tip int64
	if err := r.db.QueryRow(ctx, `SELECT tip FROM reservations WHERE id = $1`, id).Scan(&tip); err != nil {
		if pgconv.IsNoRows(err) {
			return folio.Entries{}, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
		}
		return folio.Entries{}, infra.WrapRepoErr(infra.KindDBFailure, "failed to read tip", err)
	}
	e.Tip = pricing.NewMoney(tip)

	rows, err := r.db.Query(ctx,
		`SELECT id, reservation_id, description, category, quantity, unit_price, created_at
		   FROM consumptions WHERE reservation_id = $1 ORDER BY seq`, id)
	if err != nil {
		return folio.Entries{}, infra.WrapRepoErr(infra.KindDBFailure, "failed to query consumptions", err)
	}
	consumptions, err := pgx.CollectRows(rows, pgx.RowToStructByPos[converter.ConsumptionRow])
	if err != nil {
		return folio.Entries{}, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan consumptions", err)
	}
	for _, row := range consumptions {
		e.Consumptions = append(e.Consumptions, converter.ConsumptionToDomain(row))
	}

	rows, err = r.db.Query(ctx,
		`SELECT id, reservation_id, description, amount, reason, created_at
		   FROM extra_charges WHERE reservation_id = $1 ORDER BY seq`, id)
	if err != nil {
		return folio.Entries{}, infra.WrapRepoErr(infra.KindDBFailure, "failed to query extra charges", err)
	}
	charges, err := pgx.CollectRows(rows, pgx.RowToStructByPos[converter.ExtraChargeRow])
	if err != nil {
		return folio.Entries{}, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan extra charges", err)
	}
	for _, row := range charges {
		e.ExtraCharges = append(e.ExtraCharges, converter.ExtraChargeToDomain(row))
	}

	rows, err = r.db.Query(ctx,
		`SELECT id, reservation_id, amount, method, status, created_at
		   FROM payments WHERE reservation_id = $1 ORDER BY seq`, id)
	if err != nil {
		return folio.Entries{}, infra.WrapRepoErr(infra.KindDBFailure, "failed to query payments", err)
	}
	payments, err := pgx.CollectRows(rows, pgx.RowToStructByPos[converter.PaymentRow])
	if err != nil {
		return folio.Entries{}, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan payments", err)
	}
	for _, row := range payments {
		e.Payments = append(e.Payments, converter.PaymentToDomain(row))
	}

	return e, nil
}
