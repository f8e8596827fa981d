package memory

import (
	"context"
	"sort"

	"innkeeper/internal/domain/folio"
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/infra"

	"github.com/google/uuid"
)

// Entries are kept as value copies tagged with an insertion sequence so
// reads come back in the order they were recorded.
type (
	consumptionRow struct {
		seq int64
		folio.Consumption
	}
	chargeRow struct {
		seq int64
		folio.ExtraCharge
	}
	paymentRow struct {
		seq int64
		folio.Payment
	}
)

type folioRepo struct {
	tx *memTx
}

func (r *folioRepo) requireReservation(id uuid.UUID) error {
	if _, ok := r.tx.store.reservations[id]; !ok {
		return infra.WrapRepoErr(infra.KindForeignKeyViolated, "folio entry references unknown reservation", nil)
	}
	return nil
}

func (r *folioRepo) AddConsumption(_ context.Context, c *folio.Consumption) error {
	s := r.tx.store
	if err := r.requireReservation(c.ReservationID); err != nil {
		return err
	}
	if err := r.tx.write(restoreKey(s.consumptions, c.ID)); err != nil {
		return err
	}
	s.consumptions[c.ID] = consumptionRow{seq: s.nextSeq(), Consumption: *c}
	return nil
}

func (r *folioRepo) FindConsumption(_ context.Context, id uuid.UUID) (*folio.Consumption, error) {
	row, ok := r.tx.store.consumptions[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "consumption not found", nil)
	}
	c := row.Consumption
	return &c, nil
}

func (r *folioRepo) DeleteConsumption(_ context.Context, id uuid.UUID) error {
	s := r.tx.store
	if _, ok := s.consumptions[id]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "consumption not found", nil)
	}
	if err := r.tx.write(restoreKey(s.consumptions, id)); err != nil {
		return err
	}
	delete(s.consumptions, id)
	return nil
}

func (r *folioRepo) AddExtraCharge(_ context.Context, c *folio.ExtraCharge) error {
	s := r.tx.store
	if err := r.requireReservation(c.ReservationID); err != nil {
		return err
	}
	if err := r.tx.write(restoreKey(s.charges, c.ID)); err != nil {
		return err
	}
	s.charges[c.ID] = chargeRow{seq: s.nextSeq(), ExtraCharge: *c}
	return nil
}

func (r *folioRepo) AddPayment(_ context.Context, p *folio.Payment) error {
	s := r.tx.store
	if err := r.requireReservation(p.ReservationID); err != nil {
		return err
	}
	if err := r.tx.write(restoreKey(s.payments, p.ID)); err != nil {
		return err
	}
	s.payments[p.ID] = paymentRow{seq: s.nextSeq(), Payment: *p}
	return nil
}

func (r *folioRepo) SetTip(_ context.Context, reservationID uuid.UUID, tip pricing.Money) error {
	s := r.tx.store
	if err := r.requireReservation(reservationID); err != nil {
		return err
	}
	if err := r.tx.write(restoreKey(s.tips, reservationID)); err != nil {
		return err
	}
	s.tips[reservationID] = tip
	return nil
}

func (r *folioRepo) Entries(_ context.Context, reservationID uuid.UUID) (folio.Entries, error) {
	s := r.tx.store
	var (
		consumptions []consumptionRow
		charges      []chargeRow
		payments     []paymentRow
	)
	for _, row := range s.consumptions {
		if row.ReservationID == reservationID {
			consumptions = append(consumptions, row)
		}
	}
	for _, row := range s.charges {
		if row.ReservationID == reservationID {
			charges = append(charges, row)
		}
	}
	for _, row := range s.payments {
		if row.ReservationID == reservationID {
			payments = append(payments, row)
		}
	}
	sort.Slice(consumptions, func(i, j int) bool { return consumptions[i].seq < consumptions[j].seq })
	sort.Slice(charges, func(i, j int) bool { return charges[i].seq < charges[j].seq })
	sort.Slice(payments, func(i, j int) bool { return payments[i].seq < payments[j].seq })

	e := folio.Entries{Tip: s.tips[reservationID]}
	for _, row := range consumptions {
		c := row.Consumption
		e.Consumptions = append(e.Consumptions, &c)
	}
	for _, row := range charges {
		c := row.ExtraCharge
		e.ExtraCharges = append(e.ExtraCharges, &c)
	}
	for _, row := range payments {
		p := row.Payment
		e.Payments = append(e.Payments, &p)
	}
	return e, nil
}
