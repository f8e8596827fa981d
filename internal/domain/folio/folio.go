package folio

import (
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

// Entries is everything recorded against one reservation's bill.
type Entries struct {
	Consumptions []*Consumption
	ExtraCharges []*ExtraCharge
	Payments     []*Payment
	Tip          pricing.Money
}

// AmountPaid sums SUCCEEDED payments only.
func (e Entries) AmountPaid() pricing.Money {
	var paid pricing.Money
	for _, p := range e.Payments {
		if p.Status == PaymentSucceeded {
			paid += p.Amount
		}
	}
	return paid
}

// Folio is derived on every read and never stored.
type Folio struct {
	ReservationID     uuid.UUID
	BaseTotal         pricing.Money
	Consumptions      []*Consumption
	ExtraCharges      []*ExtraCharge
	Payments          []*Payment
	ConsumptionsTotal pricing.Money
	ExtraChargesTotal pricing.Money
	Tip               pricing.Money
	Total             pricing.Money
	AmountPaid        pricing.Money
	BalanceDue        pricing.Money
	Warnings          []pricing.Warning
}

func (f Folio) Paid() bool {
	return f.AmountPaid >= f.Total
}

// Compute aggregates entries into a folio. A non-nil tip overrides the
// recorded one, which lets callers preview a tip without storing it.
func Compute(reservationID uuid.UUID, base pricing.Money, e Entries, tip *pricing.Money) (Folio, error) {
	effectiveTip := e.Tip
	if tip != nil {
		effectiveTip = *tip
	}
	if effectiveTip.IsNegative() {
		return Folio{}, ErrNegativeTip
	}

	lines := make([]pricing.Money, 0, len(e.Consumptions))
	for _, c := range e.Consumptions {
		lt, err := c.LineTotal()
		if err != nil {
			return Folio{}, err
		}
		lines = append(lines, lt)
	}
	charges := make([]pricing.Money, 0, len(e.ExtraCharges))
	for _, c := range e.ExtraCharges {
		charges = append(charges, c.Amount)
	}

	total, warnings, err := pricing.FolioTotal(base, lines, charges, effectiveTip)
	if err != nil {
		return Folio{}, err
	}
	consumptionsTotal, ok := pricing.Sum(lines...)
	if !ok {
		return Folio{}, errs.AssertionFailed("consumption total overflows")
	}
	chargesTotal, ok := pricing.Sum(charges...)
	if !ok {
		return Folio{}, errs.AssertionFailed("extra charge total overflows")
	}

	paid := e.AmountPaid()
	balance := total - paid
	if balance < 0 {
		balance = 0
	}

	return Folio{
		ReservationID:     reservationID,
		BaseTotal:         base,
		Consumptions:      e.Consumptions,
		ExtraCharges:      e.ExtraCharges,
		Payments:          e.Payments,
		ConsumptionsTotal: consumptionsTotal,
		ExtraChargesTotal: chargesTotal,
		Tip:               effectiveTip,
		Total:             total,
		AmountPaid:        paid,
		BalanceDue:        balance,
		Warnings:          warnings,
	}, nil
}
