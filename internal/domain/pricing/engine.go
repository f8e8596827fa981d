package pricing

import (
	"innkeeper/internal/pkg/errs"
)

type Warning string

const WarningNegativeTotalClamped Warning = "NegativeTotalClamped"

// BaseTotal is rate * nights. No intermediate rounding is involved because both
// operands are integral; callers must have validated nights already.
func BaseTotal(rate Money, nights int) (Money, error) {
	if nights < 1 {
		return 0, errs.AssertionFailed("base total requested for %d nights", nights)
	}
	if rate.IsNegative() {
		return 0, errs.AssertionFailed("negative nightly rate %d", rate)
	}
	total, ok := mul(rate, int64(nights))
	if !ok {
		return 0, errs.AssertionFailed("base total overflows: rate=%d nights=%d", rate, nights)
	}
	return total, nil
}

// StayTotal is BaseTotal followed by the configured taxes.
func StayTotal(rate Money, nights int, rates []TaxRate) (Money, error) {
	base, err := BaseTotal(rate, nights)
	if err != nil {
		return 0, err
	}
	if len(rates) == 0 {
		return base, nil
	}
	return ApplyTaxes(base, rates)
}

func LineTotal(quantity int, unitPrice Money) (Money, error) {
	if quantity <= 0 || unitPrice.IsNegative() {
		return 0, errs.AssertionFailed("line total with quantity=%d unitPrice=%d", quantity, unitPrice)
	}
	total, ok := mul(unitPrice, int64(quantity))
	if !ok {
		return 0, errs.AssertionFailed("line total overflows: quantity=%d unitPrice=%d", quantity, unitPrice)
	}
	return total, nil
}

// FolioTotal = base + consumptions + extra charges + tip, clamped at zero.
func FolioTotal(base Money, consumptionTotals, extraCharges []Money, tip Money) (Money, []Warning, error) {
	amounts := make([]Money, 0, len(consumptionTotals)+len(extraCharges)+2)
	amounts = append(amounts, base)
	amounts = append(amounts, consumptionTotals...)
	amounts = append(amounts, extraCharges...)
	amounts = append(amounts, tip)

	total, ok := Sum(amounts...)
	if !ok {
		return 0, nil, errs.AssertionFailed("folio total overflows")
	}
	if total.IsNegative() {
		return 0, []Warning{WarningNegativeTotalClamped}, nil
	}
	return total, nil, nil
}
