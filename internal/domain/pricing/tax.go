package pricing

import (
	"fmt"
	"math/big"
	"strings"

	"innkeeper/internal/pkg/errs"
)

const basisPointsPerUnit = 10000

// TaxRate is a percentage expressed in basis points (1900 = 19%).
type TaxRate struct {
	Name        string
	BasisPoints int64
	Compounds   bool
}

func (t TaxRate) Percent() string {
	return new(big.Rat).SetFrac64(t.BasisPoints, 100).FloatString(2)
}

// ParseTaxRates reads "IVA:19,MUNICIPAL:2.5,TOURISM:1:compound".
// An empty string yields no taxes.
func ParseTaxRates(list string) ([]TaxRate, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil, nil
	}

	var rates []TaxRate
	for _, raw := range strings.Split(list, ",") {
		parts := strings.Split(strings.TrimSpace(raw), ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, errs.Newf("invalid tax rate %q: want name:percent[:compound]", raw)
		}
		name := strings.TrimSpace(parts[0])
		if name == "" {
			return nil, errs.Newf("invalid tax rate %q: empty name", raw)
		}
		bp, err := parseBasisPoints(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, errs.Wrapf(err, "invalid tax rate %q", raw)
		}
		compounds := false
		if len(parts) == 3 {
			if strings.TrimSpace(parts[2]) != "compound" {
				return nil, errs.Newf("invalid tax rate %q: unknown flag %q", raw, parts[2])
			}
			compounds = true
		}
		rates = append(rates, TaxRate{Name: name, BasisPoints: bp, Compounds: compounds})
	}
	return rates, nil
}

func parseBasisPoints(percent string) (int64, error) {
	r, ok := new(big.Rat).SetString(percent)
	if !ok {
		return 0, fmt.Errorf("percent %q is not a number", percent)
	}
	r.Mul(r, big.NewRat(100, 1))
	if !r.IsInt() {
		return 0, fmt.Errorf("percent %q has more than two decimals", percent)
	}
	if r.Sign() < 0 {
		return 0, fmt.Errorf("percent %q is negative", percent)
	}
	if !r.Num().IsInt64() {
		return 0, fmt.Errorf("percent %q is out of range", percent)
	}
	return r.Num().Int64(), nil
}

// ApplyTaxes adds every tax to subtotal. Non-compounding taxes are computed on
// the subtotal alone; compounding taxes apply, in list order, to the subtotal
// plus the compounding taxes already applied. Rounding happens once.
func ApplyTaxes(subtotal Money, rates []TaxRate) (Money, error) {
	base := new(big.Rat).SetInt64(int64(subtotal))
	running := new(big.Rat).Set(base)
	total := new(big.Rat).Set(base)

	for _, t := range rates {
		if t.BasisPoints < 0 {
			return 0, errs.AssertionFailed("tax %s has negative rate %d", t.Name, t.BasisPoints)
		}
		share := big.NewRat(t.BasisPoints, basisPointsPerUnit)
		if t.Compounds {
			amount := new(big.Rat).Mul(running, share)
			running.Add(running, amount)
			total.Add(total, amount)
			continue
		}
		total.Add(total, new(big.Rat).Mul(base, share))
	}

	rounded := roundHalfEven(total)
	if !rounded.IsInt64() {
		return 0, errs.AssertionFailed("taxed total overflows: %s", rounded.String())
	}
	return Money(rounded.Int64()), nil
}

// roundHalfEven rounds to the nearest integer, ties to even.
func roundHalfEven(r *big.Rat) *big.Int {
	num := new(big.Int).Set(r.Num())
	den := r.Denom()

	neg := num.Sign() < 0
	if neg {
		num.Neg(num)
	}

	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	twice := new(big.Int).Lsh(rem, 1)
	switch twice.Cmp(den) {
	case 1:
		q.Add(q, big.NewInt(1))
	case 0:
		if q.Bit(0) == 1 {
			q.Add(q, big.NewInt(1))
		}
	}

	if neg {
		q.Neg(q)
	}
	return q
}
