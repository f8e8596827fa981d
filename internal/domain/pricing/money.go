package pricing

import (
	"fmt"
	"math"
)

// Money is an amount in minor currency units. Binary floats never touch it.
type Money int64

func NewMoney(minor int64) Money {
	return Money(minor)
}

func (m Money) Minor() int64 { return int64(m) }

func (m Money) Add(other Money) Money { return m + other }

func (m Money) Sub(other Money) Money { return m - other }

func (m Money) IsNegative() bool { return m < 0 }

func (m Money) IsZero() bool { return m == 0 }

func (m Money) String() string {
	return fmt.Sprintf("%d", int64(m))
}

// Sum adds amounts and reports int64 overflow.
func Sum(amounts ...Money) (Money, bool) {
	var total int64
	for _, a := range amounts {
		v := int64(a)
		if (v > 0 && total > math.MaxInt64-v) || (v < 0 && total < math.MinInt64-v) {
			return 0, false
		}
		total += v
	}
	return Money(total), true
}

func mul(a Money, n int64) (Money, bool) {
	if a == 0 || n == 0 {
		return 0, true
	}
	r := int64(a) * n
	if r/n != int64(a) {
		return 0, false
	}
	return Money(r), true
}
