//go:build unit

package folio_test

import (
	"testing"
	"time"

	"innkeeper/internal/domain/folio"
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 11, 13, 10, 0, 0, 0, time.UTC)

func consumption(t *testing.T, resID uuid.UUID, category folio.Category, qty int, unit int64) *folio.Consumption {
	t.Helper()
	c, err := folio.NewConsumption(resID, string(category)+" service", category, qty, pricing.NewMoney(unit), now)
	require.NoError(t, err)
	return c
}

func charge(t *testing.T, resID uuid.UUID, amount int64) *folio.ExtraCharge {
	t.Helper()
	c, err := folio.NewExtraCharge(resID, "adjustment", pricing.NewMoney(amount), "", now)
	require.NoError(t, err)
	return c
}

func payment(t *testing.T, resID uuid.UUID, amount int64, status folio.PaymentStatus) *folio.Payment {
	t.Helper()
	p, err := folio.NewPayment(resID, pricing.NewMoney(amount), folio.MethodCard, status, now)
	require.NoError(t, err)
	return p
}

func TestCompute(t *testing.T) {
	resID := uuid.New()

	t.Run("checkout example adds up", func(t *testing.T) {
		entries := folio.Entries{
			Consumptions: []*folio.Consumption{
				consumption(t, resID, folio.CategoryRestaurant, 1, 18500),
				consumption(t, resID, folio.CategoryMinibar, 1, 8500),
				consumption(t, resID, folio.CategoryLaundry, 1, 12000),
			},
			ExtraCharges: []*folio.ExtraCharge{charge(t, resID, 2000)},
		}

		f, err := folio.Compute(resID, pricing.NewMoney(182000), entries, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(223000), f.Total.Minor())
		assert.Equal(t, int64(39000), f.ConsumptionsTotal.Minor())
		assert.Equal(t, int64(2000), f.ExtraChargesTotal.Minor())
		assert.Equal(t, int64(223000), f.BalanceDue.Minor())
		assert.False(t, f.Paid())
	})

	t.Run("only succeeded payments count", func(t *testing.T) {
		entries := folio.Entries{
			Payments: []*folio.Payment{
				payment(t, resID, 100000, folio.PaymentSucceeded),
				payment(t, resID, 200000, folio.PaymentFailed),
				payment(t, resID, 50000, folio.PaymentPending),
			},
		}
		f, err := folio.Compute(resID, pricing.NewMoney(300000), entries, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(100000), f.AmountPaid.Minor())
		assert.Equal(t, int64(200000), f.BalanceDue.Minor())
	})

	t.Run("overpayment leaves no balance", func(t *testing.T) {
		entries := folio.Entries{Payments: []*folio.Payment{payment(t, resID, 400000, "")}}
		f, err := folio.Compute(resID, pricing.NewMoney(300000), entries, nil)
		require.NoError(t, err)
		assert.True(t, f.BalanceDue.IsZero())
		assert.True(t, f.Paid())
	})

	t.Run("tip preview overrides the recorded tip", func(t *testing.T) {
		entries := folio.Entries{Tip: pricing.NewMoney(5000)}
		recorded, err := folio.Compute(resID, pricing.NewMoney(100000), entries, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(105000), recorded.Total.Minor())

		preview := pricing.NewMoney(12000)
		previewed, err := folio.Compute(resID, pricing.NewMoney(100000), entries, &preview)
		require.NoError(t, err)
		assert.Equal(t, int64(112000), previewed.Total.Minor())
	})

	t.Run("negative tip rejected", func(t *testing.T) {
		tip := pricing.NewMoney(-1)
		_, err := folio.Compute(resID, pricing.NewMoney(100000), folio.Entries{}, &tip)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("discounts below zero clamp with a warning", func(t *testing.T) {
		entries := folio.Entries{ExtraCharges: []*folio.ExtraCharge{charge(t, resID, -150000)}}
		f, err := folio.Compute(resID, pricing.NewMoney(100000), entries, nil)
		require.NoError(t, err)
		assert.True(t, f.Total.IsZero())
		assert.Contains(t, f.Warnings, pricing.WarningNegativeTotalClamped)
		assert.True(t, f.Paid())
	})
}

func TestEntries_Validation(t *testing.T) {
	resID := uuid.New()

	testCases := []struct {
		name  string
		build func() error
		errIs error
	}{
		{
			name: "unknown category",
			build: func() error {
				_, err := folio.NewConsumption(resID, "bar", folio.Category("casino"), 1, 100, now)
				return err
			},
			errIs: folio.ErrInvalidCategory,
		},
		{
			name: "zero quantity",
			build: func() error {
				_, err := folio.NewConsumption(resID, "bar", folio.CategoryRestaurant, 0, 100, now)
				return err
			},
			errIs: folio.ErrInvalidQuantity,
		},
		{
			name: "negative unit price",
			build: func() error {
				_, err := folio.NewConsumption(resID, "bar", folio.CategoryRestaurant, 1, -1, now)
				return err
			},
			errIs: folio.ErrNegativeUnitPrice,
		},
		{
			name: "blank description",
			build: func() error {
				_, err := folio.NewConsumption(resID, "  ", folio.CategoryRestaurant, 1, 100, now)
				return err
			},
			errIs: folio.ErrEmptyDescription,
		},
		{
			name: "zero extra charge",
			build: func() error {
				_, err := folio.NewExtraCharge(resID, "nothing", 0, "", now)
				return err
			},
			errIs: folio.ErrZeroCharge,
		},
		{
			name: "non-positive payment",
			build: func() error {
				_, err := folio.NewPayment(resID, 0, folio.MethodCash, "", now)
				return err
			},
			errIs: folio.ErrInvalidPayment,
		},
		{
			name: "unknown payment method",
			build: func() error {
				_, err := folio.NewPayment(resID, 100, folio.PaymentMethod("cheque"), "", now)
				return err
			},
			errIs: folio.ErrInvalidMethod,
		},
		{
			name: "unknown payment status",
			build: func() error {
				_, err := folio.NewPayment(resID, 100, folio.MethodCash, folio.PaymentStatus("REFUNDED"), now)
				return err
			},
			errIs: folio.ErrInvalidStatus,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build()
			assert.ErrorIs(t, err, tc.errIs)
			assert.ErrorIs(t, err, errs.ErrValidation)
		})
	}

	t.Run("payment status defaults to succeeded", func(t *testing.T) {
		p := payment(t, resID, 100, "")
		assert.Equal(t, folio.PaymentSucceeded, p.Status)
	})
}
