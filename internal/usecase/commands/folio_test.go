//go:build unit

package commands_test

import (
	"innkeeper/internal/domain/folio"
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/commands"

	"github.com/google/uuid"
)

func (s *ledgerSuite) confirmed(checkIn, checkOut string) *reservation.Reservation {
	res := s.create(checkIn, checkOut)
	res, err := s.ledger.Confirm(s.ctx, res.ID())
	s.Require().NoError(err)
	return res
}

func (s *ledgerSuite) TestFolio_AppendRequiresConfirmation() {
	res := s.create("2025-11-12", "2025-11-14")

	_, err := s.folios.AddConsumption(s.ctx, commands.AddConsumptionInput{
		ReservationID: res.ID(),
		Description:   "water",
		Category:      folio.CategoryMinibar,
		Quantity:      2,
		UnitPrice:     pricing.NewMoney(3000),
	})
	s.ErrorIs(err, errs.ErrInvalidTransition)

	_, err = s.ledger.Confirm(s.ctx, res.ID())
	s.Require().NoError(err)

	c, err := s.folios.AddConsumption(s.ctx, commands.AddConsumptionInput{
		ReservationID: res.ID(),
		Description:   "water",
		Category:      folio.CategoryMinibar,
		Quantity:      2,
		UnitPrice:     pricing.NewMoney(3000),
	})
	s.Require().NoError(err)
	s.Equal(res.ID(), c.ReservationID)

	f, err := s.folios.ComputeFolio(s.ctx, res.ID(), nil)
	s.Require().NoError(err)
	s.Equal(int64(6000), f.ConsumptionsTotal.Minor())
	s.Equal(int64(306000), f.Total.Minor())
}

func (s *ledgerSuite) TestFolio_ClosedReservationRejectsEntries() {
	res := s.create("2025-11-12", "2025-11-14")
	_, err := s.ledger.Cancel(s.ctx, res.ID())
	s.Require().NoError(err)

	_, err = s.folios.AddExtraCharge(s.ctx, commands.AddExtraChargeInput{
		ReservationID: res.ID(),
		Description:   "late check-out",
		Amount:        pricing.NewMoney(20000),
	})
	s.ErrorIs(err, errs.ErrReservationClosed)

	_, err = s.folios.Settle(s.ctx, commands.PaymentInput{
		ReservationID: res.ID(),
		Amount:        pricing.NewMoney(1000),
		Method:        folio.MethodCash,
	})
	s.ErrorIs(err, errs.ErrReservationClosed)

	_, err = s.folios.SetTip(s.ctx, res.ID(), pricing.NewMoney(1000))
	s.ErrorIs(err, errs.ErrReservationClosed)
}

func (s *ledgerSuite) TestFolio_ExtraChargesAndDiscounts() {
	res := s.confirmed("2025-11-12", "2025-11-14")

	_, err := s.folios.AddExtraCharge(s.ctx, commands.AddExtraChargeInput{
		ReservationID: res.ID(),
		Description:   "late check-out",
		Amount:        pricing.NewMoney(20000),
		Reason:        "requested by guest",
	})
	s.Require().NoError(err)
	_, err = s.folios.AddExtraCharge(s.ctx, commands.AddExtraChargeInput{
		ReservationID: res.ID(),
		Description:   "loyalty discount",
		Amount:        pricing.NewMoney(-10000),
	})
	s.Require().NoError(err)

	_, err = s.folios.AddExtraCharge(s.ctx, commands.AddExtraChargeInput{
		ReservationID: res.ID(),
		Description:   "nothing",
		Amount:        pricing.NewMoney(0),
	})
	s.ErrorIs(err, folio.ErrZeroCharge)

	f, err := s.folios.ComputeFolio(s.ctx, res.ID(), nil)
	s.Require().NoError(err)
	s.Len(f.ExtraCharges, 2)
	s.Equal(int64(10000), f.ExtraChargesTotal.Minor())
	s.Equal(int64(310000), f.Total.Minor())
}

func (s *ledgerSuite) TestFolio_RemoveConsumption() {
	res := s.confirmed("2025-11-12", "2025-11-14")
	c, err := s.folios.AddConsumption(s.ctx, commands.AddConsumptionInput{
		ReservationID: res.ID(),
		Description:   "dinner",
		Category:      folio.CategoryRestaurant,
		Quantity:      1,
		UnitPrice:     pricing.NewMoney(45000),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.folios.RemoveConsumption(s.ctx, c.ID))

	f, err := s.folios.ComputeFolio(s.ctx, res.ID(), nil)
	s.Require().NoError(err)
	s.Empty(f.Consumptions)
	s.Equal(int64(300000), f.Total.Minor())

	s.ErrorIs(s.folios.RemoveConsumption(s.ctx, c.ID), errs.ErrNotFound)
	s.ErrorIs(s.folios.RemoveConsumption(s.ctx, uuid.New()), errs.ErrNotFound)
}

func (s *ledgerSuite) TestFolio_SettleTracksPaidFlag() {
	res := s.confirmed("2025-11-12", "2025-11-13")

	s.Run("failed payments do not count", func() {
		result, err := s.folios.Settle(s.ctx, commands.PaymentInput{
			ReservationID: res.ID(),
			Amount:        pricing.NewMoney(150000),
			Method:        folio.MethodCard,
			Status:        folio.PaymentFailed,
		})
		s.Require().NoError(err)
		s.Equal(folio.PaymentFailed, result.Payment.Status)
		s.Equal(int64(150000), result.Folio.BalanceDue.Minor())
	})

	s.Run("full payment marks the reservation paid", func() {
		result, err := s.folios.Settle(s.ctx, commands.PaymentInput{
			ReservationID: res.ID(),
			Amount:        pricing.NewMoney(150000),
			Method:        folio.MethodCard,
		})
		s.Require().NoError(err)
		s.Equal(folio.PaymentSucceeded, result.Payment.Status)
		s.True(result.Folio.Paid())

		stored, err := s.ledger.Get(s.ctx, res.ID())
		s.Require().NoError(err)
		s.True(stored.Paid())
	})

	s.Run("a tip reopens the balance", func() {
		f, err := s.folios.SetTip(s.ctx, res.ID(), pricing.NewMoney(7000))
		s.Require().NoError(err)
		s.Equal(int64(7000), f.BalanceDue.Minor())

		stored, err := s.ledger.Get(s.ctx, res.ID())
		s.Require().NoError(err)
		s.False(stored.Paid())
	})

	s.Run("negative tip", func() {
		_, err := s.folios.SetTip(s.ctx, res.ID(), pricing.NewMoney(-1))
		s.ErrorIs(err, folio.ErrNegativeTip)
	})
}

func (s *ledgerSuite) TestFolio_PreviewNeverWrites() {
	res := s.confirmed("2025-11-12", "2025-11-13")
	tip := pricing.NewMoney(15000)

	preview, err := s.folios.ComputeFolio(s.ctx, res.ID(), &tip)
	s.Require().NoError(err)
	s.Equal(int64(165000), preview.Total.Minor())

	f, err := s.folios.ComputeFolio(s.ctx, res.ID(), nil)
	s.Require().NoError(err)
	s.Equal(int64(150000), f.Total.Minor())

	_, err = s.folios.ComputeFolio(s.ctx, uuid.New(), nil)
	s.ErrorIs(err, errs.ErrNotFound)
}

func (s *ledgerSuite) TestFolio_ConcurrentAppendsAreAllRecorded() {
	res := s.confirmed("2025-11-12", "2025-11-14")

	const workers = 20
	done := make(chan error, workers)
	for range workers {
		go func() {
			_, err := s.folios.AddConsumption(s.ctx, commands.AddConsumptionInput{
				ReservationID: res.ID(),
				Description:   "coffee",
				Category:      folio.CategoryRestaurant,
				Quantity:      1,
				UnitPrice:     pricing.NewMoney(1000),
			})
			done <- err
		}()
	}
	for range workers {
		s.NoError(<-done)
	}

	f, err := s.folios.ComputeFolio(s.ctx, res.ID(), nil)
	s.Require().NoError(err)
	s.Len(f.Consumptions, workers)
	s.Equal(int64(workers*1000), f.ConsumptionsTotal.Minor())
}
