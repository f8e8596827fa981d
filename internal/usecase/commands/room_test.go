//go:build unit

package commands_test

import (
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/room"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/commands"

	"github.com/google/uuid"
)

func (s *ledgerSuite) TestRoomCatalog() {
	s.Run("duplicate number", func() {
		_, err := s.catalog.Register(s.ctx, commands.RegisterRoomInput{
			Number:   "101",
			Type:     room.TypeDouble,
			Rate:     pricing.NewMoney(90000),
			Capacity: 2,
		})
		s.ErrorIs(err, commands.ErrDuplicateRoomNumber)
		s.ErrorIs(err, errs.ErrValidation)
	})

	s.Run("invalid input", func() {
		_, err := s.catalog.Register(s.ctx, commands.RegisterRoomInput{
			Number:   "102",
			Type:     room.TypeDouble,
			Rate:     pricing.NewMoney(-1),
			Capacity: 2,
		})
		s.ErrorIs(err, room.ErrNegativeRate)
	})

	s.Run("list is ordered by number", func() {
		_, err := s.catalog.Register(s.ctx, commands.RegisterRoomInput{
			Number:   "099",
			Type:     room.TypeSimple,
			Rate:     pricing.NewMoney(60000),
			Capacity: 1,
		})
		s.Require().NoError(err)

		rooms, err := s.catalog.List(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(rooms, 2)
		s.Equal("099", rooms[0].Number())
		s.Equal("101", rooms[1].Number())
	})

	s.Run("status update", func() {
		rm, err := s.catalog.UpdateStatus(s.ctx, s.room101.ID(), room.StatusMaintenance)
		s.Require().NoError(err)
		s.Equal(room.StatusMaintenance, rm.Status())

		_, err = s.catalog.UpdateStatus(s.ctx, s.room101.ID(), room.Status("BROKEN"))
		s.ErrorIs(err, room.ErrInvalidStatus)

		_, err = s.catalog.UpdateStatus(s.ctx, uuid.New(), room.StatusAvailable)
		s.ErrorIs(err, errs.ErrNotFound)
	})

	s.Run("maintenance does not block booking", func() {
		_, err := s.ledger.CreateReservation(s.ctx, s.input("2026-02-01", "2026-02-03", 1))
		s.NoError(err)
	})
}
