//go:build unit

package room_test

import (
	"strings"
	"testing"
	"time"

	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/domain/room"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	now := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	t.Run("basic success case", func(t *testing.T) {
		rm, err := room.NewRoom(" 101 ", room.TypeSuite, pricing.NewMoney(150000), 2, now)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, rm.ID())
		assert.Equal(t, "101", rm.Number())
		assert.Equal(t, room.StatusAvailable, rm.Status())
		assert.True(t, rm.Fits(2))
		assert.False(t, rm.Fits(3))
		assert.False(t, rm.Fits(0))
	})

	testCases := []struct {
		name     string
		number   string
		roomType room.Type
		rate     int64
		capacity int
		errIs    error
	}{
		{name: "empty number", number: " ", roomType: room.TypeSimple, rate: 1, capacity: 1, errIs: room.ErrEmptyNumber},
		{name: "number too long", number: strings.Repeat("9", room.MaxNumberLength+1), roomType: room.TypeSimple, rate: 1, capacity: 1, errIs: room.ErrNumberTooLong},
		{name: "unknown type", number: "1", roomType: room.Type("PENTHOUSE"), rate: 1, capacity: 1, errIs: room.ErrInvalidType},
		{name: "negative rate", number: "1", roomType: room.TypeDouble, rate: -1, capacity: 1, errIs: room.ErrNegativeRate},
		{name: "zero capacity", number: "1", roomType: room.TypeFamily, rate: 1, capacity: 0, errIs: room.ErrInvalidCapacity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := room.NewRoom(tc.number, tc.roomType, pricing.NewMoney(tc.rate), tc.capacity, now)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestRoom_ChangeStatus(t *testing.T) {
	now := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	rm, err := room.NewRoom("101", room.TypeSuite, pricing.NewMoney(150000), 2, now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	require.NoError(t, rm.ChangeStatus(room.StatusMaintenance, later))
	assert.Equal(t, room.StatusMaintenance, rm.Status())
	assert.Equal(t, later, rm.UpdatedAt())

	assert.ErrorIs(t, rm.ChangeStatus(room.Status("BROKEN"), later), room.ErrInvalidStatus)
}
