package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_RecordMovement(t *testing.T) {
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	at := func(month time.Month, day, hour int) time.Time {
		return time.Date(2024, month, day, hour, 0, 0, 0, time.UTC)
	}

	t.Run("outgoing movements count per month", func(t *testing.T) {
		a := &Account{}
		a.RecordMovement(at(time.March, 3, 9), true)
		a.RecordMovement(at(time.March, 20, 9), true)

		assert.Equal(t, 2, a.MovementsInMonth(march))
		assert.Equal(t, 0, a.MovementsInMonth(march.AddDate(0, 1, 0)))

		a.RecordMovement(at(time.April, 1, 0), true)
		assert.Equal(t, 1, a.MovementsInMonth(march.AddDate(0, 1, 0)))
		assert.Equal(t, 0, a.MovementsInMonth(march))
	})

	t.Run("incoming movements only stamp the day", func(t *testing.T) {
		a := &Account{}
		a.RecordMovement(at(time.March, 15, 9), false)

		assert.Equal(t, 0, a.MovementsInMonth(march))
		assert.True(t, a.MovedBetween(at(time.March, 15, 0), at(time.March, 16, 0)))
		assert.False(t, a.MovedBetween(at(time.March, 16, 0), at(time.March, 17, 0)))
	})

	t.Run("older movement does not rewind the window", func(t *testing.T) {
		a := &Account{}
		a.RecordMovement(at(time.April, 2, 9), true)
		a.RecordMovement(at(time.March, 31, 23), true)

		require.NotNil(t, a.LastMovementAt)
		assert.True(t, at(time.April, 2, 9).Equal(*a.LastMovementAt))
		assert.Equal(t, 1, a.MovementsInMonth(march.AddDate(0, 1, 0)))
	})

	t.Run("clone does not share window state", func(t *testing.T) {
		a := &Account{}
		a.RecordMovement(at(time.March, 15, 9), true)

		cp := a.Clone()
		cp.RecordMovement(at(time.May, 1, 9), true)

		assert.True(t, at(time.March, 15, 9).Equal(*a.LastMovementAt))
		assert.Equal(t, 1, a.MovementsInMonth(march))
	})
}
