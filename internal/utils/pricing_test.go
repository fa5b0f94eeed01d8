package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/utils"
)

func TestRentalQuote(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("partial day rounds up", func(t *testing.T) {
		// 26 hours at 300000/day bills as 2 days.
		q, err := utils.RentalQuote(start, start.Add(26*time.Hour), 300000)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), q.BillableDays)
		assert.Equal(t, int64(600000), q.EstimatedCostCents)
		assert.Equal(t, int64(900000), q.DepositCents)
		assert.InDelta(t, 26.0, q.DurationHours, 0.001)
	})

	t.Run("exactly 24 hours is one day", func(t *testing.T) {
		q, err := utils.RentalQuote(start, start.Add(24*time.Hour), 300000)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), q.BillableDays)
		assert.Equal(t, int64(300000), q.EstimatedCostCents)
		assert.Equal(t, int64(450000), q.DepositCents)
	})

	t.Run("one minute over 24 hours is two days", func(t *testing.T) {
		q, err := utils.RentalQuote(start, start.Add(24*time.Hour+time.Minute), 300000)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), q.BillableDays)
	})

	t.Run("short rental bills one full day", func(t *testing.T) {
		q, err := utils.RentalQuote(start, start.Add(30*time.Minute), 300000)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), q.BillableDays)
	})

	t.Run("end equal to start is invalid", func(t *testing.T) {
		_, err := utils.RentalQuote(start, start, 300000)
		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	})

	t.Run("end before start is invalid", func(t *testing.T) {
		_, err := utils.RentalQuote(start, start.Add(-time.Hour), 300000)
		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	})
}

func TestLateFee(t *testing.T) {
	end := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)

	t.Run("partial hour rounds up", func(t *testing.T) {
		// 3.5 hours late at 50000/hour charges 4 hours.
		fee := utils.LateFee(end, end.Add(3*time.Hour+30*time.Minute), 50000)
		assert.Equal(t, int64(200000), fee)
	})

	t.Run("on time has no fee", func(t *testing.T) {
		assert.Equal(t, int64(0), utils.LateFee(end, end, 50000))
	})

	t.Run("early return has no fee", func(t *testing.T) {
		assert.Equal(t, int64(0), utils.LateFee(end, end.Add(-2*time.Hour), 50000))
	})

	t.Run("exact hours late", func(t *testing.T) {
		fee := utils.LateFee(end, end.Add(2*time.Hour), 50000)
		assert.Equal(t, int64(100000), fee)
	})
}
