package utils

import (
	"math"
	"time"

	"ev-rental-backend/internal/domain"
)

// Quote is the cost estimate produced at booking time. Any partial day rounds
// up to a full billable day, and the deposit is 150% of the estimated cost;
// the surplus over actual cost is refunded after return.
type Quote struct {
	DurationHours      float64 `json:"duration_hours"`
	BillableDays       int64   `json:"billable_days"`
	EstimatedCostCents int64   `json:"estimated_cost_cents"`
	DepositCents       int64   `json:"deposit_cents"`
}

// RentalQuote converts a requested start/end pair into billable days,
// estimated cost and required deposit. Returns domain.ErrInvalidDuration when
// end is not strictly after start; callers must block order submission on
// that condition, which also makes zero billable days unreachable.
func RentalQuote(start, end time.Time, basePriceCents int64) (Quote, error) {
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		return Quote{}, domain.ErrInvalidDuration
	}

	days := int64(math.Ceil(hours / 24))
	estimated := days * basePriceCents

	return Quote{
		DurationHours:      hours,
		BillableDays:       days,
		EstimatedCostCents: estimated,
		DepositCents:       estimated + estimated/2,
	}, nil
}

// LateFee computes the late-return charge: ceil of the hours past the
// scheduled end times the configured hourly rate, zero for any return at or
// before the scheduled end.
func LateFee(scheduledEnd, actualReturn time.Time, ratePerHourCents int64) int64 {
	late := actualReturn.Sub(scheduledEnd).Hours()
	if late <= 0 {
		return 0
	}
	return int64(math.Ceil(late)) * ratePerHourCents
}
