package analytics

import "github.com/shopspring/decimal"

// GrowthFromZero is reported when the previous period had no views and the
// current one has some. It is a capped signal, not a real percentage.
const GrowthFromZero = 100.0

// VelocitySnapshot is the period-over-period comparison of page views.
type VelocitySnapshot struct {
	CurrentPeriodCount  int64   `json:"current_period_count"`
	PreviousPeriodCount int64   `json:"previous_period_count"`
	VelocityPercent     float64 `json:"velocity_percent"`
}

// NewVelocitySnapshot bundles two window counts with their velocity.
func NewVelocitySnapshot(current, previous int64) VelocitySnapshot {
	return VelocitySnapshot{
		CurrentPeriodCount:  current,
		PreviousPeriodCount: previous,
		VelocityPercent:     Velocity(current, previous),
	}
}

// Velocity returns the percent change from previous to current.
//
//	previous > 0: (current - previous) / previous * 100
//	current  > 0: GrowthFromZero
//	otherwise:    0
func Velocity(current, previous int64) float64 {
	if previous > 0 {
		return float64(current-previous) / float64(previous) * 100
	}
	if current > 0 {
		return GrowthFromZero
	}
	return 0
}

// ConversionRate returns clicks as a percentage of views rounded to one
// decimal place, or 0 when there are no views.
func ConversionRate(views, clicks int64) float64 {
	if views <= 0 {
		return 0
	}
	rate := decimal.NewFromInt(clicks).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(views)).
		Round(1)
	return rate.InexactFloat64()
}
