package pricing

import (
	"time"

	"rumahstay/pkg/calendar"
)

// Breakdown is a nightly-rate quote. All amounts are in sen. Each
// component is rounded to a whole sen independently and the total is the
// sum of the rounded components.
type Breakdown struct {
	Nights         int   `json:"nights"`
	BaseSen        int64 `json:"base_sen"`
	ServiceFeeSen  int64 `json:"service_fee_sen"`
	CleaningFeeSen int64 `json:"cleaning_fee_sen"`
	TotalSen       int64 `json:"total_sen"`
}

// Calculator computes deterministic stay quotes.
type Calculator struct {
	serviceFeePercent int
	cleaningFeeSen    int64
}

func NewCalculator(serviceFeePercent int, cleaningFeeSen int64) *Calculator {
	return &Calculator{
		serviceFeePercent: serviceFeePercent,
		cleaningFeeSen:    cleaningFeeSen,
	}
}

// Quote prices the half-open stay [checkIn, checkOut) at nightlyRateSen.
// An incomplete selection yields a zero breakdown, never an error.
func (c *Calculator) Quote(checkIn, checkOut time.Time, complete bool, nightlyRateSen int64) Breakdown {
	if !complete {
		return Breakdown{}
	}

	nights := calendar.DaysBetween(checkIn, checkOut)
	if nights < 1 {
		return Breakdown{}
	}

	base := int64(nights) * nightlyRateSen
	serviceFee := roundHalfUp(base*int64(c.serviceFeePercent), 100)

	return Breakdown{
		Nights:         nights,
		BaseSen:        base,
		ServiceFeeSen:  serviceFee,
		CleaningFeeSen: c.cleaningFeeSen,
		TotalSen:       base + serviceFee + c.cleaningFeeSen,
	}
}

// roundHalfUp divides numerator by denominator rounding half up.
// Amounts are never negative here.
func roundHalfUp(numerator, denominator int64) int64 {
	return (numerator + denominator/2) / denominator
}
