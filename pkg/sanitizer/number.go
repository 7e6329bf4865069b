package sanitizer

const (
	MinGuestCount = 1

	MaxGuestCount = 50
)

func NormalizeGuestCount(guests int) int {
	if guests < MinGuestCount {
		return MinGuestCount
	}
	if guests > MaxGuestCount {
		return MaxGuestCount
	}
	return guests
}

// NormalizePriceRange orders the bounds and floors negatives at zero. A zero
// max means unbounded.
func NormalizePriceRange(minSen, maxSen int64) (int64, int64) {
	if minSen < 0 {
		minSen = 0
	}
	if maxSen < 0 {
		maxSen = 0
	}
	if maxSen != 0 && maxSen < minSen {
		minSen, maxSen = maxSen, minSen
	}
	return minSen, maxSen
}
