package pricing

import (
	"testing"
	"time"

	"rumahstay/pkg/calendar"
)

func day(s string) time.Time {
	t, err := calendar.ParseKey(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestQuote(t *testing.T) {
	calc := NewCalculator(10, 5000)

	tests := []struct {
		name        string
		checkIn     string
		checkOut    string
		rateSen     int64
		want        Breakdown
		description string
	}{
		{
			name:     "three nights at RM100",
			checkIn:  "2026-05-10",
			checkOut: "2026-05-13",
			rateSen:  10000,
			want: Breakdown{
				Nights:         3,
				BaseSen:        30000,
				ServiceFeeSen:  3000,
				CleaningFeeSen: 5000,
				TotalSen:       38000,
			},
			description: "RM300 base, RM30 service fee, RM50 cleaning fee, RM380 total",
		},
		{
			name:     "single night",
			checkIn:  "2026-05-10",
			checkOut: "2026-05-11",
			rateSen:  12345,
			want: Breakdown{
				Nights:         1,
				BaseSen:        12345,
				ServiceFeeSen:  1235,
				CleaningFeeSen: 5000,
				TotalSen:       18580,
			},
			description: "service fee of 1234.5 sen rounds half up to 1235",
		},
		{
			name:     "rate with exact fee",
			checkIn:  "2026-05-10",
			checkOut: "2026-05-12",
			rateSen:  25000,
			want: Breakdown{
				Nights:         2,
				BaseSen:        50000,
				ServiceFeeSen:  5000,
				CleaningFeeSen: 5000,
				TotalSen:       60000,
			},
			description: "no rounding needed when the fee divides evenly",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Quote(day(tt.checkIn), day(tt.checkOut), true, tt.rateSen)
			if got != tt.want {
				t.Errorf("Quote() = %+v, want %+v (%s)", got, tt.want, tt.description)
			}
		})
	}
}

func TestQuoteIncompleteSelection(t *testing.T) {
	calc := NewCalculator(10, 5000)

	got := calc.Quote(time.Time{}, time.Time{}, false, 10000)
	if got != (Breakdown{}) {
		t.Errorf("expected zero breakdown for incomplete selection, got %+v", got)
	}
}

func TestQuoteRejectsEmptySpan(t *testing.T) {
	calc := NewCalculator(10, 5000)

	got := calc.Quote(day("2026-05-10"), day("2026-05-10"), true, 10000)
	if got != (Breakdown{}) {
		t.Errorf("expected zero breakdown for zero-night span, got %+v", got)
	}
}

func TestQuoteTotalMonotonicInCheckOut(t *testing.T) {
	calc := NewCalculator(10, 5000)

	checkIn := day("2026-05-10")
	var prev int64
	for nights := 1; nights <= 14; nights++ {
		checkOut := calendar.AddDays(checkIn, nights)
		got := calc.Quote(checkIn, checkOut, true, 9900)
		if got.TotalSen <= prev {
			t.Fatalf("total %d for %d nights not greater than %d for %d nights", got.TotalSen, nights, prev, nights-1)
		}
		prev = got.TotalSen
	}
}

func TestQuoteComponentsSumToTotal(t *testing.T) {
	calc := NewCalculator(10, 5000)

	got := calc.Quote(day("2026-05-10"), day("2026-05-17"), true, 11111)
	sum := got.BaseSen + got.ServiceFeeSen + got.CleaningFeeSen
	if got.TotalSen != sum {
		t.Errorf("total %d does not equal sum of components %d", got.TotalSen, sum)
	}
}
