package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTruncateIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, 3, 15, 23, 59, 59, 999999999, time.UTC)
	early := time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)

	if !SameDay(late, early) {
		t.Errorf("expected %v and %v to be the same day", late, early)
	}
	if Before(late, early) || After(late, early) {
		t.Errorf("day comparisons must ignore time of day")
	}
}

func TestTruncateNormalizesZone(t *testing.T) {
	kl := time.FixedZone("MYT", 8*60*60)
	local := time.Date(2026, 3, 15, 6, 0, 0, 0, kl)

	got := Truncate(local)
	want := date(2026, 3, 14) // 06:00 MYT is still March 14 in UTC
	if !got.Equal(want) {
		t.Errorf("Truncate(%v) = %v, want %v", local, got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"three nights", date(2026, 3, 14), date(2026, 3, 17), 3},
		{"same day", date(2026, 3, 14), date(2026, 3, 14), 0},
		{"negative when reversed", date(2026, 3, 17), date(2026, 3, 14), -3},
		{"across month boundary", date(2026, 3, 30), date(2026, 4, 2), 3},
		{"across leap day", date(2028, 2, 28), date(2028, 3, 1), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	got := AddDays(time.Date(2026, 3, 31, 18, 30, 0, 0, time.UTC), 1)
	if !got.Equal(date(2026, 4, 1)) {
		t.Errorf("AddDays = %v, want %v", got, date(2026, 4, 1))
	}
}

func TestMonthBoundaries(t *testing.T) {
	mid := date(2026, 2, 14)

	if got := StartOfMonth(mid); !got.Equal(date(2026, 2, 1)) {
		t.Errorf("StartOfMonth = %v", got)
	}
	if got := EndOfMonth(mid); !got.Equal(date(2026, 2, 28)) {
		t.Errorf("EndOfMonth = %v", got)
	}
}

func TestGridBoundaries(t *testing.T) {
	// March 2026 starts on a Sunday and ends on a Tuesday.
	march := date(2026, 3, 10)

	if got := StartOfGrid(march); !got.Equal(date(2026, 3, 1)) {
		t.Errorf("StartOfGrid = %v, want 2026-03-01", got)
	}
	if got := EndOfGrid(march); !got.Equal(date(2026, 4, 4)) {
		t.Errorf("EndOfGrid = %v, want 2026-04-04", got)
	}

	// February 2026 starts on a Sunday and ends on a Saturday, so the
	// grid is exactly the month.
	feb := date(2026, 2, 5)
	if got := StartOfGrid(feb); !got.Equal(date(2026, 2, 1)) {
		t.Errorf("StartOfGrid = %v, want 2026-02-01", got)
	}
	if got := EndOfGrid(feb); !got.Equal(date(2026, 2, 28)) {
		t.Errorf("EndOfGrid = %v, want 2026-02-28", got)
	}
}

func TestGridDays(t *testing.T) {
	days := GridDays(date(2026, 3, 1))

	if len(days)%7 != 0 {
		t.Errorf("grid length %d is not a whole number of weeks", len(days))
	}
	if days[0].Weekday() != time.Sunday {
		t.Errorf("grid starts on %v, want Sunday", days[0].Weekday())
	}
	if days[len(days)-1].Weekday() != time.Saturday {
		t.Errorf("grid ends on %v, want Saturday", days[len(days)-1].Weekday())
	}
}

func TestKeyRoundTrip(t *testing.T) {
	d := date(2026, 3, 15)

	key := Key(d)
	if key != "2026-03-15" {
		t.Errorf("Key = %q, want 2026-03-15", key)
	}

	parsed, err := ParseKey(key)
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}
	if !parsed.Equal(d) {
		t.Errorf("round trip gave %v, want %v", parsed, d)
	}

	if _, err := ParseKey("15/03/2026"); err == nil {
		t.Errorf("expected error for malformed key")
	}
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2026-03")
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}
	if !got.Equal(date(2026, 3, 1)) {
		t.Errorf("ParseMonth = %v, want 2026-03-01", got)
	}

	if _, err := ParseMonth("March 2026"); err == nil {
		t.Errorf("expected error for malformed month")
	}
}
