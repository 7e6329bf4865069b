package availability

import (
	"testing"
	"time"

	"rumahstay/pkg/calendar"
	"rumahstay/pkg/model"
)

func day(s string) time.Time {
	t, err := calendar.ParseKey(s)
	if err != nil {
		panic(err)
	}
	return t
}

func testIndex(t *testing.T) *Index {
	t.Helper()

	now := day("2026-03-10")
	bookings := []model.Booking{
		{
			ID:            "b1",
			CheckIn:       day("2026-03-15"),
			CheckOut:      day("2026-03-18"),
			BookingStatus: model.BookingStatusConfirmed,
		},
		{
			ID:            "b2",
			CheckIn:       day("2026-03-20"),
			CheckOut:      day("2026-03-22"),
			BookingStatus: model.BookingStatusCancelled,
		},
	}

	return NewIndex(bookings, now, 0)
}

func TestUnavailable(t *testing.T) {
	idx := testIndex(t)

	tests := []struct {
		name        string
		date        string
		unavailable bool
		description string
	}{
		{
			name:        "past date",
			date:        "2026-03-01",
			unavailable: true,
			description: "dates before today cannot be booked",
		},
		{
			name:        "today",
			date:        "2026-03-10",
			unavailable: true,
			description: "same-day check-in is not allowed",
		},
		{
			name:        "tomorrow",
			date:        "2026-03-11",
			unavailable: false,
			description: "tomorrow is the earliest bookable check-in",
		},
		{
			name:        "booked night",
			date:        "2026-03-15",
			unavailable: true,
			description: "check-in day of an occupied booking is blocked",
		},
		{
			name:        "middle of occupied stay",
			date:        "2026-03-16",
			unavailable: true,
			description: "interior nights of an occupied booking are blocked",
		},
		{
			name:        "checkout day",
			date:        "2026-03-18",
			unavailable: false,
			description: "checkout day stays open for same-day turnover",
		},
		{
			name:        "cancelled booking",
			date:        "2026-03-20",
			unavailable: false,
			description: "cancelled bookings do not block dates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.Unavailable(day(tt.date))
			if got != tt.unavailable {
				t.Errorf("Unavailable(%s) = %v, want %v (%s)", tt.date, got, tt.unavailable, tt.description)
			}
		})
	}
}

func TestUnavailableIgnoresTimeOfDay(t *testing.T) {
	idx := testIndex(t)

	noon := day("2026-03-15").Add(12 * time.Hour)
	if !idx.Unavailable(noon) {
		t.Error("expected booked day to be unavailable regardless of time of day")
	}
}

func TestBookingWindowHorizon(t *testing.T) {
	now := day("2026-03-10")
	idx := NewIndex(nil, now, 30)

	if idx.Unavailable(day("2026-04-09")) {
		t.Error("expected last day inside the booking window to be available")
	}
	if !idx.Unavailable(day("2026-04-10")) {
		t.Error("expected day beyond the booking window to be unavailable")
	}
}

func TestFirstUnavailableWithin(t *testing.T) {
	idx := testIndex(t)

	tests := []struct {
		name      string
		from      string
		to        string
		wantDay   string
		wantFound bool
	}{
		{
			name:      "range spanning occupied stay",
			from:      "2026-03-12",
			to:        "2026-03-20",
			wantDay:   "2026-03-15",
			wantFound: true,
		},
		{
			name:      "clean range",
			from:      "2026-03-11",
			to:        "2026-03-15",
			wantFound: false,
		},
		{
			name:      "adjacent days have no interior",
			from:      "2026-03-14",
			to:        "2026-03-15",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := idx.FirstUnavailableWithin(day(tt.from), day(tt.to))
			if found != tt.wantFound {
				t.Fatalf("FirstUnavailableWithin(%s, %s) found = %v, want %v", tt.from, tt.to, found, tt.wantFound)
			}
			if found && calendar.Key(got) != tt.wantDay {
				t.Errorf("FirstUnavailableWithin(%s, %s) = %s, want %s", tt.from, tt.to, calendar.Key(got), tt.wantDay)
			}
		})
	}
}

func TestMonthGrid(t *testing.T) {
	idx := testIndex(t)

	grid := idx.MonthGrid(day("2026-03-01"))

	if len(grid)%7 != 0 {
		t.Fatalf("expected grid length to be a multiple of 7, got %d", len(grid))
	}
	// March 2026 starts on a Sunday and spans five grid rows.
	if len(grid) != 35 {
		t.Errorf("expected 35 cells for March 2026, got %d", len(grid))
	}
	if grid[0].Date != "2026-03-01" {
		t.Errorf("expected grid to start on 2026-03-01, got %s", grid[0].Date)
	}
	if !grid[0].InMonth {
		t.Error("expected first cell of March grid to be in month")
	}
	if grid[len(grid)-1].Date != "2026-04-04" {
		t.Errorf("expected grid to end on 2026-04-04, got %s", grid[len(grid)-1].Date)
	}
	if grid[len(grid)-1].InMonth {
		t.Error("expected trailing April cell to be out of month")
	}

	for _, cell := range grid {
		if cell.Date == "2026-03-16" && !cell.Unavailable {
			t.Error("expected booked night to render as unavailable")
		}
		if cell.Date == "2026-03-18" && cell.Unavailable {
			t.Error("expected checkout day to render as available")
		}
	}
}
