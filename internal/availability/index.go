package availability

import (
	"time"

	"rumahstay/pkg/calendar"
	"rumahstay/pkg/model"
)

// Index is a read-only snapshot of the days a property cannot be booked.
// It is built once per selection session and never mutated afterwards.
type Index struct {
	today   time.Time
	horizon time.Time // zero means no booking window limit
	booked  map[string]struct{}
}

// NewIndex flattens the occupied bookings into a day set. Each booking
// blocks [checkIn, checkOut): the checkout day itself stays available so
// a departing and an arriving guest can share it.
func NewIndex(bookings []model.Booking, now time.Time, maxAdvanceDays int) *Index {
	idx := &Index{
		today:  calendar.Truncate(now),
		booked: make(map[string]struct{}),
	}

	if maxAdvanceDays > 0 {
		idx.horizon = calendar.AddDays(idx.today, maxAdvanceDays)
	}

	for _, booking := range bookings {
		if !booking.Occupied() {
			continue
		}
		checkOut := calendar.Truncate(booking.CheckOut)
		for d := calendar.Truncate(booking.CheckIn); calendar.Before(d, checkOut); d = calendar.AddDays(d, 1) {
			idx.booked[calendar.Key(d)] = struct{}{}
		}
	}

	return idx
}

// Unavailable reports whether d cannot be chosen. Today counts as past,
// so the earliest bookable check-in is tomorrow.
func (i *Index) Unavailable(d time.Time) bool {
	day := calendar.Truncate(d)
	if !day.After(i.today) {
		return true
	}
	if !i.horizon.IsZero() && day.After(i.horizon) {
		return true
	}
	_, booked := i.booked[calendar.Key(day)]
	return booked
}

// FirstUnavailableWithin scans the days strictly between a and b and
// returns the first blocked one. Both endpoints are assumed to have been
// checked by the caller.
func (i *Index) FirstUnavailableWithin(a, b time.Time) (time.Time, bool) {
	end := calendar.Truncate(b)
	for d := calendar.AddDays(calendar.Truncate(a), 1); calendar.Before(d, end); d = calendar.AddDays(d, 1) {
		if i.Unavailable(d) {
			return d, true
		}
	}
	return time.Time{}, false
}

// GridDay is one cell of the month calendar rendered for clients.
type GridDay struct {
	Date        string `json:"date"`
	InMonth     bool   `json:"in_month"`
	Unavailable bool   `json:"unavailable"`
}

// MonthGrid renders the calendar grid for the month containing t. The
// grid always starts on a Sunday and ends on a Saturday, so leading and
// trailing cells may belong to the neighbouring months.
func (i *Index) MonthGrid(t time.Time) []GridDay {
	monthStart := calendar.StartOfMonth(t)
	days := calendar.GridDays(t)

	grid := make([]GridDay, 0, len(days))
	for _, d := range days {
		grid = append(grid, GridDay{
			Date:        calendar.Key(d),
			InMonth:     d.Month() == monthStart.Month() && d.Year() == monthStart.Year(),
			Unavailable: i.Unavailable(d),
		})
	}
	return grid
}
