package validator

import (
	"testing"
	"time"

	"rumahstay/pkg/calendar"
	"rumahstay/pkg/logger"
	"rumahstay/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func validBooking() *model.Booking {
	checkIn := calendar.AddDays(calendar.Truncate(time.Now()), 7)
	return &model.Booking{
		PropertyID:     "68b000000000000000000001",
		GuestID:        "guest-1",
		CheckIn:        checkIn,
		CheckOut:       calendar.AddDays(checkIn, 3),
		GuestCount:     2,
		TotalAmountSen: 38000,
		PaymentStatus:  model.PaymentStatusPending,
		BookingStatus:  model.BookingStatusPending,
	}
}

func TestValidateBooking(t *testing.T) {
	v := NewBookingValidator(testLogger(), 30)

	tests := []struct {
		name        string
		mutate      func(b *model.Booking)
		wantError   bool
		description string
	}{
		{
			name:        "valid booking",
			mutate:      func(b *model.Booking) {},
			wantError:   false,
			description: "week-ahead three-night stay passes",
		},
		{
			name:        "missing property",
			mutate:      func(b *model.Booking) { b.PropertyID = "" },
			wantError:   true,
			description: "property reference is required",
		},
		{
			name:        "malformed property id",
			mutate:      func(b *model.Booking) { b.PropertyID = "not-an-oid" },
			wantError:   true,
			description: "property reference must be an ObjectID",
		},
		{
			name:        "zero guests",
			mutate:      func(b *model.Booking) { b.GuestCount = 0 },
			wantError:   true,
			description: "at least one guest is required",
		},
		{
			name: "check-out before check-in",
			mutate: func(b *model.Booking) {
				b.CheckOut = calendar.AddDays(b.CheckIn, -1)
			},
			wantError:   true,
			description: "inverted stay span is rejected",
		},
		{
			name: "check-in with time of day",
			mutate: func(b *model.Booking) {
				b.CheckIn = b.CheckIn.Add(9 * time.Hour)
			},
			wantError:   true,
			description: "dates must be truncated to UTC midnight",
		},
		{
			name: "check-in today",
			mutate: func(b *model.Booking) {
				b.CheckIn = calendar.Truncate(time.Now())
				b.CheckOut = calendar.AddDays(b.CheckIn, 2)
			},
			wantError:   true,
			description: "same-day check-in is not allowed",
		},
		{
			name: "stay too long",
			mutate: func(b *model.Booking) {
				b.CheckOut = calendar.AddDays(b.CheckIn, 31)
			},
			wantError:   true,
			description: "stays are capped at the configured night limit",
		},
		{
			name:        "unknown payment status",
			mutate:      func(b *model.Booking) { b.PaymentStatus = "invoiced" },
			wantError:   true,
			description: "payment status is a closed set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			err := v.Validate(b)
			if tt.wantError && err == nil {
				t.Errorf("expected validation error (%s), got nil", tt.description)
			}
			if !tt.wantError && err != nil {
				t.Errorf("expected no error (%s), got: %v", tt.description, err)
			}
		})
	}
}

func TestValidateBookingNoNightLimit(t *testing.T) {
	v := NewBookingValidator(testLogger(), 0)

	b := validBooking()
	b.CheckOut = calendar.AddDays(b.CheckIn, 90)

	if err := v.Validate(b); err != nil {
		t.Errorf("expected long stay to pass with no limit configured, got: %v", err)
	}
}
