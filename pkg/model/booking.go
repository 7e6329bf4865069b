package model

import (
	"time"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"

	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a stay reservation. CheckIn and CheckOut are day-granularity
// values (UTC midnight); the span is half-open, the check-out day itself is
// not occupied.
type Booking struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PropertyID     string    `json:"property_id" bson:"property_id" validate:"required,mongodb"`
	GuestID        string    `json:"guest_id" bson:"guest_id" validate:"required"`
	CheckIn        time.Time `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut       time.Time `json:"check_out" bson:"check_out" validate:"required,gtfield=CheckIn"`
	GuestCount     int       `json:"guest_count" bson:"guest_count" validate:"required,min=1"`
	TotalAmountSen int64     `json:"total_amount_sen" bson:"total_amount_sen" validate:"min=0"`
	PaymentStatus  string    `json:"payment_status" bson:"payment_status" validate:"required,oneof=pending paid refunded"`
	BookingStatus  string    `json:"booking_status" bson:"booking_status" validate:"required,oneof=pending confirmed cancelled"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Occupied reports whether the booking still blocks calendar days.
func (b *Booking) Occupied() bool {
	return b.BookingStatus == BookingStatusPending || b.BookingStatus == BookingStatusConfirmed
}
