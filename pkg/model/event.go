package model

const (
	EventTypeBookingConfirmed = "booking.confirmed"

	TopicBookingEvents    = "booking-events"
	TopicBookingEventsDLQ = "booking-events-dlq"
)

// BookingConfirmedEvent is published after a booking is created. It
// carries enough property context for the notifier to compose a host
// message without calling back into the catalog service.
type BookingConfirmedEvent struct {
	Booking        Booking `json:"booking"`
	PropertyTitle  string  `json:"property_title"`
	PropertyCity   string  `json:"property_city"`
	WhatsAppNumber string  `json:"whatsapp_number"`
}
