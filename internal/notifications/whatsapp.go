package notifications

import (
	"fmt"
	"net/url"
	"strings"

	"rumahstay/pkg/calendar"
	"rumahstay/pkg/model"
	"rumahstay/pkg/sanitizer"
)

// WhatsAppLink builds a wa.me deep link that opens a chat with the host,
// prefilled with the booking confirmation message.
func WhatsAppLink(event model.BookingConfirmedEvent) (string, error) {
	number := sanitizer.NormalizePhone(event.WhatsAppNumber)
	if number == "" {
		return "", fmt.Errorf("no routable WhatsApp number for property %s", event.Booking.PropertyID)
	}

	// wa.me wants the E.164 number without the leading plus.
	number = strings.TrimPrefix(number, "+")

	message := fmt.Sprintf(
		"Booking confirmed for %s, %s. Stay %s to %s, %d guest(s). Total %s.",
		event.PropertyTitle,
		event.PropertyCity,
		calendar.Key(event.Booking.CheckIn),
		calendar.Key(event.Booking.CheckOut),
		event.Booking.GuestCount,
		FormatRM(event.Booking.TotalAmountSen),
	)

	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message)), nil
}

// FormatRM renders a sen amount as ringgit with two decimal places.
func FormatRM(sen int64) string {
	return fmt.Sprintf("RM%d.%02d", sen/100, sen%100)
}
