package notifications

import (
	"context"
	"fmt"

	"rumahstay/pkg/kafka"
	"rumahstay/pkg/logger"
	"rumahstay/pkg/model"
)

// Sender delivers a prepared WhatsApp link. The actual redirect integration
// lives outside this service; the default just records the link.
type Sender interface {
	Send(ctx context.Context, link string) error
}

type LogSender struct {
	Log *logger.Logger
}

func (s *LogSender) Send(ctx context.Context, link string) error {
	s.Log.Info("WhatsApp notification ready", "link", link)
	return nil
}

// Notifier consumes booking confirmation events and turns them into
// WhatsApp notifications for the host.
type Notifier struct {
	sender Sender
	log    *logger.Logger
}

func NewNotifier(sender Sender, log *logger.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		log:    log,
	}
}

// Handle implements kafka.MessageHandler.
func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	eventType := msg.GetEventType()
	if eventType != model.EventTypeBookingConfirmed {
		n.log.Debug("Skipping event", "event_type", eventType, "event_id", msg.GetEventID())
		return nil
	}

	var event model.BookingConfirmedEvent
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("failed to decode booking confirmation event: %w", err)
	}

	link, err := WhatsAppLink(event)
	if err != nil {
		// A booking without a routable contact never becomes deliverable;
		// retrying would only park it in the DLQ.
		n.log.Warn("Dropping undeliverable notification",
			"booking_id", event.Booking.ID,
			"property_id", event.Booking.PropertyID,
			"error", err,
		)
		return nil
	}

	if err := n.sender.Send(ctx, link); err != nil {
		return fmt.Errorf("failed to send WhatsApp notification: %w", err)
	}

	n.log.Info("Booking notification sent",
		"booking_id", event.Booking.ID,
		"property_id", event.Booking.PropertyID,
	)
	return nil
}
