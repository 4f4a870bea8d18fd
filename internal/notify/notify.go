package notify

import (
	"context"

	"github.com/Domenick1991/studiobooking/internal/kafka"
	"github.com/rs/zerolog/log"
)

// Notifier records booking changes for the people running the studios.
// Currently a structured-log sink; a mail or chat transport slots in behind
// the same method.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Notify(ctx context.Context, event kafka.BookingEvent) error {
	log.Info().
		Str("type", event.Type).
		Str("booking_id", event.BookingID).
		Str("studio", event.Studio).
		Str("date", event.Date).
		Msg("booking change")
	return nil
}
