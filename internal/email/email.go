package email

import (
	"context"
	"fmt"

	"github.com/mkrivosheev/aeroreserve/internal/kafka"
)

// Sender is the notification sink for booking lifecycle events. Delivery is
// stubbed to stdout; the worker owns the consume loop.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify user %d: %s for booking %d (flight %d seat %s)\n",
		event.UserID, event.Type, event.BookingNumber, event.FlightNumber, event.SeatNumber)
	return nil
}
