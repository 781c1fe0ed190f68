package notify

import (
	"context"

	"booking-go/internal/booking"
)

// NoopSender satisfies both sender interfaces and does nothing.
type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (*NoopSender) Send(context.Context, booking.Schedule) error     { return nil }
func (*NoopSender) SendMail(context.Context, booking.Schedule) error { return nil }

var (
	_ booking.SmsSender  = (*NoopSender)(nil)
	_ booking.MailSender = (*NoopSender)(nil)
)
