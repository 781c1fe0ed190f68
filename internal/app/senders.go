package app

import (
	"context"

	"booking-go/internal/booking"
)

// countingSmsSender records the outcome of every SMS attempt.
type countingSmsSender struct {
	next    booking.SmsSender
	metrics *Metrics
}

func (s *countingSmsSender) Send(ctx context.Context, schedule booking.Schedule) error {
	err := s.next.Send(ctx, schedule)
	s.metrics.observeNotification("sms", err)
	return err
}

// countingMailSender records the outcome of every mail attempt.
type countingMailSender struct {
	next    booking.MailSender
	metrics *Metrics
}

func (s *countingMailSender) SendMail(ctx context.Context, schedule booking.Schedule) error {
	err := s.next.SendMail(ctx, schedule)
	s.metrics.observeNotification("mail", err)
	return err
}
