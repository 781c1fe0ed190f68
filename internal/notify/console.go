package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"booking-go/internal/booking"
)

// ConsoleSmsSender prints a line per SMS instead of sending one.
type ConsoleSmsSender struct {
	w io.Writer
}

// NewConsoleSmsSender writes to w, or to stdout when w is nil.
func NewConsoleSmsSender(w io.Writer) *ConsoleSmsSender {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleSmsSender{w: w}
}

func (s *ConsoleSmsSender) Send(_ context.Context, schedule booking.Schedule) error {
	_, err := fmt.Fprintf(s.w, "Sending SMS to %s for schedule at %s\n",
		schedule.Customer().PhoneNumber(), schedule.DateTime().Format(slotLayout))
	return err
}

// ConsoleMailSender prints a line per email instead of sending one.
type ConsoleMailSender struct {
	w io.Writer
}

// NewConsoleMailSender writes to w, or to stdout when w is nil.
func NewConsoleMailSender(w io.Writer) *ConsoleMailSender {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleMailSender{w: w}
}

func (s *ConsoleMailSender) SendMail(_ context.Context, schedule booking.Schedule) error {
	if !schedule.Customer().HasEmail() {
		return nil
	}
	_, err := fmt.Fprintf(s.w, "Sending email to %s for schedule at %s\n",
		schedule.Customer().Email(), schedule.DateTime().Format(slotLayout))
	return err
}

var (
	_ booking.SmsSender  = (*ConsoleSmsSender)(nil)
	_ booking.MailSender = (*ConsoleMailSender)(nil)
)
