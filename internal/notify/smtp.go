package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"booking-go/internal/booking"
)

const defaultFrom = "no-reply@booking.local"

// sendMailFunc matches smtp.SendMail.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailSender sends the confirmation email through an SMTP relay.
type SMTPMailSender struct {
	addr     string
	from     string
	auth     smtp.Auth
	sendMail sendMailFunc
}

// NewSMTPMailSender creates a sender for host:port. PLAIN auth is used when a
// username is given; otherwise the relay must accept unauthenticated mail.
func NewSMTPMailSender(host string, port int, from, username, password string) *SMTPMailSender {
	host = strings.TrimSpace(host)
	from = strings.TrimSpace(from)
	if from == "" {
		from = defaultFrom
	}
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailSender{
		addr:     net.JoinHostPort(host, fmt.Sprint(port)),
		from:     from,
		auth:     auth,
		sendMail: smtp.SendMail,
	}
}

// SendMail does nothing when the customer has no email address.
// net/smtp has no context support, so ctx is only checked before dialing.
func (s *SMTPMailSender) SendMail(ctx context.Context, schedule booking.Schedule) error {
	to := schedule.Customer().Email()
	if to == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := buildMessage(s.from, to, MailSubject(schedule), MailBody(schedule))
	if err := s.sendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) string {
	// Minimal RFC 5322 message.
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}

var _ booking.MailSender = (*SMTPMailSender)(nil)
