package booking

import "context"

// SmsSender delivers the booking confirmation text message.
// The scheduler calls it once for every accepted schedule.
type SmsSender interface {
	Send(ctx context.Context, schedule Schedule) error
}

// MailSender delivers the booking confirmation email.
// The scheduler only calls it when the customer has an email address, but
// implementations must still tolerate an empty one.
type MailSender interface {
	SendMail(ctx context.Context, schedule Schedule) error
}
