package notify

import (
	"context"
	"fmt"
	"io"

	"booking-go/internal/booking"
	"booking-go/internal/config"
)

// NewSmsSenderFromConfig creates an SmsSender based on the sms config type.
// Console output goes to out.
func NewSmsSenderFromConfig(ctx context.Context, cfg config.SMSConfig, out io.Writer) (booking.SmsSender, error) {
	switch cfg.Type {
	case "console", "":
		return NewConsoleSmsSender(out), nil
	case "noop":
		return NewNoopSender(), nil
	case "webhook":
		if cfg.WebhookURL == "" {
			return nil, fmt.Errorf("webhook sms sender requires webhook_url to be set")
		}
		return NewWebhookSmsSender(cfg.WebhookURL, cfg.WebhookToken, nil), nil
	case "sns":
		return NewSNSSmsSender(ctx, SNSOptions{
			Region:          cfg.SNSRegion,
			SenderID:        cfg.SNSSenderID,
			AccessKeyID:     cfg.SNSAccessKeyID,
			SecretAccessKey: cfg.SNSSecretAccessKey,
		}, nil)
	default:
		return nil, fmt.Errorf("unknown sms type: %s", cfg.Type)
	}
}

// NewMailSenderFromConfig creates a MailSender based on the mail config type.
func NewMailSenderFromConfig(cfg config.MailConfig, out io.Writer) (booking.MailSender, error) {
	switch cfg.Type {
	case "console", "":
		return NewConsoleMailSender(out), nil
	case "noop":
		return NewNoopSender(), nil
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("smtp mail sender requires smtp_host to be set")
		}
		port := cfg.SMTPPort
		if port == 0 {
			port = 25
		}
		return NewSMTPMailSender(cfg.SMTPHost, port, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword), nil
	default:
		return nil, fmt.Errorf("unknown mail type: %s", cfg.Type)
	}
}
