package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"booking-go/internal/booking"
)

// ErrWebhookNotConfigured is returned when the webhook URL is empty.
var ErrWebhookNotConfigured = errors.New("sms webhook url not configured")

type webhookPayload struct {
	ID   string `json:"id"`
	To   string `json:"to"`
	Body string `json:"body"`
}

// WebhookSmsSender posts the confirmation as JSON to an SMS gateway.
// Every message carries a fresh ID the gateway can use to drop duplicates.
type WebhookSmsSender struct {
	url   string
	token string
	ids   booking.IDGenerator
	http  *http.Client
}

// NewWebhookSmsSender creates a sender posting to url. A non-empty token is
// sent as a bearer token. A nil ids uses random UUIDs.
func NewWebhookSmsSender(url, token string, ids booking.IDGenerator) *WebhookSmsSender {
	if ids == nil {
		ids = booking.UUIDGenerator{}
	}
	return &WebhookSmsSender{
		url:   strings.TrimSpace(url),
		token: strings.TrimSpace(token),
		ids:   ids,
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (s *WebhookSmsSender) Send(ctx context.Context, schedule booking.Schedule) error {
	if s.url == "" {
		return ErrWebhookNotConfigured
	}
	raw, err := json.Marshal(webhookPayload{
		ID:   s.ids.New(),
		To:   schedule.Customer().PhoneNumber(),
		Body: SmsBody(schedule),
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("sms webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms webhook returned %s", resp.Status)
	}
	return nil
}

var _ booking.SmsSender = (*WebhookSmsSender)(nil)
