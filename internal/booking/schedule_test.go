package booking_test

import (
	"errors"
	"testing"
	"time"

	"booking-go/internal/booking"
)

func TestNewCustomer(t *testing.T) {
	t.Run("trims fields", func(t *testing.T) {
		c, err := booking.NewCustomer("  Fake Name ", " 010-1234-5678", " test@example.com ")
		if err != nil {
			t.Fatalf("NewCustomer() error = %v", err)
		}
		if c.Name() != "Fake Name" || c.PhoneNumber() != "010-1234-5678" || c.Email() != "test@example.com" {
			t.Errorf("NewCustomer() = %q/%q/%q", c.Name(), c.PhoneNumber(), c.Email())
		}
		if !c.HasEmail() {
			t.Error("HasEmail() = false, want true")
		}
	})

	t.Run("requires phone number", func(t *testing.T) {
		_, err := booking.NewCustomer("Fake Name", "  ", "")
		if !errors.Is(err, booking.ErrInvalidCustomer) {
			t.Errorf("NewCustomer() error = %v, want ErrInvalidCustomer", err)
		}
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		tests := []struct {
			name  string
			email string
		}{
			{"no at sign", "test.example.com"},
			{"header injection", "test@example.com\r\nBcc: victim@example.com"},
			{"embedded newline", "test@exa\nmple.com"},
			{"display name", "Fake Name <test@example.com>"},
			{"two addresses", "a@example.com, b@example.com"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := booking.NewCustomer("Fake Name", "010-1234-5678", tt.email)
				if !errors.Is(err, booking.ErrInvalidCustomer) {
					t.Errorf("NewCustomer(%q) error = %v, want ErrInvalidCustomer", tt.email, err)
				}
			})
		}
	})

	t.Run("blank email means none", func(t *testing.T) {
		c, err := booking.NewCustomer("Fake Name", "010-1234-5678", "   ")
		if err != nil {
			t.Fatalf("NewCustomer() error = %v", err)
		}
		if c.HasEmail() {
			t.Error("HasEmail() = true for blank email")
		}
	})
}

func TestNewSchedule(t *testing.T) {
	c, _ := booking.NewCustomer("Fake Name", "010-1234-5678", "")
	when := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		people   int
		customer booking.Customer
		wantErr  bool
	}{
		{"valid", 2, c, false},
		{"zero people", 0, c, true},
		{"negative people", -1, c, true},
		{"zero customer", 1, booking.Customer{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := booking.NewSchedule(when, tt.people, tt.customer)
			if tt.wantErr {
				if !errors.Is(err, booking.ErrInvalidSchedule) {
					t.Errorf("NewSchedule() error = %v, want ErrInvalidSchedule", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSchedule() error = %v", err)
			}
			if s.IsZero() {
				t.Error("IsZero() = true for valid schedule")
			}
		})
	}
}

func TestSchedule_Equal(t *testing.T) {
	c, _ := booking.NewCustomer("Fake Name", "010-1234-5678", "")
	utc := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)
	a, _ := booking.NewSchedule(utc, 2, c)
	b, _ := booking.NewSchedule(utc.In(time.FixedZone("KST", 9*60*60)), 2, c)

	if !a.Equal(b) {
		t.Error("Equal() = false for same instant in different zones")
	}
	if !a.SameSlot(b) {
		t.Error("SameSlot() = false for same instant")
	}
}

func TestSchedule_OnTheHour(t *testing.T) {
	c, _ := booking.NewCustomer("Fake Name", "010-1234-5678", "")
	tests := []struct {
		when time.Time
		want bool
	}{
		{time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC), true},
		{time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2024, 1, 16, 9, 59, 0, 0, time.UTC), false},
		{time.Date(2024, 1, 16, 9, 0, 59, 0, time.UTC), false},
		{time.Date(2024, 1, 16, 9, 0, 0, 500, time.UTC), false},
	}
	for _, tt := range tests {
		s, _ := booking.NewSchedule(tt.when, 1, c)
		if got := s.OnTheHour(); got != tt.want {
			t.Errorf("OnTheHour(%s) = %v, want %v", tt.when.Format(time.RFC3339Nano), got, tt.want)
		}
	}
}
