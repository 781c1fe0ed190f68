package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"booking-go/internal/booking"
	"booking-go/internal/config"
	"booking-go/internal/testutil"
)

func newTestApp(t *testing.T, clock booking.Clock, mutate func(*config.Config)) (*BookingApp, *config.Config) {
	t.Helper()
	cfg := config.NewConfig("restaurant-test", t.TempDir())
	cfg.Timezone = "UTC"
	cfg.SMS = config.SMSConfig{Type: "noop"}
	cfg.Mail = config.MailConfig{Type: "noop"}
	if mutate != nil {
		mutate(cfg)
	}

	a, err := NewBookingApp(context.Background(), cfg, "Test", clock, nil)
	if err != nil {
		t.Fatalf("NewBookingApp() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a, cfg
}

func req(at string, people int) Request {
	return Request{At: at, People: people, Name: "Fake Name", Phone: "010-1234-5678"}
}

func TestNewBookingApp(t *testing.T) {
	t.Run("rejects invalid config", func(t *testing.T) {
		cfg := config.NewConfig("r", t.TempDir())
		cfg.Scheduler.CapacityPerHour = 0
		if _, err := NewBookingApp(context.Background(), cfg, "Test", nil, nil); err == nil {
			t.Fatal("NewBookingApp() expected error for zero capacity")
		}
	})

	t.Run("rejects unknown sender", func(t *testing.T) {
		cfg := config.NewConfig("r", t.TempDir())
		cfg.SMS.Type = "pigeon"
		if _, err := NewBookingApp(context.Background(), cfg, "Test", nil, nil); err == nil {
			t.Fatal("NewBookingApp() expected error for unknown sms type")
		}
	})
}

func TestBookingApp_Book(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts valid request", func(t *testing.T) {
		a, _ := newTestApp(t, testutil.FixedClock(), nil)

		d := a.Book(ctx, req("2024-01-16 09:00", 1))
		if !d.Accepted() {
			t.Fatalf("Book() reason = %q err = %v, want accepted", d.Reason, d.Err)
		}
		if got := a.Remaining(d.Schedule.DateTime()); got != 2 {
			t.Errorf("Remaining() = %d, want 2", got)
		}
	})

	tests := []struct {
		name   string
		clock  booking.Clock
		prior  []Request
		req    Request
		reason string
	}{
		{"off the hour", testutil.FixedClock(), nil, req("2024-01-16 09:05", 1), ReasonInvalidTime},
		{"over capacity", testutil.FixedClock(), []Request{req("2024-01-16 09:00", 3)}, req("2024-01-16 09:00", 1), ReasonCapacityExceeded},
		{"next hour is free", testutil.FixedClock(), []Request{req("2024-01-16 09:00", 3)}, req("2024-01-16 10:00", 1), ReasonAccepted},
		{"blackout day", testutil.SundayClock(), nil, req("2024-01-16 09:00", 1), ReasonBlackoutDay},
		{"unparseable time", testutil.FixedClock(), nil, req("noon", 1), ReasonInvalidRequest},
		{"no people", testutil.FixedClock(), nil, req("2024-01-16 09:00", 0), ReasonInvalidRequest},
		{"no phone", testutil.FixedClock(), nil, Request{At: "2024-01-16 09:00", People: 1, Name: "x"}, ReasonInvalidRequest},
		{"bad email", testutil.FixedClock(), nil, Request{At: "2024-01-16 09:00", People: 1, Phone: "010", Email: "a@b.com\r\nBcc: c@d.com"}, ReasonInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t, tt.clock, nil)
			for _, p := range tt.prior {
				if d := a.Book(ctx, p); !d.Accepted() {
					t.Fatalf("prior Book() reason = %q err = %v", d.Reason, d.Err)
				}
			}

			d := a.Book(ctx, tt.req)
			if d.Reason != tt.reason {
				t.Errorf("Book() reason = %q (err %v), want %q", d.Reason, d.Err, tt.reason)
			}
			if tt.reason != ReasonAccepted && d.Err == nil {
				t.Error("Book() rejected without error")
			}
		})
	}

	t.Run("configured timezone", func(t *testing.T) {
		a, _ := newTestApp(t, testutil.FixedClock(), func(c *config.Config) { c.Timezone = "Asia/Seoul" })

		d := a.Book(ctx, req("2024-01-16 18:00", 2))
		if !d.Accepted() {
			t.Fatalf("Book() reason = %q err = %v", d.Reason, d.Err)
		}
		if got := a.Remaining(time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)); got != 1 {
			t.Errorf("Remaining(09:00 UTC) = %d, want 1", got)
		}
	})
}

func TestBookingApp_Batch(t *testing.T) {
	a, _ := newTestApp(t, testutil.FixedClock(), nil)

	decisions := a.Batch(context.Background(), []Request{
		req("2024-01-16 09:00", 2),
		req("2024-01-16 09:00", 2),
		req("2024-01-16 09:00", 1),
		req("2024-01-16 09:30", 1),
	})

	want := []string{ReasonAccepted, ReasonCapacityExceeded, ReasonAccepted, ReasonInvalidTime}
	if len(decisions) != len(want) {
		t.Fatalf("len(decisions) = %d, want %d", len(decisions), len(want))
	}
	for i, d := range decisions {
		if d.Reason != want[i] {
			t.Errorf("decisions[%d].Reason = %q, want %q", i, d.Reason, want[i])
		}
	}
	if got := len(a.Schedules()); got != 2 {
		t.Errorf("len(Schedules()) = %d, want 2", got)
	}

	wantRemaining := []int{1, 1, 0, 3}
	for i, d := range decisions {
		if d.Remaining != wantRemaining[i] {
			t.Errorf("decisions[%d].Remaining = %d, want %d", i, d.Remaining, wantRemaining[i])
		}
	}

	op := a.Operation()
	if op.Accepted != 2 || op.Rejected != 2 || op.Status != "rejected" {
		t.Errorf("operation = %+v, want 2 accepted, 2 rejected, status rejected", op)
	}

	t.Run("stops admitting after cancellation", func(t *testing.T) {
		a, _ := newTestApp(t, testutil.FixedClock(), nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		decisions := a.Batch(ctx, []Request{req("2024-01-16 09:00", 1)})
		if !errors.Is(decisions[0].Err, context.Canceled) {
			t.Errorf("Err = %v, want context.Canceled", decisions[0].Err)
		}
		if len(a.Schedules()) != 0 {
			t.Error("schedule admitted after cancellation")
		}
	})
}

func TestBookingApp_Metrics(t *testing.T) {
	ctx := context.Background()

	t.Run("counts decisions and notifications", func(t *testing.T) {
		a, _ := newTestApp(t, testutil.FixedClock(), nil)

		withEmail := req("2024-01-16 09:00", 2)
		withEmail.Email = "test@example.com"
		a.Batch(ctx, []Request{withEmail, req("2024-01-16 09:00", 2), req("2024-01-16 10:00", 1)})

		m := a.Metrics()
		if got := promtestutil.ToFloat64(m.admissions.WithLabelValues(ReasonAccepted)); got != 2 {
			t.Errorf("admissions{accepted} = %v, want 2", got)
		}
		if got := promtestutil.ToFloat64(m.admissions.WithLabelValues(ReasonCapacityExceeded)); got != 1 {
			t.Errorf("admissions{capacity_exceeded} = %v, want 1", got)
		}
		if got := promtestutil.ToFloat64(m.guests); got != 3 {
			t.Errorf("guests_booked = %v, want 3", got)
		}
		if got := promtestutil.ToFloat64(m.notifications.WithLabelValues("sms", "success")); got != 2 {
			t.Errorf("notifications{sms,success} = %v, want 2", got)
		}
		if got := promtestutil.ToFloat64(m.notifications.WithLabelValues("mail", "success")); got != 1 {
			t.Errorf("notifications{mail,success} = %v, want 1", got)
		}
	})

	t.Run("failed sms is counted and booking kept", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		a, _ := newTestApp(t, testutil.FixedClock(), func(c *config.Config) {
			c.SMS = config.SMSConfig{Type: "webhook", WebhookURL: srv.URL}
		})

		d := a.Book(ctx, req("2024-01-16 09:00", 1))
		if !d.Accepted() {
			t.Fatalf("Book() reason = %q err = %v, want accepted", d.Reason, d.Err)
		}
		if got := promtestutil.ToFloat64(a.Metrics().notifications.WithLabelValues("sms", "failure")); got != 1 {
			t.Errorf("notifications{sms,failure} = %v, want 1", got)
		}
	})

	t.Run("writes textfile", func(t *testing.T) {
		a, _ := newTestApp(t, testutil.FixedClock(), nil)
		a.Book(ctx, req("2024-01-16 09:00", 1))

		path := filepath.Join(t.TempDir(), "booking.prom")
		if err := a.WriteMetrics(path); err != nil {
			t.Fatalf("WriteMetrics() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		want := `booking_admissions_total{reason="accepted",restaurant="restaurant-test"} 1`
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	})
}

func TestBookingApp_ConsoleNotifications(t *testing.T) {
	var out bytes.Buffer
	cfg := config.NewConfig("restaurant-test", t.TempDir())
	cfg.Timezone = "UTC"

	a, err := NewBookingApp(context.Background(), cfg, "Test", testutil.FixedClock(), &out)
	if err != nil {
		t.Fatalf("NewBookingApp() error = %v", err)
	}
	defer a.Close()

	r := req("2024-01-16 09:00", 1)
	r.Email = "test@example.com"
	if d := a.Book(context.Background(), r); !d.Accepted() {
		t.Fatalf("Book() reason = %q err = %v", d.Reason, d.Err)
	}

	want := "Sending SMS to 010-1234-5678 for schedule at 2024-01-16 09:00 UTC\n" +
		"Sending email to test@example.com for schedule at 2024-01-16 09:00 UTC\n"
	if out.String() != want {
		t.Errorf("console output =\n%q\nwant:\n%q", out.String(), want)
	}
}

func TestBookingApp_Close(t *testing.T) {
	cfg := config.NewConfig("restaurant-test", t.TempDir())
	cfg.SMS.Type = "noop"
	cfg.Mail.Type = "noop"

	a, err := NewBookingApp(context.Background(), cfg, "Book", testutil.FixedClock(), nil)
	if err != nil {
		t.Fatalf("NewBookingApp() error = %v", err)
	}
	a.SetParameters("--people", "1")
	a.Book(context.Background(), req("2024-01-16 09:00", 1))

	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.LogDir, "booking.log"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, want := range []string{"schedule accepted", "run finished", "operation=Book", "accepted=1", "restaurant=restaurant-test"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log missing %q:\n%s", want, data)
		}
	}
}
