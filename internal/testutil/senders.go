package testutil

import (
	"context"
	"sync"

	"booking-go/internal/booking"
)

// RecordingSmsSender records every schedule it is asked to confirm.
// Set Err to make Send fail after recording the call.
type RecordingSmsSender struct {
	mu    sync.Mutex
	calls []booking.Schedule
	Err   error
}

func NewRecordingSmsSender() *RecordingSmsSender {
	return &RecordingSmsSender{}
}

func (s *RecordingSmsSender) Send(_ context.Context, schedule booking.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, schedule)
	return s.Err
}

// Calls returns how many times Send was invoked.
func (s *RecordingSmsSender) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Sent returns the schedules passed to Send, in call order.
func (s *RecordingSmsSender) Sent() []booking.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]booking.Schedule, len(s.calls))
	copy(out, s.calls)
	return out
}

// RecordingMailSender records every schedule it is asked to confirm.
// Set Err to make SendMail fail after recording the call.
type RecordingMailSender struct {
	mu    sync.Mutex
	calls []booking.Schedule
	Err   error
}

func NewRecordingMailSender() *RecordingMailSender {
	return &RecordingMailSender{}
}

func (s *RecordingMailSender) SendMail(_ context.Context, schedule booking.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, schedule)
	return s.Err
}

func (s *RecordingMailSender) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *RecordingMailSender) Sent() []booking.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]booking.Schedule, len(s.calls))
	copy(out, s.calls)
	return out
}

var (
	_ booking.SmsSender  = (*RecordingSmsSender)(nil)
	_ booking.MailSender = (*RecordingMailSender)(nil)
)
