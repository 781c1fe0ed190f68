package booking

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Policy holds the restaurant's admission rules.
type Policy struct {
	// CapacityPerHour is the maximum number of guests booked into one slot.
	CapacityPerHour int
	// BlackoutDay is the weekday on which the booking system is closed.
	// The zero value is time.Sunday.
	BlackoutDay time.Weekday
}

// Validate checks that the policy can be enforced.
func (p Policy) Validate() error {
	if p.CapacityPerHour <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, p.CapacityPerHour)
	}
	if p.BlackoutDay < time.Sunday || p.BlackoutDay > time.Saturday {
		return fmt.Errorf("invalid blackout day: %d", p.BlackoutDay)
	}
	return nil
}

// Scheduler admits or rejects reservations and confirms accepted ones
// to the customer. It is safe for concurrent use.
type Scheduler struct {
	policy Policy
	logger Logger
	clock  Clock

	mu        sync.Mutex
	schedules []Schedule
	sms       SmsSender
	mail      MailSender
}

// NewScheduler creates a Scheduler enforcing policy. A nil logger discards
// output and a nil clock reads the system clock.
func NewScheduler(policy Policy, sms SmsSender, mail MailSender, logger Logger, clock Clock) (*Scheduler, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{
		policy: policy,
		logger: logger,
		clock:  clock,
		sms:    sms,
		mail:   mail,
	}, nil
}

// Policy returns the rules this scheduler enforces.
func (s *Scheduler) Policy() Policy { return s.policy }

// SetSmsSender replaces the SMS collaborator.
func (s *Scheduler) SetSmsSender(sms SmsSender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sms = sms
}

// SetMailSender replaces the mail collaborator.
func (s *Scheduler) SetMailSender(mail MailSender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mail = mail
}

// AddSchedule admits schedule if it starts on the hour, fits into the
// remaining capacity of its slot and the booking system is open today.
// Rules are checked in that order and the first violation is returned
// without modifying the scheduler.
//
// Once admitted, the customer is notified by SMS and, if they have an email
// address, by mail. Notification failures are logged and do not undo the
// booking.
func (s *Scheduler) AddSchedule(ctx context.Context, schedule Schedule) error {
	sms, mail, err := s.admit(schedule)
	if err != nil {
		s.logger.Warn("schedule rejected", "at", schedule.DateTime(), "people", schedule.NumberOfPeople(), "err", err)
		return err
	}

	s.logger.Info("schedule accepted",
		"at", schedule.DateTime(),
		"people", schedule.NumberOfPeople(),
		"customer", schedule.Customer().Name(),
	)
	s.notify(ctx, schedule, sms, mail)
	return nil
}

// admit runs the three rules and appends under one lock, returning the
// collaborators that were current at admission time.
func (s *Scheduler) admit(schedule Schedule) (SmsSender, MailSender, error) {
	if schedule.IsZero() {
		return nil, nil, fmt.Errorf("%w: schedule was not created with NewSchedule", ErrInvalidSchedule)
	}
	if !schedule.OnTheHour() {
		return nil, nil, fmt.Errorf("%w: got %s", ErrInvalidTime, schedule.DateTime().Format("15:04:05"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// booked never exceeds capacity, so the subtraction cannot overflow.
	booked := s.bookedLocked(schedule.DateTime())
	if schedule.NumberOfPeople() > s.policy.CapacityPerHour-booked {
		return nil, nil, fmt.Errorf("%w: %d requested, %d already booked, capacity %d",
			ErrCapacityExceeded, schedule.NumberOfPeople(), booked, s.policy.CapacityPerHour)
	}

	if now := s.clock.Now(); now.Weekday() == s.policy.BlackoutDay {
		return nil, nil, fmt.Errorf("%w: today is %s", ErrBlackoutDay, now.Weekday())
	}

	s.schedules = append(s.schedules, schedule)
	return s.sms, s.mail, nil
}

func (s *Scheduler) notify(ctx context.Context, schedule Schedule, sms SmsSender, mail MailSender) {
	customer := schedule.Customer()

	if sms == nil {
		s.logger.Warn("no sms sender configured", "phone", customer.PhoneNumber())
	} else if err := sms.Send(ctx, schedule); err != nil {
		s.logger.Error("sms notification failed", "phone", customer.PhoneNumber(), "err", err)
	}

	if !customer.HasEmail() {
		s.logger.Debug("customer has no email, skipping mail", "customer", customer.Name())
		return
	}
	if mail == nil {
		s.logger.Warn("no mail sender configured", "email", customer.Email())
		return
	}
	if err := mail.SendMail(ctx, schedule); err != nil {
		s.logger.Error("mail notification failed", "email", customer.Email(), "err", err)
	}
}

// HasSchedule reports whether an equal schedule has been accepted.
func (s *Scheduler) HasSchedule(schedule Schedule) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.schedules {
		if existing.Equal(schedule) {
			return true
		}
	}
	return false
}

// Schedules returns the accepted schedules in the order they were added.
func (s *Scheduler) Schedules() []Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Schedule, len(s.schedules))
	copy(out, s.schedules)
	return out
}

// Booked returns the number of guests already booked at exactly at.
func (s *Scheduler) Booked(at time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookedLocked(at)
}

// Remaining returns how many more guests the slot at can take.
func (s *Scheduler) Remaining(at time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.policy.CapacityPerHour - s.bookedLocked(at)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *Scheduler) bookedLocked(at time.Time) int {
	total := 0
	for _, existing := range s.schedules {
		if existing.DateTime().Equal(at) {
			total += existing.NumberOfPeople()
		}
	}
	return total
}
