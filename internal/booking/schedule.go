package booking

import (
	"fmt"
	"time"
)

// Schedule is a reservation request: a party of NumberOfPeople for one
// customer at DateTime. Schedules are values; two schedules with the same
// fields are the same reservation.
type Schedule struct {
	dateTime       time.Time
	numberOfPeople int
	customer       Customer
}

// NewSchedule creates a Schedule. Whether the time is acceptable is decided by
// the Scheduler, not here.
func NewSchedule(dateTime time.Time, numberOfPeople int, customer Customer) (Schedule, error) {
	if numberOfPeople <= 0 {
		return Schedule{}, fmt.Errorf("%w: number of people must be positive, got %d", ErrInvalidSchedule, numberOfPeople)
	}
	if customer.phoneNumber == "" {
		return Schedule{}, fmt.Errorf("%w: customer has no phone number", ErrInvalidSchedule)
	}
	return Schedule{
		dateTime:       dateTime,
		numberOfPeople: numberOfPeople,
		customer:       customer,
	}, nil
}

func (s Schedule) DateTime() time.Time { return s.dateTime }
func (s Schedule) NumberOfPeople() int { return s.numberOfPeople }
func (s Schedule) Customer() Customer  { return s.customer }

// IsZero reports whether s was not built by NewSchedule.
func (s Schedule) IsZero() bool {
	return s.numberOfPeople == 0
}

// OnTheHour reports whether the schedule starts exactly at a full hour.
func (s Schedule) OnTheHour() bool {
	t := s.dateTime
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// SameSlot reports whether both schedules start at the same instant.
func (s Schedule) SameSlot(other Schedule) bool {
	return s.dateTime.Equal(other.dateTime)
}

// Equal compares all fields. Time zones do not matter, instants do.
func (s Schedule) Equal(other Schedule) bool {
	return s.SameSlot(other) &&
		s.numberOfPeople == other.numberOfPeople &&
		s.customer.Equal(other.customer)
}

func (s Schedule) String() string {
	return fmt.Sprintf("%s x%d for %s", s.dateTime.Format("2006-01-02 15:04 MST"), s.numberOfPeople, s.customer)
}
