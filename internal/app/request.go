package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"booking-go/internal/booking"
)

// Decision reasons.
const (
	ReasonAccepted         = "accepted"
	ReasonInvalidTime      = "invalid_time"
	ReasonCapacityExceeded = "capacity_exceeded"
	ReasonBlackoutDay      = "blackout_day"
	ReasonInvalidRequest   = "invalid_request"
)

// Reasons lists every decision reason, accepted first.
var Reasons = []string{
	ReasonAccepted,
	ReasonInvalidTime,
	ReasonCapacityExceeded,
	ReasonBlackoutDay,
	ReasonInvalidRequest,
}

// AtLayout is the local-time format accepted for Request.At besides RFC 3339.
const AtLayout = "2006-01-02 15:04"

// Request is an unvalidated reservation as typed on the command line or
// listed in a batch file.
type Request struct {
	At     string `toml:"at"`
	People int    `toml:"people"`
	Name   string `toml:"name"`
	Phone  string `toml:"phone"`
	Email  string `toml:"email,omitempty"`
}

// Decision is the outcome of one Request.
type Decision struct {
	Request  Request
	Schedule booking.Schedule // zero unless the request was well-formed
	Reason   string
	Err      error
	// Remaining is the slot's free capacity right after this decision,
	// or -1 when the request was malformed.
	Remaining int
}

func (d Decision) Accepted() bool { return d.Reason == ReasonAccepted }

// classify maps an admission error to a decision reason.
func classify(err error) string {
	switch {
	case err == nil:
		return ReasonAccepted
	case errors.Is(err, booking.ErrInvalidTime):
		return ReasonInvalidTime
	case errors.Is(err, booking.ErrCapacityExceeded):
		return ReasonCapacityExceeded
	case errors.Is(err, booking.ErrBlackoutDay):
		return ReasonBlackoutDay
	default:
		return ReasonInvalidRequest
	}
}

// ParseAt reads a reservation time. "YYYY-MM-DD HH:MM" is interpreted in
// loc; RFC 3339 carries its own offset.
func ParseAt(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(AtLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want %q or RFC 3339", s, AtLayout)
	}
	return t, nil
}

// toSchedule validates r and builds the schedule it asks for.
func (r Request) toSchedule(loc *time.Location) (booking.Schedule, error) {
	at, err := ParseAt(r.At, loc)
	if err != nil {
		return booking.Schedule{}, err
	}
	customer, err := booking.NewCustomer(r.Name, r.Phone, r.Email)
	if err != nil {
		return booking.Schedule{}, err
	}
	return booking.NewSchedule(at, r.People, customer)
}

type requestFile struct {
	Reservations []Request `toml:"reservation"`
}

// LoadRequests reads a TOML file of [[reservation]] tables, in file order.
func LoadRequests(path string) ([]Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open request file: %w", err)
	}
	defer f.Close()

	var rf requestFile
	md, err := toml.NewDecoder(f).Decode(&rf)
	if err != nil {
		return nil, fmt.Errorf("reading requests from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("reading requests from %s: unknown key %s", path, undecoded[0])
	}
	return rf.Reservations, nil
}
