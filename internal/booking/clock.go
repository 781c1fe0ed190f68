package booking

import (
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so the blackout rule is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time. When Location is set the time is
// converted to it, so weekday checks follow the restaurant's calendar rather
// than the host's.
type RealClock struct {
	Location *time.Location
}

func (c RealClock) Now() time.Time {
	now := time.Now()
	if c.Location != nil {
		return now.In(c.Location)
	}
	return now
}

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// FixedClock always reports the same instant. Used to replay requests as if
// they arrived at a given time.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
