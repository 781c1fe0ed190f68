package booking

import "errors"

// Admission errors, in the order AddSchedule checks them.
var (
	ErrInvalidTime      = errors.New("booking must be on the hour")
	ErrCapacityExceeded = errors.New("number of people is over restaurant capacity per hour")
	ErrBlackoutDay      = errors.New("booking system is not available on the blackout day")
)

// Construction errors.
var (
	ErrInvalidCustomer = errors.New("invalid customer")
	ErrInvalidSchedule = errors.New("invalid schedule")
	ErrInvalidCapacity = errors.New("capacity per hour must be positive")
)
