package booking

import (
	"fmt"
	"net/mail"
	"strings"
)

// Customer is the person a reservation is made for.
// The zero value is not a valid customer; use NewCustomer.
type Customer struct {
	name        string
	phoneNumber string
	email       string
}

// NewCustomer creates a Customer. The phone number is required because every
// accepted booking is confirmed by SMS. Email is optional but must be a
// plain address when given.
func NewCustomer(name, phoneNumber, email string) (Customer, error) {
	c := Customer{
		name:        strings.TrimSpace(name),
		phoneNumber: strings.TrimSpace(phoneNumber),
		email:       strings.TrimSpace(email),
	}
	if c.phoneNumber == "" {
		return Customer{}, fmt.Errorf("%w: phone number is required", ErrInvalidCustomer)
	}
	if c.email != "" {
		if err := validateEmail(c.email); err != nil {
			return Customer{}, err
		}
	}
	return c, nil
}

// validateEmail accepts a bare address only, without a display name.
func validateEmail(email string) error {
	if strings.ContainsAny(email, "\r\n") {
		return fmt.Errorf("%w: email contains a line break", ErrInvalidCustomer)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("%w: email %q: %v", ErrInvalidCustomer, email, err)
	}
	if addr.Address != email {
		return fmt.Errorf("%w: email %q must be a bare address", ErrInvalidCustomer, email)
	}
	return nil
}

func (c Customer) Name() string        { return c.name }
func (c Customer) PhoneNumber() string { return c.phoneNumber }
func (c Customer) Email() string       { return c.email }

// HasEmail reports whether the customer can be reached by mail.
func (c Customer) HasEmail() bool { return c.email != "" }

// Equal reports whether both customers have identical fields.
func (c Customer) Equal(other Customer) bool {
	return c == other
}

func (c Customer) String() string {
	if c.email == "" {
		return fmt.Sprintf("%s <%s>", c.name, c.phoneNumber)
	}
	return fmt.Sprintf("%s <%s, %s>", c.name, c.phoneNumber, c.email)
}
