package notify

import (
	"fmt"

	"booking-go/internal/booking"
)

// slotLayout is how a reservation time appears in customer-facing text.
const slotLayout = "2006-01-02 15:04 MST"

// SmsBody is the confirmation text sent to the customer's phone.
func SmsBody(schedule booking.Schedule) string {
	return fmt.Sprintf("Your reservation for %d on %s is confirmed.",
		schedule.NumberOfPeople(), schedule.DateTime().Format(slotLayout))
}

// MailSubject is the subject line of the confirmation email.
func MailSubject(schedule booking.Schedule) string {
	return "Reservation confirmed: " + schedule.DateTime().Format(slotLayout)
}

// MailBody is the plain-text body of the confirmation email.
func MailBody(schedule booking.Schedule) string {
	name := schedule.Customer().Name()
	if name == "" {
		name = "guest"
	}
	return fmt.Sprintf("Hello %s,\r\n\r\nYour table for %d on %s is confirmed.\r\n",
		name, schedule.NumberOfPeople(), schedule.DateTime().Format(slotLayout))
}
