package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"booking-go/internal/app"
	"booking-go/internal/config"
)

const outputLayout = "2006-01-02 15:04"

// isTerminal reports whether stdout is a terminal. Piped output is
// tab-separated without a header.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func printDecisions(w io.Writer, a *app.BookingApp, decisions []app.Decision) {
	writeDecisions(w, a, decisions, isTerminal())
}

func writeDecisions(w io.Writer, a *app.BookingApp, decisions []app.Decision, aligned bool) {
	out := w
	var tw *tabwriter.Writer
	if aligned {
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		out = tw
		fmt.Fprintln(out, "AT\tPEOPLE\tPHONE\tRESULT\tREMAINING\tDETAIL")
	}

	for _, d := range decisions {
		at, remaining, detail := d.Request.At, "-", ""
		if !d.Schedule.IsZero() {
			at = d.Schedule.DateTime().In(a.Location()).Format(outputLayout)
		}
		if d.Remaining >= 0 {
			remaining = fmt.Sprint(d.Remaining)
		}
		if d.Err != nil {
			detail = d.Err.Error()
		}
		fmt.Fprintf(out, "%s\t%d\t%s\t%s\t%s\t%s\n",
			at, d.Request.People, d.Request.Phone, d.Reason, remaining, detail)
	}

	if tw != nil {
		tw.Flush()
	}
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "Restaurant ID: %s\n", cfg.RestaurantID)
	fmt.Fprintf(w, "Base Dir:      %s\n", cfg.BaseDir)
	fmt.Fprintf(w, "Log Dir:       %s\n", cfg.LogDir)
	fmt.Fprintf(w, "Log Level:     %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "Timezone:      %s\n", cfg.Timezone)
	fmt.Fprintf(w, "Capacity:      %d per hour\n", cfg.Scheduler.CapacityPerHour)
	fmt.Fprintf(w, "Blackout Day:  %s\n", cfg.Scheduler.BlackoutDay)
	fmt.Fprintf(w, "SMS:           %s\n", cfg.SMS.Type)
	fmt.Fprintf(w, "Mail:          %s\n", cfg.Mail.Type)
}
