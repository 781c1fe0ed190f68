package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"booking-go/internal/booking"
	"booking-go/internal/config"
	"booking-go/internal/notify"
)

// BookingApp is the application layer between the CLI and the Scheduler.
// It constructs all dependencies from config, turns raw requests into
// schedules and keeps per-run metrics. The caller must call Close when done.
type BookingApp struct {
	cfg       *config.Config
	loc       *time.Location
	scheduler *booking.Scheduler
	metrics   *Metrics
	logger    booking.Logger
	op        *Operation
	logFile   *os.File
}

// NewBookingApp creates a fully wired BookingApp from the given config.
// operation identifies the CLI command being run (e.g. "Book", "Batch").
// A nil clock reads the system clock in the restaurant time zone.
// Console notifications are written to out, or stdout when out is nil.
func NewBookingApp(ctx context.Context, cfg *config.Config, operation string, clock booking.Clock, out io.Writer) (*BookingApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	blackout, err := cfg.BlackoutWeekday()
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = booking.RealClock{Location: loc}
	}

	metrics := NewMetrics(cfg.RestaurantID)

	sms, err := notify.NewSmsSenderFromConfig(ctx, cfg.SMS, out)
	if err != nil {
		return nil, fmt.Errorf("creating sms sender: %w", err)
	}
	mail, err := notify.NewMailSenderFromConfig(cfg.Mail, out)
	if err != nil {
		return nil, fmt.Errorf("creating mail sender: %w", err)
	}

	runID := time.Now().UTC().Format("20060102T150405Z")
	slogger, logFile, err := newLogger(cfg.LogDir, runID, parseLevel(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger.With("restaurant", cfg.RestaurantID)}

	scheduler, err := booking.NewScheduler(
		booking.Policy{CapacityPerHour: cfg.Scheduler.CapacityPerHour, BlackoutDay: blackout},
		&countingSmsSender{next: sms, metrics: metrics},
		&countingMailSender{next: mail, metrics: metrics},
		logger,
		clock,
	)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}

	return &BookingApp{
		cfg:       cfg,
		loc:       loc,
		scheduler: scheduler,
		metrics:   metrics,
		logger:    logger,
		op:        NewOperation(runID, operation, ""),
		logFile:   logFile,
	}, nil
}

// Location returns the restaurant time zone used to read request times.
func (a *BookingApp) Location() *time.Location { return a.loc }

// Metrics returns the per-run collectors.
func (a *BookingApp) Metrics() *Metrics { return a.metrics }

// Operation returns the run record.
func (a *BookingApp) Operation() *Operation { return a.op }

// Book validates r and asks the scheduler to admit it.
func (a *BookingApp) Book(ctx context.Context, r Request) Decision {
	d := Decision{Request: r, Remaining: -1}

	schedule, err := r.toSchedule(a.loc)
	if err != nil {
		d.Reason, d.Err = ReasonInvalidRequest, err
		a.logger.Warn("invalid request", "at", r.At, "err", err)
	} else {
		d.Schedule = schedule
		d.Err = a.scheduler.AddSchedule(ctx, schedule)
		d.Reason = classify(d.Err)
		d.Remaining = a.scheduler.Remaining(schedule.DateTime())
	}

	a.record(d)
	return d
}

func (a *BookingApp) record(d Decision) {
	a.metrics.observeDecision(d)
	a.op.Record(d)
}

// Batch admits requests in order against the same scheduler. Later requests
// see the capacity taken by earlier ones.
func (a *BookingApp) Batch(ctx context.Context, requests []Request) []Decision {
	decisions := make([]Decision, 0, len(requests))
	for _, r := range requests {
		if err := ctx.Err(); err != nil {
			d := Decision{Request: r, Reason: ReasonInvalidRequest, Err: err, Remaining: -1}
			a.record(d)
			decisions = append(decisions, d)
			continue
		}
		decisions = append(decisions, a.Book(ctx, r))
	}
	return decisions
}

// Remaining returns the free capacity of the slot starting at at.
func (a *BookingApp) Remaining(at time.Time) int {
	return a.scheduler.Remaining(at)
}

// Schedules returns the accepted schedules in admission order.
func (a *BookingApp) Schedules() []booking.Schedule {
	return a.scheduler.Schedules()
}

// SetParameters records the command arguments for the run summary.
func (a *BookingApp) SetParameters(params ...string) {
	a.op.Parameters = strings.Join(params, " ")
}

// WriteMetrics writes the run's metrics as a node exporter textfile.
func (a *BookingApp) WriteMetrics(path string) error {
	return a.metrics.WriteTextfile(path)
}

// Close logs the run summary and closes the log file.
func (a *BookingApp) Close() error {
	a.logger.Info("run finished",
		"operation", a.op.Operation,
		"parameters", a.op.Parameters,
		"status", a.op.Status,
		"accepted", a.op.Accepted,
		"rejected", a.op.Rejected,
	)
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			return fmt.Errorf("closing log file: %w", err)
		}
	}
	return nil
}
