package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"booking-go/internal/app"
	"booking-go/internal/booking"
	"booking-go/internal/config"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// errRejected is returned when at least one reservation was not admitted, so
// the process exits non-zero. The decisions have already been printed.
var errRejected = errors.New("reservation rejected")

// newApp reads the config and creates a BookingApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Book", "Batch").
// now, if non-empty, pins the clock to that time in the restaurant time zone.
func newApp(ctx context.Context, operation, now string) (*app.BookingApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var clock booking.Clock
	if now != "" {
		loc, err := cfg.Location()
		if err != nil {
			return nil, err
		}
		t, err := app.ParseAt(now, loc)
		if err != nil {
			return nil, fmt.Errorf("parsing --now: %w", err)
		}
		clock = booking.FixedClock{T: t}
	}

	a, err := app.NewBookingApp(ctx, cfg, operation, clock, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:          "booking",
	Short:        "Restaurant reservation admission",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		capacity, _ := cmd.Flags().GetInt("capacity")
		timezone, _ := cmd.Flags().GetString("timezone")
		blackout, _ := cmd.Flags().GetString("blackout-day")

		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		restaurantID := uuid.New().String()

		cfg := config.NewConfig(restaurantID, defaults["base_dir"])
		cfg.Scheduler.CapacityPerHour = capacity
		cfg.Scheduler.BlackoutDay = strings.ToLower(blackout)
		cfg.Timezone = timezone

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Restaurant ID: %s\n", restaurantID)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		printConfig(os.Stdout, cfg)
		return nil
	},
}

// book command
var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Request a single reservation",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := app.Request{}
		r.At, _ = cmd.Flags().GetString("at")
		r.People, _ = cmd.Flags().GetInt("people")
		r.Name, _ = cmd.Flags().GetString("name")
		r.Phone, _ = cmd.Flags().GetString("phone")
		r.Email, _ = cmd.Flags().GetString("email")
		now, _ := cmd.Flags().GetString("now")

		a, err := newApp(cmd.Context(), "Book", now)
		if err != nil {
			return err
		}
		defer a.Close()
		a.SetParameters(r.At, fmt.Sprint(r.People), r.Phone)

		d := a.Book(cmd.Context(), r)
		printDecisions(os.Stdout, a, []app.Decision{d})
		if !d.Accepted() {
			return errRejected
		}
		return nil
	},
}

// batch command
var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Process a file of reservation requests in order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		now, _ := cmd.Flags().GetString("now")
		metricsOut, _ := cmd.Flags().GetString("metrics-out")

		requests, err := app.LoadRequests(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), "Batch", now)
		if err != nil {
			return err
		}
		defer a.Close()
		a.SetParameters(args[0])

		decisions := a.Batch(cmd.Context(), requests)
		printDecisions(os.Stdout, a, decisions)

		op := a.Operation()
		fmt.Printf("\n%d accepted, %d rejected\n", op.Accepted, op.Rejected)

		if metricsOut != "" {
			if err := a.WriteMetrics(metricsOut); err != nil {
				return err
			}
		}
		if op.Rejected > 0 {
			return errRejected
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configInitCmd.Flags().Int("capacity", config.DefaultCapacityPerHour, "Guests per hourly slot")
	configInitCmd.Flags().String("timezone", config.DefaultTimezone, "Restaurant time zone (IANA name)")
	configInitCmd.Flags().String("blackout-day", config.DefaultBlackoutDay, "Weekday on which bookings are refused")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(bookCmd)
	bookCmd.Flags().String("at", "", `Reservation time, "YYYY-MM-DD HH:MM" or RFC 3339`)
	bookCmd.Flags().IntP("people", "n", 1, "Number of guests")
	bookCmd.Flags().String("name", "", "Customer name")
	bookCmd.Flags().String("phone", "", "Customer phone number")
	bookCmd.Flags().String("email", "", "Customer email (optional)")
	bookCmd.Flags().String("now", "", "Pretend the current time is this")
	bookCmd.MarkFlagRequired("at")
	bookCmd.MarkFlagRequired("phone")

	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().String("now", "", "Pretend the current time is this")
	batchCmd.Flags().String("metrics-out", "", "Write a node exporter textfile here")
}
