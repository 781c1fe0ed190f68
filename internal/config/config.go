package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults applied by NewConfig.
const (
	DefaultCapacityPerHour = 3
	DefaultBlackoutDay     = "sunday"
	DefaultTimezone        = "Local"
	DefaultLogLevel        = "info"
)

// Config represents the main configuration for the booking service.
type Config struct {
	RestaurantID string          `toml:"restaurant_id"`
	BaseDir      string          `toml:"base_dir"`
	LogDir       string          `toml:"log_dir"`
	LogLevel     string          `toml:"log_level"` // "debug", "info", "warn" or "error"
	Timezone     string          `toml:"timezone"`  // IANA name, "Local" or "UTC"
	Scheduler    SchedulerConfig `toml:"scheduler"`
	SMS          SMSConfig       `toml:"sms"`
	Mail         MailConfig      `toml:"mail"`
}

// SchedulerConfig holds the admission rules.
type SchedulerConfig struct {
	CapacityPerHour int    `toml:"capacity_per_hour"`
	BlackoutDay     string `toml:"blackout_day"` // weekday name, case-insensitive
}

// SMSConfig represents configuration for the SMS sender.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type SMSConfig struct {
	Type string `toml:"type"` // "console", "noop", "webhook" or "sns"

	// Webhook-specific fields (only used when Type == "webhook")
	WebhookURL   string `toml:"webhook_url,omitempty"`
	WebhookToken string `toml:"webhook_token,omitempty"`

	// SNS-specific fields (only used when Type == "sns")
	SNSRegion          string `toml:"sns_region,omitempty"`
	SNSSenderID        string `toml:"sns_sender_id,omitempty"`
	SNSAccessKeyID     string `toml:"sns_access_key_id,omitempty"`
	SNSSecretAccessKey string `toml:"sns_secret_access_key,omitempty"`
}

// MailConfig represents configuration for the mail sender.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type MailConfig struct {
	Type string `toml:"type"` // "console", "noop" or "smtp"

	// SMTP-specific fields (only used when Type == "smtp")
	SMTPHost     string `toml:"smtp_host,omitempty"`
	SMTPPort     int    `toml:"smtp_port,omitempty"`
	SMTPFrom     string `toml:"smtp_from,omitempty"`
	SMTPUsername string `toml:"smtp_username,omitempty"`
	SMTPPassword string `toml:"smtp_password,omitempty"`
}

// NewConfig creates a new Config with the provided values and defaults that
// print notifications to the console.
func NewConfig(restaurantID, baseDir string) *Config {
	return &Config{
		RestaurantID: restaurantID,
		BaseDir:      baseDir,
		LogDir:       filepath.Join(baseDir, "log"),
		LogLevel:     DefaultLogLevel,
		Timezone:     DefaultTimezone,
		Scheduler: SchedulerConfig{
			CapacityPerHour: DefaultCapacityPerHour,
			BlackoutDay:     DefaultBlackoutDay,
		},
		SMS:  SMSConfig{Type: "console"},
		Mail: MailConfig{Type: "console"},
	}
}

// Validate checks the fields every command depends on. Sender-specific
// fields are checked when the sender is built.
func (c *Config) Validate() error {
	if c.Scheduler.CapacityPerHour <= 0 {
		return fmt.Errorf("scheduler.capacity_per_hour must be positive, got %d", c.Scheduler.CapacityPerHour)
	}
	if _, err := c.BlackoutWeekday(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level: %s", c.LogLevel)
	}
	return nil
}

// Location resolves the restaurant time zone. An empty value means Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// BlackoutWeekday parses scheduler.blackout_day. An empty value means Sunday.
func (c *Config) BlackoutWeekday() (time.Weekday, error) {
	if c.Scheduler.BlackoutDay == "" {
		return time.Sunday, nil
	}
	return ParseWeekday(c.Scheduler.BlackoutDay)
}

// ParseWeekday accepts full English weekday names and their three-letter
// abbreviations, in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday: %q", s)
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The file may hold SMTP and AWS secrets.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
