// Package worker holds the scheduled-mode plumbing: the validated cron
// configuration and the health check server. None of it runs in the default
// single-pass invocation.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	pkgconfig "appwatch/pkg/config"

	"github.com/robfig/cron/v3"
)

// Config controls the optional scheduled mode.
//
// All fields have defaults and validation rules so the worker can operate
// safely even with missing configuration; an invalid value falls back to its
// default with a warning rather than aborting startup.
type Config struct {
	// Schedule is the cron expression for repeated passes.
	// Empty means scheduled mode is disabled and the process runs one pass.
	Schedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Default: "UTC"
	Timezone string

	// PassTimeout bounds one check pass; after it the pass context is
	// cancelled. Default: 10 minutes.
	PassTimeout time.Duration

	// MetricsPort is the port for the /metrics endpoint. Default: 9090.
	MetricsPort int

	// HealthPort is the port for the health check server. Default: 9091.
	HealthPort int
}

// DefaultConfig returns a Config with production defaults and scheduled mode
// disabled.
func DefaultConfig() Config {
	return Config{
		Schedule:    "",
		Timezone:    "UTC",
		PassTimeout: 10 * time.Minute,
		MetricsPort: 9090,
		HealthPort:  9091,
	}
}

// Enabled reports whether a cron schedule is configured.
func (c *Config) Enabled() bool {
	return c.Schedule != ""
}

// Validate checks the configuration values.
// Multiple invalid fields are collected and returned together.
func (c *Config) Validate() error {
	var errs []error

	if c.Schedule != "" {
		if err := ValidateCronSchedule(c.Schedule); err != nil {
			errs = append(errs, err)
		}
	}
	if err := ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, err)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.PassTimeout); err != nil {
		errs = append(errs, fmt.Errorf("invalid pass timeout: %w", err))
	}
	for name, port := range map[string]int{"metrics": c.MetricsPort, "health": c.HealthPort} {
		if port < 1024 || port > 65535 {
			errs = append(errs, fmt.Errorf("invalid %s port %d: must be between 1024 and 65535", name, port))
		}
	}

	return errors.Join(errs...)
}

// LoadConfigFromEnv builds the worker configuration from the environment,
// falling back per-field to defaults on invalid values (fail-open: a bad
// schedule should not take the checker down).
func LoadConfigFromEnv(logger *slog.Logger) Config {
	defaults := DefaultConfig()

	cfg := Config{
		Schedule:    pkgconfig.GetEnvString("CHECK_SCHEDULE", defaults.Schedule),
		Timezone:    pkgconfig.GetEnvString("CHECK_TIMEZONE", defaults.Timezone),
		PassTimeout: pkgconfig.GetEnvDuration("CHECK_TIMEOUT", defaults.PassTimeout),
		MetricsPort: pkgconfig.GetEnvInt("METRICS_PORT", defaults.MetricsPort),
		HealthPort:  pkgconfig.GetEnvInt("HEALTH_PORT", defaults.HealthPort),
	}

	if cfg.Schedule != "" {
		if err := ValidateCronSchedule(cfg.Schedule); err != nil {
			logger.Warn("invalid CHECK_SCHEDULE, scheduled mode disabled",
				slog.String("schedule", cfg.Schedule),
				slog.Any("error", err))
			cfg.Schedule = defaults.Schedule
		}
	}
	if err := ValidateTimezone(cfg.Timezone); err != nil {
		logger.Warn("invalid CHECK_TIMEZONE, using default",
			slog.String("timezone", cfg.Timezone),
			slog.String("default", defaults.Timezone),
			slog.Any("error", err))
		cfg.Timezone = defaults.Timezone
	}
	if err := pkgconfig.ValidatePositiveDuration(cfg.PassTimeout); err != nil {
		logger.Warn("invalid CHECK_TIMEOUT, using default",
			slog.Duration("default", defaults.PassTimeout),
			slog.Any("error", err))
		cfg.PassTimeout = defaults.PassTimeout
	}

	return cfg
}

// ValidateCronSchedule validates a standard 5-field cron expression using
// the robfig/cron/v3 parser.
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// ValidateTimezone validates an IANA timezone name by loading it.
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("invalid timezone: cannot be empty")
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}
	return nil
}
