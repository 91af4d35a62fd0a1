package retention

import appconfig "github.com/fleetlane/fleetlane/internal/config"

// Config controls the retention window and sweep cadence.
type Config struct {
	RetentionDays int
	// Schedule is a standard 5-field cron expression.
	Schedule string
}

func DefaultConfig() Config {
	return Config{
		RetentionDays: 30,
		Schedule:      "0 15 * * *",
	}
}

func ProvideConfig(cfg appconfig.Config) Config {
	return Config{
		RetentionDays: cfg.RetentionDays,
		Schedule:      cfg.CleanupSchedule,
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RetentionDays <= 0 {
		c.RetentionDays = defaults.RetentionDays
	}
	if c.Schedule == "" {
		c.Schedule = defaults.Schedule
	}
	return c
}
