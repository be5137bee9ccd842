package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	DBURL string `envconfig:"DB_URL" required:"true"`

	// Twilio credentials are optional: without them the SMS gateway
	// degrades to a no-op and subscribe/dispatch still work.
	TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `envconfig:"TWILIO_PHONE_NUMBER"`

	// Shared secret for the manual send-daily trigger. Empty disables the check.
	CronSecret string `envconfig:"CRON_SECRET"`

	ScheduleHour   int    `envconfig:"SCHEDULE_HOUR" default:"8"`
	ScheduleMinute int    `envconfig:"SCHEDULE_MINUTE" default:"0"`
	ScheduleTZ     string `envconfig:"SCHEDULE_TZ" default:"America/Chicago"`

	// Optional on-disk shelter catalog; the embedded default is used when
	// the path is unset or unreadable.
	SheltersPath string `envconfig:"SHELTERS_PATH"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
