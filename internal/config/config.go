package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Defaults for the optional settings.
const (
	DefaultEventsTopic        = "match-events"
	DefaultClockTickInterval  = time.Minute
	DefaultListPollInterval   = 10 * time.Second
	DefaultDetailPollInterval = 5 * time.Second
)

// Load reads configuration from environment variables and .env file.
// It exits the process when the configuration is invalid.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := Parse(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// Parse builds a Config from lookup, usually os.LookupEnv.
func Parse(lookup func(key string) (string, bool)) (Config, error) {
	var errs []string

	// A helper function to get a required env var.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		errs = append(errs, fmt.Sprintf("required environment variable %s is not set", key))
		return ""
	}
	getOptional := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}
	getDuration := func(key string, fallback time.Duration) time.Duration {
		raw, ok := lookup(key)
		if !ok || raw == "" {
			return fallback
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be a positive duration such as 30s, got %q", key, raw))
			return fallback
		}
		return d
	}

	cfg := Config{
		DBName: getEnv("DB_NAME"),
		Port:   getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: getOptional("TURSO_PRIMARY_URL", ""),
			AuthToken:  getOptional("TURSO_AUTH_TOKEN", ""),
		},
		PubSub: PubSubConfig{
			ProjectID:   getOptional("GCP_PROJECT", ""),
			EventsTopic: getOptional("EVENTS_TOPIC", DefaultEventsTopic),
		},
		Slack: SlackConfig{
			Token:     getOptional("SLACK_BOT_TOKEN", ""),
			ChannelID: getOptional("SLACK_CHANNEL_ID", ""),
		},
		Intervals: IntervalConfig{
			ClockTick:  getDuration("CLOCK_TICK_INTERVAL", DefaultClockTickInterval),
			ListPoll:   getDuration("LIST_POLL_INTERVAL", DefaultListPollInterval),
			DetailPoll: getDuration("DETAIL_POLL_INTERVAL", DefaultDetailPollInterval),
		},
		AllowedOrigins: splitList(getOptional("ALLOWED_ORIGINS", "*")),
	}
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID == "" {
		errs = append(errs, "SLACK_CHANNEL_ID is required when SLACK_BOT_TOKEN is set")
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
