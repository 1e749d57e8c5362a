package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName         string
	Port           string
	Turso          TursoConfig
	PubSub         PubSubConfig
	Slack          SlackConfig
	Intervals      IntervalConfig
	AllowedOrigins []string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type PubSubConfig struct {
	ProjectID   string
	EventsTopic string
}
type SlackConfig struct {
	Token     string
	ChannelID string
}

// IntervalConfig holds the refresh cadences of the clock and the views.
type IntervalConfig struct {
	ClockTick  time.Duration
	ListPoll   time.Duration
	DetailPoll time.Duration
}
