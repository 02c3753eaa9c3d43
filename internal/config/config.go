// Package config provides configuration loading, validation, and management
// for the motivbot application. It reads an optional YAML file, environment
// variables and built-in defaults, and validates the result.
package config

import (
	"time"

	"github.com/go-telegram/bot/models"
)

// Config defines the application configuration for all components.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token and runtime bot identity.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`

	// BotInfo is filled at startup from getMe.
	BotInfo *models.User `mapstructure:"-"`
}

// GeminiConfig configures the text generation backend.
type GeminiConfig struct {
	APIKey            string  `mapstructure:"api_key"            validate:"required"`
	ModelName         string  `mapstructure:"model_name"         validate:"required"`
	Temperature       float32 `mapstructure:"temperature"        validate:"min=0,max=2"`
	SystemInstruction string  `mapstructure:"system_instruction"`
	MaxRetries        int     `mapstructure:"max_retries"        validate:"min=0,max=5"`
	RetryDelaySeconds int     `mapstructure:"retry_delay_seconds" validate:"min=0,max=60"`

	// RequestTimeout bounds one generation including retries. Zero means no bound.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"min=0s"`
	// BreakerFailures consecutive failures stop calls for BreakerReset.
	// Zero turns the breaker off.
	BreakerFailures int           `mapstructure:"breaker_failures" validate:"min=0"`
	BreakerReset    time.Duration `mapstructure:"breaker_reset"    validate:"min=0s"`
}

// DatabaseConfig selects the preference store backend.
// An empty Path keeps preferences in memory only.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SchedulerConfig configures the delivery scans.
type SchedulerConfig struct {
	Timezone  string                `mapstructure:"timezone"   validate:"omitempty,timezone"`
	SendPause time.Duration         `mapstructure:"send_pause" validate:"min=0s,max=1m"`
	Tasks     map[string]TaskConfig `mapstructure:"tasks"      validate:"dive"`
}

// TaskConfig describes when a single scheduled task fires. Schedule is a
// six-field cron expression and takes precedence over Interval.
type TaskConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Schedule string        `mapstructure:"schedule"`
	Interval time.Duration `mapstructure:"interval" validate:"min=0s"`
}

// MessagesConfig holds every user-facing text the bot sends.
type MessagesConfig struct {
	Welcome           string `mapstructure:"welcome"            validate:"required"`
	Help              string `mapstructure:"help"               validate:"required"`
	Subscribed        string `mapstructure:"subscribed"         validate:"required"`
	AlreadySubscribed string `mapstructure:"already_subscribed" validate:"required"`
	Unsubscribed      string `mapstructure:"unsubscribed"       validate:"required"`
	NotSubscribed     string `mapstructure:"not_subscribed"     validate:"required"`
	SubscribeFirst    string `mapstructure:"subscribe_first"    validate:"required"`
	GeneratingQuote   string `mapstructure:"generating_quote"   validate:"required"`
	GeneratingWish    string `mapstructure:"generating_wish"    validate:"required"`
	GeneratingCustom  string `mapstructure:"generating_custom"  validate:"required"`
	CustomUsage       string `mapstructure:"custom_usage"       validate:"required"`
	Settings          string `mapstructure:"settings"           validate:"required"`
	SetMorningDone    string `mapstructure:"set_morning_done"   validate:"required"`
	SetMorningUsage   string `mapstructure:"set_morning_usage"  validate:"required"`
	SetEveningDone    string `mapstructure:"set_evening_done"   validate:"required"`
	SetEveningUsage   string `mapstructure:"set_evening_usage"  validate:"required"`
	ToggleMorning     string `mapstructure:"toggle_morning"     validate:"required"`
	ToggleEvening     string `mapstructure:"toggle_evening"     validate:"required"`
	ToggleMotivation  string `mapstructure:"toggle_motivation"  validate:"required"`
	Enabled           string `mapstructure:"enabled"            validate:"required"`
	Disabled          string `mapstructure:"disabled"           validate:"required"`
	UnknownCommand    string `mapstructure:"unknown_command"    validate:"required"`
	GeneralError      string `mapstructure:"general_error"      validate:"required"`
}

// Location resolves the scheduler time zone. An empty value means the
// process local time zone.
func (c *SchedulerConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// OnOff renders a flag using the configured enabled/disabled words.
func (m *MessagesConfig) OnOff(v bool) string {
	if v {
		return m.Enabled
	}
	return m.Disabled
}
