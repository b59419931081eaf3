// Package config handles configuration loading and validation for taskloop.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/taskloop/internal/core/convo"
)

// Config holds the application configuration.
type Config struct {
	Conversation ConversationConfig `yaml:"conversation"`
	Telegram     TelegramConfig     `yaml:"telegram"`
	DataDir      string             `yaml:"-"` // set by caller, not from config file
}

// ConversationConfig tunes the conversation engine.
type ConversationConfig struct {
	// SkipSchedule selects what replying "skip" to the time prompt does:
	// "none" leaves the task unscheduled, "plus-hour" schedules it one
	// hour from now. Exactly one behavior is active at a time.
	SkipSchedule string `yaml:"skip_schedule"`

	// MaxRetries bounds consecutive validation failures in one creation
	// conversation before it is abandoned. Zero means unlimited.
	MaxRetries int `yaml:"max_retries"`
}

// TelegramConfig holds transport settings. The bot token itself is never
// read from the config file; it is resolved from the environment variable
// named by TokenEnv.
type TelegramConfig struct {
	TokenEnv    string `yaml:"token_env"`
	PollTimeout int    `yaml:"poll_timeout"` // long-poll timeout, seconds

	Token string `yaml:"-"` // resolved at startup
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Conversation: ConversationConfig{
			SkipSchedule: string(convo.SkipNone),
			MaxRetries:   0,
		},
		Telegram: TelegramConfig{
			TokenEnv:    "BOT_TOKEN",
			PollTimeout: 30,
		},
	}
}

// Load reads configuration from the given path and sets the data
// directory. If configPath is empty or doesn't exist, returns defaults
// with the provided dataDir. The bot token is resolved from the
// environment; an empty token is allowed here so commands that never
// touch the transport still run, and serve rejects it at startup.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()
	cfg.Telegram.Token = os.Getenv(cfg.Telegram.TokenEnv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Conversation.SkipSchedule == "" {
		c.Conversation.SkipSchedule = defaults.Conversation.SkipSchedule
	}
	if c.Telegram.TokenEnv == "" {
		c.Telegram.TokenEnv = defaults.Telegram.TokenEnv
	}
	if c.Telegram.PollTimeout == 0 {
		c.Telegram.PollTimeout = defaults.Telegram.PollTimeout
	}
}

// Validate checks that the configuration is valid, reporting all field
// errors at once.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if _, err := convo.ParseSkipMode(c.Conversation.SkipSchedule); err != nil {
		errs = errs.Append("conversation.skip_schedule", err)
	}
	if c.Conversation.MaxRetries < 0 {
		errs = errs.Append("conversation.max_retries", fmt.Errorf("must be zero or positive"))
	}
	if c.Telegram.PollTimeout < 1 {
		errs = errs.Append("telegram.poll_timeout", fmt.Errorf("must be at least 1"))
	}
	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("data directory cannot be empty"))
	}

	return errs.ToError()
}

// ConversationOptions maps the config onto engine options. Call only
// after Validate has passed.
func (c *Config) ConversationOptions() convo.Options {
	mode, _ := convo.ParseSkipMode(c.Conversation.SkipSchedule)
	return convo.Options{
		SkipSchedule: mode,
		MaxRetries:   c.Conversation.MaxRetries,
	}
}

// TasksFile returns the path to the tasks JSON file.
func (c *Config) TasksFile() string {
	return filepath.Join(c.DataDir, "tasks.json")
}
