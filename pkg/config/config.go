package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Scroll direction modes
const (
	DirectionDownOnly      = "downOnly"
	DirectionUpOnly        = "upOnly"
	DirectionBidirectional = "bidirectional"
)

// Checkpoint comment styles
const (
	CommentStyleAuto = "auto"
	CommentStyleNone = "none"
)

// DefaultCheckpointText is the placeholder comment typed into the document
const DefaultCheckpointText = "// ---- auto-scroll checkpoint ----"

// Config holds all configuration options for the auto-scroller
type Config struct {
	// Scrolling behaviour
	Scroll ScrollConfig `yaml:"scroll" json:"scroll"`

	// Checkpoint comment animation
	Checkpoint CheckpointConfig `yaml:"checkpoint" json:"checkpoint"`

	// Release checks
	Updates UpdatesConfig `yaml:"updates" json:"updates"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ScrollConfig holds the scroll engine settings
type ScrollConfig struct {
	DelayMs            int    `yaml:"scroll_delay_ms" json:"scroll_delay_ms"`
	Direction          string `yaml:"scroll_direction" json:"scroll_direction"`
	AutoSwitchTabs     bool   `yaml:"auto_switch_tabs" json:"auto_switch_tabs"`
	MaxScrollLines     int    `yaml:"max_scroll_lines" json:"max_scroll_lines"`
	Step               int    `yaml:"scroll_step" json:"scroll_step"`
	AutoResume         bool   `yaml:"auto_resume" json:"auto_resume"`
	IdleTimeoutSeconds int    `yaml:"idle_timeout_seconds" json:"idle_timeout_seconds"`
}

// CheckpointConfig holds checkpoint comment settings
type CheckpointConfig struct {
	Enabled         bool   `yaml:"enable_checkpoint_comments" json:"enable_checkpoint_comments"`
	FrequencyLines  int    `yaml:"checkpoint_frequency_lines" json:"checkpoint_frequency_lines"`
	DurationSeconds int    `yaml:"checkpoint_duration_seconds" json:"checkpoint_duration_seconds"`
	Text            string `yaml:"checkpoint_text" json:"checkpoint_text"`
	CommentStyle    string `yaml:"checkpoint_comment_style" json:"checkpoint_comment_style"`
}

// UpdatesConfig holds release check settings
type UpdatesConfig struct {
	Enabled  bool          `yaml:"enabled" json:"enabled"`
	Package  string        `yaml:"package" json:"package"`
	FeedURL  string        `yaml:"feed_url" json:"feed_url"`
	Interval time.Duration `yaml:"interval" json:"interval"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Scroll: ScrollConfig{
			DelayMs:            1000,
			Direction:          DirectionBidirectional,
			AutoSwitchTabs:     true,
			MaxScrollLines:     0,
			Step:               1,
			AutoResume:         true,
			IdleTimeoutSeconds: 30,
		},
		Checkpoint: CheckpointConfig{
			Enabled:         false,
			FrequencyLines:  50,
			DurationSeconds: 3,
			Text:            DefaultCheckpointText,
			CommentStyle:    CommentStyleAuto,
		},
		Updates: UpdatesConfig{
			Enabled:  true,
			Package:  "autoscroll/autoscroll",
			FeedURL:  "https://api.github.com/repos/{package}/releases/latest",
			Interval: 24 * time.Hour,
			Timeout:  10 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	envInt := func(key string, dst *int) {
		if raw := os.Getenv(key); raw != "" {
			val, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = val
		}
	}
	envBool := func(key string, dst *bool) {
		if raw := os.Getenv(key); raw != "" {
			val, err := strconv.ParseBool(raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = val
		}
	}
	envString := func(key string, dst *string) {
		if raw := os.Getenv(key); raw != "" {
			*dst = raw
		}
	}

	envInt("AUTOSCROLL_SCROLL_DELAY_MS", &c.Scroll.DelayMs)
	envString("AUTOSCROLL_SCROLL_DIRECTION", &c.Scroll.Direction)
	envBool("AUTOSCROLL_AUTO_SWITCH_TABS", &c.Scroll.AutoSwitchTabs)
	envInt("AUTOSCROLL_MAX_SCROLL_LINES", &c.Scroll.MaxScrollLines)
	envInt("AUTOSCROLL_SCROLL_STEP", &c.Scroll.Step)
	envBool("AUTOSCROLL_AUTO_RESUME", &c.Scroll.AutoResume)
	envInt("AUTOSCROLL_IDLE_TIMEOUT_SECONDS", &c.Scroll.IdleTimeoutSeconds)

	envBool("AUTOSCROLL_ENABLE_CHECKPOINT_COMMENTS", &c.Checkpoint.Enabled)
	envInt("AUTOSCROLL_CHECKPOINT_FREQUENCY_LINES", &c.Checkpoint.FrequencyLines)
	envInt("AUTOSCROLL_CHECKPOINT_DURATION_SECONDS", &c.Checkpoint.DurationSeconds)
	envString("AUTOSCROLL_CHECKPOINT_TEXT", &c.Checkpoint.Text)

	envBool("AUTOSCROLL_UPDATES_ENABLED", &c.Updates.Enabled)
	envString("AUTOSCROLL_UPDATES_FEED_URL", &c.Updates.FeedURL)

	envString("AUTOSCROLL_LOG_LEVEL", &c.Logging.Level)
	envString("AUTOSCROLL_LOG_FILE", &c.Logging.File)

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// FindConfigFile returns the first existing config file in the standard
// locations, or "" when there is none
func FindConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".autoscroll.yaml",
		".autoscroll.yml",
		filepath.Join(home, ".config", "autoscroll", "config.yaml"),
		filepath.Join(home, ".config", "autoscroll", "config.yml"),
		filepath.Join(home, ".autoscroll.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	switch c.Scroll.Direction {
	case DirectionDownOnly, DirectionUpOnly, DirectionBidirectional:
	default:
		errs = append(errs, fmt.Errorf("scroll direction must be one of %s, %s, %s",
			DirectionDownOnly, DirectionUpOnly, DirectionBidirectional))
	}
	if c.Scroll.MaxScrollLines < 0 {
		errs = append(errs, errors.New("max scroll lines cannot be negative"))
	}
	if c.Scroll.Step <= 0 {
		errs = append(errs, errors.New("scroll step must be positive"))
	}
	if c.Scroll.IdleTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("idle timeout must be positive"))
	}

	if c.Checkpoint.FrequencyLines <= 0 {
		errs = append(errs, errors.New("checkpoint frequency must be positive"))
	}
	if c.Checkpoint.DurationSeconds <= 0 {
		errs = append(errs, errors.New("checkpoint duration must be positive"))
	}
	if strings.ContainsAny(c.Checkpoint.Text, "\r\n") {
		errs = append(errs, errors.New("checkpoint text must be a single line"))
	}
	switch c.Checkpoint.CommentStyle {
	case CommentStyleAuto, CommentStyleNone:
	default:
		errs = append(errs, errors.New("checkpoint comment style must be auto or none"))
	}

	if c.Updates.Enabled {
		if c.Updates.Package == "" {
			errs = append(errs, errors.New("updates package is required"))
		}
		if c.Updates.FeedURL == "" {
			errs = append(errs, errors.New("updates feed URL is required"))
		}
		if c.Updates.Interval <= 0 {
			errs = append(errs, errors.New("updates interval must be positive"))
		}
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Keys follow the flag names registered by the CLI.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if delay, ok := flags["delay"].(int); ok && delay != 0 {
		c.Scroll.DelayMs = delay
	}
	if direction, ok := flags["direction"].(string); ok && direction != "" {
		c.Scroll.Direction = direction
	}
	if step, ok := flags["step"].(int); ok && step != 0 {
		c.Scroll.Step = step
	}
	if maxLines, ok := flags["max-lines"].(int); ok {
		c.Scroll.MaxScrollLines = maxLines
	}
	if autoSwitch, ok := flags["auto-switch"].(bool); ok {
		c.Scroll.AutoSwitchTabs = autoSwitch
	}
	if checkpoints, ok := flags["checkpoints"].(bool); ok {
		c.Checkpoint.Enabled = checkpoints
	}
	if updates, ok := flags["updates"].(bool); ok {
		c.Updates.Enabled = updates
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile, ok := flags["log-file"].(string); ok && logFile != "" {
		c.Logging.File = logFile
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".autoscroll.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// DataDirectory returns the per-user data directory used for logs and
// persisted state, honouring XDG_DATA_HOME.
func DataDirectory() (string, error) {
	var dataDir string
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		dataDir = filepath.Join(xdg, "autoscroll")
	} else {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(base, "autoscroll")
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dataDir, nil
}
