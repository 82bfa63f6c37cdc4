package scroller

import (
	"time"

	"autoscroll/pkg/config"
)

// MinDelay is the shortest tick interval. Smaller delays are raised to it.
const MinDelay = 50 * time.Millisecond

// Mode selects which way the engine sweeps
type Mode int

const (
	ModeBidirectional Mode = iota
	ModeDownOnly
	ModeUpOnly
)

// ParseMode maps a configured direction to a Mode. Unknown values fall back
// to bidirectional.
func ParseMode(direction string) Mode {
	switch direction {
	case config.DirectionDownOnly:
		return ModeDownOnly
	case config.DirectionUpOnly:
		return ModeUpOnly
	default:
		return ModeBidirectional
	}
}

func (m Mode) String() string {
	switch m {
	case ModeDownOnly:
		return config.DirectionDownOnly
	case ModeUpOnly:
		return config.DirectionUpOnly
	default:
		return config.DirectionBidirectional
	}
}

// Direction is the current sweep direction
type Direction int

const (
	Down Direction = iota
	Up
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// CheckpointSettings configures checkpoint annotations
type CheckpointSettings struct {
	Enabled bool
	// Frequency is the number of scrolled lines between annotations
	Frequency int
	Duration  time.Duration
	Text      string
	// AdaptComment rewrites a leading "//" to the document's comment token
	AdaptComment bool
}

// Settings is the configuration of one scrolling run
type Settings struct {
	Delay       time.Duration
	Mode        Mode
	Step        int
	MaxLines    int
	AutoSwitch  bool
	IdleTimeout time.Duration
	AutoResume  bool
	Checkpoint  CheckpointSettings
}

// DefaultSettings returns the settings of the default configuration
func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultConfig())
}

// SettingsFromConfig derives engine settings from the loaded configuration
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Delay:       time.Duration(cfg.Scroll.DelayMs) * time.Millisecond,
		Mode:        ParseMode(cfg.Scroll.Direction),
		Step:        cfg.Scroll.Step,
		MaxLines:    cfg.Scroll.MaxScrollLines,
		AutoSwitch:  cfg.Scroll.AutoSwitchTabs,
		IdleTimeout: time.Duration(cfg.Scroll.IdleTimeoutSeconds) * time.Second,
		AutoResume:  cfg.Scroll.AutoResume,
		Checkpoint: CheckpointSettings{
			Enabled:      cfg.Checkpoint.Enabled,
			Frequency:    cfg.Checkpoint.FrequencyLines,
			Duration:     time.Duration(cfg.Checkpoint.DurationSeconds) * time.Second,
			Text:         cfg.Checkpoint.Text,
			AdaptComment: cfg.Checkpoint.CommentStyle != config.CommentStyleNone,
		},
	}
}

// normalized clamps values the engine cannot run with
func (s Settings) normalized() Settings {
	if s.Delay < MinDelay {
		s.Delay = MinDelay
	}
	if s.Step < 1 {
		s.Step = 1
	}
	if s.MaxLines < 0 {
		s.MaxLines = 0
	}
	if s.IdleTimeout <= 0 {
		s.IdleTimeout = time.Second
	}
	if s.Checkpoint.Frequency < 1 {
		s.Checkpoint.Frequency = 1
	}
	if s.Checkpoint.Duration < 0 {
		s.Checkpoint.Duration = 0
	}
	return s
}
