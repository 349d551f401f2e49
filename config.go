package ctsmon

import (
	"fmt"
	"strings"
	"time"
)

// MinInterval is the shortest polling interval accepted in interval mode
const MinInterval = 100 * time.Microsecond

// Mode selects how the polling driver paces its ticks
type Mode int

const (
	ModeInterval Mode = iota // Default: sleep Interval between ticks
	ModeTight                // No sleep between ticks
)

func (m Mode) String() string {
	switch m {
	case ModeInterval:
		return "interval"
	case ModeTight:
		return "tight"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode token into a Mode.
// "poll" and "irq" are accepted as aliases for interval and tight.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interval", "poll", "polling":
		return ModeInterval, nil
	case "tight", "irq":
		return ModeTight, nil
	default:
		return 0, fmt.Errorf("%w: %q (use interval or tight)", ErrUnknownMode, s)
	}
}

// Config holds the configuration for a monitor session
type Config struct {
	Device     string
	Interval   time.Duration // Only used in ModeInterval
	Mode       Mode
	TimeFormat TimeFormat
	Output     string // Empty or "-" writes to stdout
	Verbose    bool   // Tracks DSR/DTR and emits session markers
}

// Option is a functional option for configuring a monitor session
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Interval:   time.Millisecond,
		Mode:       ModeInterval,
		TimeFormat: TimeAbsolute,
	}
}

// NewConfig applies opts on top of DefaultConfig and validates the result
func NewConfig(device string, opts ...Option) (Config, error) {
	config := DefaultConfig()
	config.Device = device
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return Config{}, err
		}
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the settings that must hold before monitoring starts
func (c Config) Validate() error {
	if strings.TrimSpace(c.Device) == "" {
		return ErrMissingDevice
	}
	if c.Mode != ModeInterval && c.Mode != ModeTight {
		return fmt.Errorf("%w: %v", ErrUnknownMode, c.Mode)
	}
	if c.TimeFormat != TimeAbsolute && c.TimeFormat != TimeRelative {
		return fmt.Errorf("%w: %v", ErrUnknownTimeFormat, c.TimeFormat)
	}
	if c.Mode == ModeInterval && c.Interval < MinInterval {
		return fmt.Errorf("%w: %dµs < %dµs", ErrIntervalTooShort,
			c.Interval.Microseconds(), MinInterval.Microseconds())
	}
	return nil
}

// WithInterval sets the polling interval
func WithInterval(interval time.Duration) Option {
	return func(c *Config) error {
		if interval < MinInterval {
			return fmt.Errorf("%w: %dµs < %dµs", ErrIntervalTooShort,
				interval.Microseconds(), MinInterval.Microseconds())
		}
		c.Interval = interval
		return nil
	}
}

// WithIntervalMicros sets the polling interval in microseconds
func WithIntervalMicros(us int) Option {
	return WithInterval(time.Duration(us) * time.Microsecond)
}

// WithMode sets the polling mode
func WithMode(mode Mode) Option {
	return func(c *Config) error {
		c.Mode = mode
		return nil
	}
}

// WithTimeFormat sets the timestamp format
func WithTimeFormat(format TimeFormat) Option {
	return func(c *Config) error {
		c.TimeFormat = format
		return nil
	}
}

// WithOutput sets the output file path
func WithOutput(path string) Option {
	return func(c *Config) error {
		c.Output = path
		return nil
	}
}

// WithVerbose enables DSR/DTR tracking and session markers
func WithVerbose(verbose bool) Option {
	return func(c *Config) error {
		c.Verbose = verbose
		return nil
	}
}
