package ctsmon

import (
	"fmt"
	"strings"
	"time"
)

// TimeFormat selects how event timestamps are rendered
type TimeFormat int

const (
	TimeAbsolute TimeFormat = iota // Local wall clock: 2006-01-02 15:04:05.000000
	TimeRelative                   // Seconds since session start: S.UUUUUU
)

// absoluteLayout is the wall-clock layout with microsecond precision
const absoluteLayout = "2006-01-02 15:04:05.000000"

func (f TimeFormat) String() string {
	switch f {
	case TimeAbsolute:
		return "absolute"
	case TimeRelative:
		return "relative"
	default:
		return fmt.Sprintf("TimeFormat(%d)", int(f))
	}
}

// ParseTimeFormat converts a format token (abs, absolute, rel, relative)
func ParseTimeFormat(s string) (TimeFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "abs", "absolute":
		return TimeAbsolute, nil
	case "rel", "relative":
		return TimeRelative, nil
	default:
		return 0, fmt.Errorf("%w: %q (use abs or rel)", ErrUnknownTimeFormat, s)
	}
}

// FormatTimestamp renders t in the given format.
// Relative timestamps count whole microseconds elapsed since start and never go negative.
func FormatTimestamp(t time.Time, format TimeFormat, start time.Time) string {
	if format == TimeRelative {
		us := t.Sub(start).Microseconds()
		if us < 0 {
			us = 0
		}
		return fmt.Sprintf("%d.%06d", us/1_000_000, us%1_000_000)
	}
	return t.Local().Format(absoluteLayout)
}

// Stamper produces timestamps for one session
type Stamper struct {
	format TimeFormat
	start  time.Time
	now    func() time.Time
}

// NewStamper captures the session start instant from now.
// A nil now uses time.Now.
func NewStamper(format TimeFormat, now func() time.Time) *Stamper {
	if now == nil {
		now = time.Now
	}
	return &Stamper{format: format, start: now(), now: now}
}

// Now returns the current instant
func (s *Stamper) Now() time.Time {
	return s.now()
}

// Start returns the session start instant
func (s *Stamper) Start() time.Time {
	return s.start
}

// Format renders t relative to this session
func (s *Stamper) Format(t time.Time) string {
	return FormatTimestamp(t, s.format, s.start)
}

// Stamp renders the current instant
func (s *Stamper) Stamp() string {
	return s.Format(s.now())
}
