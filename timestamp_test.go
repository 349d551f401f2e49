package ctsmon

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns a fixed sequence of instants, repeating the last one
type fakeClock struct {
	times []time.Time
	i     int
}

func (c *fakeClock) Now() time.Time {
	t := c.times[c.i]
	if c.i < len(c.times)-1 {
		c.i++
	}
	return t
}

func TestFormatTimestampRelative(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"zero", 0, "0.000000"},
		{"sub-microsecond truncates", 999 * time.Nanosecond, "0.000000"},
		{"one microsecond", time.Microsecond, "0.000001"},
		{"fraction", 12345 * time.Microsecond, "0.012345"},
		{"seconds", 3*time.Second + 42*time.Microsecond, "3.000042"},
		{"minutes", 125*time.Second + 500*time.Millisecond, "125.500000"},
		{"negative clamps to zero", -time.Second, "0.000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTimestamp(start.Add(tt.elapsed), TimeRelative, start)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatTimestampAbsolute(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 34, 56, 789012345, time.Local)
	got := FormatTimestamp(ts, TimeAbsolute, time.Time{})
	assert.Equal(t, "2024-03-01 12:34:56.789012", got)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{6}$`), got)
}

func TestStamperRelativeMonotonic(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{times: []time.Time{
		start,
		start.Add(10 * time.Microsecond),
		start.Add(999_999 * time.Microsecond),
		start.Add(time.Second),
		start.Add(time.Second + time.Microsecond),
	}}

	s := NewStamper(TimeRelative, clock.Now)
	assert.Equal(t, start, s.Start())

	var prev time.Duration = -1
	for i := 0; i < 4; i++ {
		stamp := s.Stamp()
		secPart, usPart, ok := strings.Cut(stamp, ".")
		require.True(t, ok, stamp)
		require.Len(t, usPart, 6)
		sec, err := strconv.ParseInt(secPart, 10, 64)
		require.NoError(t, err)
		us, err := strconv.ParseInt(usPart, 10, 64)
		require.NoError(t, err)
		elapsed := time.Duration(sec)*time.Second + time.Duration(us)*time.Microsecond
		assert.Greater(t, elapsed, prev, "stamp %q must increase", stamp)
		prev = elapsed
	}
}

func TestStamperDefaultsToWallClock(t *testing.T) {
	before := time.Now()
	s := NewStamper(TimeAbsolute, nil)
	after := time.Now()

	assert.False(t, s.Start().Before(before))
	assert.False(t, s.Start().After(after))
	assert.False(t, s.Now().Before(s.Start()))
}

func TestParseTimeFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeFormat
		wantErr bool
	}{
		{"abs", TimeAbsolute, false},
		{"absolute", TimeAbsolute, false},
		{"rel", TimeRelative, false},
		{"Relative", TimeRelative, false},
		{"iso", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownTimeFormat)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
