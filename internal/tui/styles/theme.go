package styles

import (
	"github.com/allbin/ctsmon/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Header styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Background(colors.Surface0).
			Padding(0, 1)

	// Status styles
	StatusRunningStyle = lipgloss.NewStyle().
				Foreground(colors.Green).
				Bold(true)

	StatusStoppedStyle = lipgloss.NewStyle().
				Foreground(colors.Red).
				Bold(true)

	StatusStartingStyle = lipgloss.NewStyle().
				Foreground(colors.Yellow).
				Bold(true)

	StatusPausedStyle = lipgloss.NewStyle().
				Foreground(colors.Blue).
				Bold(true)

	// Content area styles
	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colors.Surface1)

	// Signal level styles
	LevelHighStyle = lipgloss.NewStyle().
			Foreground(colors.High).
			Bold(true)

	LevelLowStyle = lipgloss.NewStyle().
			Foreground(colors.Low)

	RisingStyle = lipgloss.NewStyle().
			Foreground(colors.Rising)

	FallingStyle = lipgloss.NewStyle().
			Foreground(colors.Falling)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Red)
)

// SessionState is what the status bar shows about the monitor loop
type SessionState int

const (
	SessionStarting SessionState = iota
	SessionRunning
	SessionPaused
	SessionStopped
	SessionError
)

func (s SessionState) String() string {
	switch s {
	case SessionStarting:
		return "STARTING"
	case SessionRunning:
		return "RUNNING"
	case SessionPaused:
		return "PAUSED"
	case SessionStopped:
		return "STOPPED"
	default:
		return "ERROR"
	}
}

func GetStatusStyle(state SessionState) lipgloss.Style {
	switch state {
	case SessionRunning:
		return StatusRunningStyle
	case SessionStarting:
		return StatusStartingStyle
	case SessionPaused:
		return StatusPausedStyle
	default:
		return StatusStoppedStyle
	}
}

// LevelStyle returns the style for a line level
func LevelStyle(high bool) lipgloss.Style {
	if high {
		return LevelHighStyle
	}
	return LevelLowStyle
}

// EdgeStyle returns the style for an edge marker
func EdgeStyle(rising bool) lipgloss.Style {
	if rising {
		return RisingStyle
	}
	return FallingStyle
}
