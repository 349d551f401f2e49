package components

import (
	"fmt"

	"github.com/allbin/ctsmon"
	"github.com/allbin/ctsmon/internal/tui/colors"
	"github.com/allbin/ctsmon/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// SessionInfo is the static part of the status bar
type SessionInfo struct {
	Kind     ctsmon.SourceKind
	Mode     ctsmon.Mode
	Interval int // µs, interval mode only
	Chip     string
}

type StatusBar struct {
	device      string
	state       styles.SessionState
	err         error
	width       int
	info        *SessionInfo
	transitions int
}

func NewStatusBar(device string) *StatusBar {
	return &StatusBar{
		device: device,
		state:  styles.SessionStarting,
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetInfo(info *SessionInfo) {
	sb.info = info
}

func (sb *StatusBar) SetState(state styles.SessionState) {
	sb.state = state
	if state != styles.SessionError {
		sb.err = nil
	}
}

func (sb *StatusBar) SetError(err error) {
	sb.state = styles.SessionError
	sb.err = err
}

func (sb *StatusBar) Err() error {
	return sb.err
}

func (sb *StatusBar) State() styles.SessionState {
	return sb.state
}

func (sb *StatusBar) CountTransition() {
	sb.transitions++
}

func (sb *StatusBar) Transitions() int {
	return sb.transitions
}

// Render draws the status line, nvim style: state, device, details, clock
func (sb *StatusBar) Render(timestamp string) string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	stateStyle := lipgloss.NewStyle().
		Foreground(colors.Base).
		Background(styles.GetStatusStyle(sb.state).GetForeground()).
		Bold(true).
		Padding(0, 1)
	state := stateStyle.Render(sb.state.String())

	deviceStyle := lipgloss.NewStyle().
		Foreground(colors.Mauve).
		Bold(true).
		Padding(0, 1)
	device := deviceStyle.Render(sb.device)

	var detail string
	switch {
	case sb.err != nil:
		detail = styles.ErrorStyle.Render(sb.err.Error())
	case sb.info != nil:
		detail = fmt.Sprintf("⚡ %s", sb.info.Kind)
		if sb.info.Chip != "" {
			detail += " " + sb.info.Chip
		}
		if sb.info.Mode == ctsmon.ModeInterval {
			detail += fmt.Sprintf(" %dµs", sb.info.Interval)
		} else {
			detail += " " + sb.info.Mode.String()
		}
	default:
		detail = "⚡ ctsmon"
	}
	detailStyle := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1)
	details := detailStyle.Render(detail)

	countStyle := lipgloss.NewStyle().
		Foreground(colors.Subtext1).
		Padding(0, 1)
	count := countStyle.Render(fmt.Sprintf("%d edges", sb.transitions))

	timeStyle := lipgloss.NewStyle().
		Foreground(colors.Subtext1).
		Padding(0, 1)
	clock := timeStyle.Render(timestamp)

	dividerStyle := lipgloss.NewStyle().
		Foreground(colors.Surface2).
		Padding(0, 1)
	divider := dividerStyle.Render("│")

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, state, device, divider)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, details, divider, count, divider, clock)

	spacerWidth := terminalWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	statusBarStyle := lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(terminalWidth)

	return statusBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide))
}
