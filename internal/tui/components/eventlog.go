package components

import (
	"fmt"
	"strings"

	"github.com/allbin/ctsmon"
	"github.com/allbin/ctsmon/internal/tui/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// maxLogLines bounds the scrollback of the event log
const maxLogLines = 5000

// EventLog is a scrolling viewport of session events
type EventLog struct {
	viewport viewport.Model
	lines    []string
	follow   bool
}

func NewEventLog(width, height int) *EventLog {
	return &EventLog{
		viewport: viewport.New(width, height),
		follow:   true,
	}
}

func (l *EventLog) SetSize(width, height int) {
	l.viewport.Width = width
	l.viewport.Height = height
}

func (l *EventLog) Width() int {
	return l.viewport.Width
}

// Append renders one event and scrolls to it while following
func (l *EventLog) Append(e ctsmon.Event) {
	l.lines = append(l.lines, renderEvent(e))
	if len(l.lines) > maxLogLines {
		l.lines = l.lines[len(l.lines)-maxLogLines:]
	}
	l.viewport.SetContent(strings.Join(l.lines, "\n"))
	if l.follow {
		l.viewport.GotoBottom()
	}
}

// Lines returns the number of lines held
func (l *EventLog) Lines() int {
	return len(l.lines)
}

func (l *EventLog) Clear() {
	l.lines = nil
	l.viewport.SetContent("")
}

// SetFollow controls whether new lines scroll the view
func (l *EventLog) SetFollow(follow bool) {
	l.follow = follow
	if follow {
		l.viewport.GotoBottom()
	}
}

func (l *EventLog) Following() bool {
	return l.follow
}

func (l *EventLog) ScrollUp() {
	l.viewport.LineUp(1)
}

func (l *EventLog) ScrollDown() {
	l.viewport.LineDown(1)
}

func (l *EventLog) GotoTop() {
	l.viewport.GotoTop()
}

func (l *EventLog) GotoBottom() {
	l.viewport.GotoBottom()
}

func (l *EventLog) Update(msg tea.Msg) (viewport.Model, tea.Cmd) {
	// Only window sizes go to the viewport so it does not eat our key bindings
	switch msg.(type) {
	case tea.WindowSizeMsg:
		return l.viewport.Update(msg)
	default:
		return l.viewport, nil
	}
}

func (l *EventLog) View() string {
	return l.viewport.View()
}

func renderEvent(e ctsmon.Event) string {
	if e.Kind != ctsmon.EventTransition {
		return e.String()
	}
	t := e.Transition
	rising := t.Edge() == ctsmon.EdgeRising
	return fmt.Sprintf("[%s] %s: %s %s",
		t.Timestamp,
		t.Signal,
		styles.LevelStyle(t.To).Render(ctsmon.LevelString(t.To)),
		styles.EdgeStyle(rising).Render(t.Edge().Arrow()))
}
