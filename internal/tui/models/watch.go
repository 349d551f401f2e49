package models

import (
	"time"

	"github.com/allbin/ctsmon"
	"github.com/allbin/ctsmon/internal/tui/components"
	"github.com/allbin/ctsmon/internal/tui/keys"
	"github.com/allbin/ctsmon/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EventMsg carries one session event into the program
type EventMsg struct {
	Event ctsmon.Event
}

// StartedMsg reports a session that is primed and about to run
type StartedMsg struct {
	State ctsmon.SignalState
	Info  components.SessionInfo
}

// StoppedMsg reports the end of the run loop. Err is nil on a clean stop.
type StoppedMsg struct {
	Err error
}

type clockMsg time.Time

// ProgramSink forwards session events to a running tea.Program
type ProgramSink struct {
	send func(tea.Msg)
}

var _ ctsmon.Sink = ProgramSink{}

// NewProgramSink wraps a send function, usually (*tea.Program).Send
func NewProgramSink(send func(tea.Msg)) ProgramSink {
	return ProgramSink{send: send}
}

func (s ProgramSink) Write(e ctsmon.Event) error {
	s.send(EventMsg{Event: e})
	return nil
}

// WatchModel is the bubbletea model of the watch command
type WatchModel struct {
	device string
	ready  bool
	height int

	log    *components.EventLog
	table  *components.SignalTable
	status *components.StatusBar
	help   help.Model
	keys   keys.WatchKeys

	// onQuit stops the session when the user quits
	onQuit func()
}

func NewWatchModel(device string, verbose bool, onQuit func()) *WatchModel {
	return &WatchModel{
		device: device,
		log:    components.NewEventLog(0, 0), // Sized by the first WindowSizeMsg
		table:  components.NewSignalTable(verbose),
		status: components.NewStatusBar(device),
		help:   help.New(),
		keys:   keys.NewWatchKeys(),
		onQuit: onQuit,
	}
}

func (m *WatchModel) Init() tea.Cmd {
	return clockTick()
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.status.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.log.SetSize(msg.Width, m.logHeight())
		m.ready = true

	case clockMsg:
		return m, clockTick()

	case StartedMsg:
		m.table.SetState(msg.State)
		info := msg.Info
		m.status.SetInfo(&info)
		m.status.SetState(styles.SessionRunning)

	case EventMsg:
		m.handleEvent(msg.Event)

	case StoppedMsg:
		if msg.Err != nil {
			m.status.SetError(msg.Err)
		} else {
			m.status.SetState(styles.SessionStopped)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.onQuit != nil {
				m.onQuit()
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.log.SetSize(m.log.Width(), m.logHeight())

		case key.Matches(msg, m.keys.Pause):
			m.togglePause()

		case key.Matches(msg, m.keys.Clear):
			m.log.Clear()
			m.table.Reset()

		case key.Matches(msg, m.keys.Up):
			m.log.ScrollUp()

		case key.Matches(msg, m.keys.Down):
			m.log.ScrollDown()

		case key.Matches(msg, m.keys.GotoTop):
			m.log.GotoTop()

		case key.Matches(msg, m.keys.GotoBottom):
			m.log.GotoBottom()
		}
	}

	return m, nil
}

func (m *WatchModel) handleEvent(e ctsmon.Event) {
	switch e.Kind {
	case ctsmon.EventTransition:
		m.table.Apply(e.Transition)
		m.status.CountTransition()
	case ctsmon.EventInitial:
		m.table.SetState(e.State)
	}
	m.log.Append(e)
}

func (m *WatchModel) togglePause() {
	switch m.status.State() {
	case styles.SessionRunning:
		m.log.SetFollow(false)
		m.status.SetState(styles.SessionPaused)
	case styles.SessionPaused:
		m.log.SetFollow(true)
		m.status.SetState(styles.SessionRunning)
	}
}

// logHeight is whatever the table, help and status bar leave over
func (m *WatchModel) logHeight() int {
	used := lipgloss.Height(m.headerView()) +
		lipgloss.Height(m.help.View(m.keys)) +
		1 + // status bar
		1 // log border
	if h := m.height - used; h > 0 {
		return h
	}
	return 0
}

func (m *WatchModel) headerView() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("ctsmon "+m.device),
		m.table.View(),
	)
}

// Table exposes the signal table for inspection
func (m *WatchModel) Table() *components.SignalTable {
	return m.table
}

// Status exposes the status bar for inspection
func (m *WatchModel) Status() *components.StatusBar {
	return m.status
}

// Log exposes the event log for inspection
func (m *WatchModel) Log() *components.EventLog {
	return m.log
}

func (m *WatchModel) View() string {
	var content string
	if m.ready {
		content = m.log.View()
	} else {
		content = "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(),
		styles.ContentBorderStyle.Render(content),
		m.help.View(m.keys),
		m.status.Render(time.Now().Format("15:04:05")),
	)
}
