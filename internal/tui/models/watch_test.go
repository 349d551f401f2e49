package models

import (
	"errors"
	"testing"

	"github.com/allbin/ctsmon"
	"github.com/allbin/ctsmon/internal/tui/components"
	"github.com/allbin/ctsmon/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transition(sig ctsmon.Signal, from, to bool) EventMsg {
	return EventMsg{Event: ctsmon.Event{
		Kind:       ctsmon.EventTransition,
		Transition: ctsmon.Transition{Signal: sig, From: from, To: to, Timestamp: "0.000100"},
	}}
}

func TestWatchModelTracksTransitions(t *testing.T) {
	m := NewWatchModel("/dev/ttyUSB0", false, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	m.Update(StartedMsg{
		State: ctsmon.SignalState{RTS: true},
		Info:  components.SessionInfo{Kind: ctsmon.SourceLineStatus, Mode: ctsmon.ModeInterval, Interval: 1000},
	})
	assert.Equal(t, styles.SessionRunning, m.Status().State())
	assert.True(t, m.Table().Level(ctsmon.SignalRTS))

	m.Update(transition(ctsmon.SignalCTS, false, true))
	m.Update(transition(ctsmon.SignalRTS, true, false))

	assert.True(t, m.Table().Level(ctsmon.SignalCTS))
	assert.False(t, m.Table().Level(ctsmon.SignalRTS))
	assert.Equal(t, 1, m.Table().Count(ctsmon.SignalCTS))
	assert.Equal(t, 2, m.Status().Transitions())
	assert.Equal(t, 2, m.Log().Lines())

	view := m.View()
	assert.Contains(t, view, "/dev/ttyUSB0")
	assert.Contains(t, view, "CTS")
}

func TestWatchModelPauseAndClear(t *testing.T) {
	m := NewWatchModel("/dev/ttyS0", true, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(StartedMsg{})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	assert.Equal(t, styles.SessionPaused, m.Status().State())
	assert.False(t, m.Log().Following())

	m.Update(transition(ctsmon.SignalDSR, false, true))
	assert.Equal(t, 1, m.Log().Lines())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	assert.Equal(t, styles.SessionRunning, m.Status().State())
	assert.True(t, m.Log().Following())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	assert.Equal(t, 0, m.Log().Lines())
	assert.Equal(t, 0, m.Table().Count(ctsmon.SignalDSR))
	assert.True(t, m.Table().Level(ctsmon.SignalDSR), "clear keeps levels")
}

func TestWatchModelStopped(t *testing.T) {
	m := NewWatchModel("/dev/ttyUSB0", false, nil)
	m.Update(StartedMsg{})

	m.Update(StoppedMsg{Err: errors.New("signal sample failed")})
	assert.Equal(t, styles.SessionError, m.Status().State())
	require.Error(t, m.Status().Err())

	m = NewWatchModel("/dev/ttyUSB0", false, nil)
	m.Update(StoppedMsg{})
	assert.Equal(t, styles.SessionStopped, m.Status().State())
}

func TestWatchModelQuit(t *testing.T) {
	var stopped bool
	m := NewWatchModel("/dev/ttyUSB0", false, func() { stopped = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, stopped)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestProgramSink(t *testing.T) {
	var got []tea.Msg
	sink := NewProgramSink(func(msg tea.Msg) { got = append(got, msg) })

	e := ctsmon.Event{Kind: ctsmon.EventStarted, Timestamp: "0.000000"}
	require.NoError(t, sink.Write(e))
	require.Len(t, got, 1)
	assert.Equal(t, EventMsg{Event: e}, got[0])
}
