package components

import (
	"github.com/allbin/ctsmon"
	"github.com/allbin/ctsmon/internal/tui/colors"
	"github.com/allbin/ctsmon/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

const (
	columnKeySignal = "signal"
	columnKeyLevel  = "level"
	columnKeyEdge   = "edge"
	columnKeyCount  = "count"
	columnKeyLast   = "last"
)

// lineStats is what the table remembers about one line
type lineStats struct {
	level   bool
	edge    string
	rising  bool
	count   int
	last    string
	tracked bool
}

// SignalTable shows the current level of each control line
type SignalTable struct {
	order []ctsmon.Signal
	stats map[ctsmon.Signal]*lineStats
}

// NewSignalTable lists CTS and RTS, plus DSR and DTR when verbose
func NewSignalTable(verbose bool) *SignalTable {
	order := []ctsmon.Signal{ctsmon.SignalCTS, ctsmon.SignalRTS, ctsmon.SignalDSR, ctsmon.SignalDTR}
	st := &SignalTable{order: order, stats: make(map[ctsmon.Signal]*lineStats)}
	for i, sig := range order {
		st.stats[sig] = &lineStats{tracked: verbose || i < 2}
	}
	return st
}

// SetState records the levels of a full sample without counting edges
func (st *SignalTable) SetState(state ctsmon.SignalState) {
	for _, sig := range st.order {
		st.stats[sig].level = state.Level(sig)
	}
}

// Apply records one transition
func (st *SignalTable) Apply(t ctsmon.Transition) {
	s, ok := st.stats[t.Signal]
	if !ok {
		return
	}
	s.level = t.To
	s.rising = t.Edge() == ctsmon.EdgeRising
	s.edge = t.Edge().Arrow()
	s.count++
	s.last = t.Timestamp
}

// Count returns the number of transitions seen on sig
func (st *SignalTable) Count(sig ctsmon.Signal) int {
	if s, ok := st.stats[sig]; ok {
		return s.count
	}
	return 0
}

// Level returns the last known level of sig
func (st *SignalTable) Level(sig ctsmon.Signal) bool {
	if s, ok := st.stats[sig]; ok {
		return s.level
	}
	return false
}

// Reset clears counters but keeps levels
func (st *SignalTable) Reset() {
	for _, s := range st.stats {
		s.count = 0
		s.edge = ""
		s.last = ""
	}
}

func (st *SignalTable) rows() []table.Row {
	rows := make([]table.Row, 0, len(st.order))
	for _, sig := range st.order {
		s := st.stats[sig]
		edge := table.NewStyledCell(s.edge, styles.EdgeStyle(s.rising))
		last := s.last
		count := s.count
		if !s.tracked {
			// Untracked lines still show their level, but never get edges
			edge = table.NewStyledCell("", lipgloss.NewStyle())
			last = "-"
		}
		rows = append(rows, table.NewRow(table.RowData{
			columnKeySignal: string(sig),
			columnKeyLevel:  table.NewStyledCell(ctsmon.LevelString(s.level), styles.LevelStyle(s.level)),
			columnKeyEdge:   edge,
			columnKeyCount:  count,
			columnKeyLast:   last,
		}))
	}
	return rows
}

func (st *SignalTable) View() string {
	columns := []table.Column{
		table.NewColumn(columnKeySignal, "Line", 6),
		table.NewColumn(columnKeyLevel, "Level", 7),
		table.NewColumn(columnKeyEdge, "", 3),
		table.NewColumn(columnKeyCount, "Edges", 8),
		table.NewColumn(columnKeyLast, "Last change", 28),
	}

	t := table.New(columns).
		WithRows(st.rows()).
		HeaderStyle(lipgloss.NewStyle().Bold(true).Foreground(colors.Text)).
		WithBaseStyle(lipgloss.NewStyle().
			BorderForeground(colors.Surface2).
			Foreground(colors.Subtext1).
			Align(lipgloss.Left))

	return t.View()
}
