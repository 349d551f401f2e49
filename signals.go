package ctsmon

// Signal names a monitored modem-control line
type Signal string

const (
	SignalCTS Signal = "CTS" // Clear To Send
	SignalRTS Signal = "RTS" // Request To Send
	SignalDSR Signal = "DSR" // Data Set Ready
	SignalDTR Signal = "DTR" // Data Terminal Ready
)

// SignalState is one complete sample of the four control lines
type SignalState struct {
	CTS bool
	RTS bool
	DSR bool
	DTR bool
}

// Level returns the level of the named line
func (s SignalState) Level(sig Signal) bool {
	switch sig {
	case SignalCTS:
		return s.CTS
	case SignalRTS:
		return s.RTS
	case SignalDSR:
		return s.DSR
	case SignalDTR:
		return s.DTR
	default:
		return false
	}
}

// Edge is the direction of a level change
type Edge int

const (
	EdgeRising  Edge = iota // LOW -> HIGH
	EdgeFalling             // HIGH -> LOW
)

// Arrow returns the marker written after the new level
func (e Edge) Arrow() string {
	if e == EdgeRising {
		return "↑"
	}
	return "↓"
}

// Transition records one detected edge on one line
type Transition struct {
	Signal    Signal
	From      bool
	To        bool
	Timestamp string
}

// Edge returns EdgeRising iff the line went from LOW to HIGH
func (t Transition) Edge() Edge {
	if !t.From && t.To {
		return EdgeRising
	}
	return EdgeFalling
}

// LevelString renders a line level the way every output line does
func LevelString(level bool) string {
	if level {
		return "HIGH"
	}
	return "LOW"
}
