package ctsmon

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// EventKind distinguishes the lines a session produces
type EventKind int

const (
	EventStarted EventKind = iota
	EventInitial
	EventTransition
	EventStopped
)

// Event is one output line worth of session activity.
// State is the sampled state the event was derived from.
type Event struct {
	Kind       EventKind
	Timestamp  string
	State      SignalState
	Transition Transition
}

// String renders the event as a single output line without the newline
func (e Event) String() string {
	switch e.Kind {
	case EventStarted:
		return fmt.Sprintf("[%s] === CTS Monitor Started ===", e.Timestamp)
	case EventStopped:
		return fmt.Sprintf("[%s] === CTS Monitor Stopped ===", e.Timestamp)
	case EventInitial:
		return fmt.Sprintf("[%s] Initial state - CTS: %s, RTS: %s",
			e.Timestamp, LevelString(e.State.CTS), LevelString(e.State.RTS))
	default:
		t := e.Transition
		return fmt.Sprintf("[%s] %s: %s %s", t.Timestamp, t.Signal, LevelString(t.To), t.Edge().Arrow())
	}
}

// Sink receives session events
type Sink interface {
	Write(e Event) error
}

// Output writes one line per event and flushes after each
type Output struct {
	w      *bufio.Writer
	closer io.Closer
	echo   io.Writer
}

// Ensure Output implements Sink at compile time
var _ Sink = (*Output)(nil)

// NewOutput wraps an arbitrary writer
func NewOutput(w io.Writer) *Output {
	return &Output{w: bufio.NewWriter(w)}
}

// OpenOutput opens path for writing, truncating it. An empty path or "-"
// selects stdout. With echo set, lines written to a file are also copied to stdout.
func OpenOutput(path string, echo bool) (*Output, error) {
	if path == "" || path == "-" {
		return NewOutput(os.Stdout), nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open output file: %v", ErrOutput, err)
	}

	out := NewOutput(file)
	out.closer = file
	if echo {
		out.echo = os.Stdout
	}
	return out, nil
}

// Write emits the event line and flushes it
func (o *Output) Write(e Event) error {
	line := e.String() + "\n"
	if _, err := o.w.WriteString(line); err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	if err := o.w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	if o.echo != nil {
		if _, err := io.WriteString(o.echo, line); err != nil {
			return fmt.Errorf("%w: echo: %v", ErrOutput, err)
		}
	}
	return nil
}

// Close flushes and closes the underlying file, if any
func (o *Output) Close() error {
	err := o.w.Flush()
	if o.closer != nil {
		if cerr := o.closer.Close(); err == nil {
			err = cerr
		}
		o.closer = nil
	}
	return err
}

type teeSink []Sink

// Tee returns a Sink that writes every event to each sink in order.
// The first error stops the fan-out and is returned.
func Tee(sinks ...Sink) Sink {
	return teeSink(sinks)
}

func (t teeSink) Write(e Event) error {
	for _, s := range t {
		if err := s.Write(e); err != nil {
			return err
		}
	}
	return nil
}
