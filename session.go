package ctsmon

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/womat/debug"
)

// Session is one monitoring run over a single Source
type Session struct {
	cfg     Config
	cls     Classification
	src     Source
	det     *Detector
	stamper *Stamper
	sink    Sink
	output  io.Closer // Set when the session opened its own Output

	samples uint64

	closeOnce sync.Once
	closeErr  error
}

// NewSession primes a detector on src and, in verbose mode, writes the
// start marker and the initial state to sink. The session owns src from
// here on, including when NewSession fails.
func NewSession(cfg Config, src Source, sink Sink, now func() time.Time) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		src.Close()
		return nil, err
	}

	stamper := NewStamper(cfg.TimeFormat, now)
	s := &Session{
		cfg:     cfg,
		src:     src,
		det:     NewDetector(src, stamper, cfg.Verbose),
		stamper: stamper,
		sink:    sink,
	}

	state, err := s.det.Prime()
	if err != nil {
		src.Close()
		return nil, err
	}
	debug.DebugLog.Printf("%s: initial state %+v", cfg.Device, state)

	if cfg.Verbose {
		ts := stamper.Stamp()
		if err := s.emit(Event{Kind: EventStarted, Timestamp: ts, State: state}); err != nil {
			src.Close()
			return nil, err
		}
		if err := s.emit(Event{Kind: EventInitial, Timestamp: ts, State: state}); err != nil {
			src.Close()
			return nil, err
		}
	}
	return s, nil
}

// Start classifies cfg.Device, opens the preferred Source and starts a
// session writing to sink. A nil sink opens cfg.Output.
func Start(cfg Config, sink Sink) (*Session, error) {
	return start(cfg, sink, NewClassifier(), DefaultBackends())
}

func start(cfg Config, sink Sink, classifier *Classifier, backends Backends) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var output *Output
	if sink == nil {
		out, err := OpenOutput(cfg.Output, cfg.Verbose)
		if err != nil {
			return nil, err
		}
		output = out
		sink = out
	}

	cls := classifier.Classify(cfg.Device)
	debug.DebugLog.Printf("%s: %s", cfg.Device, cls)

	src, err := OpenSource(cfg.Device, cls, backends)
	if err != nil {
		if output != nil {
			output.Close()
		}
		return nil, err
	}

	if cfg.Verbose {
		logBanner(cfg, src.Kind())
	}

	s, err := NewSession(cfg, src, sink, nil)
	if err != nil {
		if output != nil {
			output.Close()
		}
		return nil, err
	}
	s.cls = cls
	if output != nil {
		s.output = output
	}
	return s, nil
}

func logBanner(cfg Config, kind SourceKind) {
	output := cfg.Output
	if output == "" || output == "-" {
		output = "stdout"
	}
	debug.InfoLog.Printf("Device: %s", cfg.Device)
	if cfg.Mode == ModeInterval {
		debug.InfoLog.Printf("Polling interval: %d µs", cfg.Interval.Microseconds())
	}
	debug.InfoLog.Printf("Time format: %s", cfg.TimeFormat)
	debug.InfoLog.Printf("Output: %s", output)
	debug.InfoLog.Printf("Mode: %s (%s)", cfg.Mode, kind)
}

// Config returns the session configuration
func (s *Session) Config() Config {
	return s.cfg
}

// Classification returns the verdict the source was chosen on
func (s *Session) Classification() Classification {
	return s.cls
}

// Kind reports which backend the session reads from
func (s *Session) Kind() SourceKind {
	return s.src.Kind()
}

// State returns the last observed sample
func (s *Session) State() SignalState {
	return s.det.State()
}

// Samples returns the number of ticks taken by Run
func (s *Session) Samples() uint64 {
	return s.samples
}

func (s *Session) emit(e Event) error {
	if err := s.sink.Write(e); err != nil {
		if errors.Is(err, ErrOutput) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	return nil
}

// Close writes the stop marker in verbose mode and releases the source
// and any output the session opened. Only the first call has an effect.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if s.cfg.Verbose {
			ts := s.stamper.Stamp()
			if err := s.emit(Event{Kind: EventStopped, Timestamp: ts, State: s.det.State()}); err != nil {
				errs = append(errs, err)
			}
		}
		if err := s.src.Close(); err != nil {
			errs = append(errs, err)
		}
		if s.output != nil {
			if err := s.output.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%w: %v", ErrOutput, err))
			}
		}
		s.closeErr = errors.Join(errs...)
		debug.DebugLog.Printf("%s: session closed after %d samples", s.cfg.Device, s.samples)
	})
	return s.closeErr
}
