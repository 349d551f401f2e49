package ctsmon

import (
	"context"
	"time"
)

// Run samples the source until ctx is cancelled or an error occurs.
// Every detected transition is written to the sink as soon as it is seen.
// Cancellation returns nil. A sampling error or a sink error ends the loop
// and is returned; the caller still owns Close.
func (s *Session) Run(ctx context.Context) error {
	var timer *time.Timer
	if s.cfg.Mode == ModeInterval {
		timer = time.NewTimer(s.cfg.Interval)
		defer timer.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := s.tick(); err != nil {
			return err
		}

		if timer == nil {
			continue
		}

		timer.Reset(s.cfg.Interval)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

func (s *Session) tick() error {
	transitions, err := s.det.Tick()
	if err != nil {
		return err
	}
	s.samples++

	state := s.det.State()
	for _, t := range transitions {
		if err := s.emit(Event{Kind: EventTransition, Timestamp: t.Timestamp, State: state, Transition: t}); err != nil {
			return err
		}
	}
	return nil
}
