package ctsmon

import "fmt"

// Change is one differing line between two samples
type Change struct {
	Signal Signal
	From   bool
	To     bool
}

// Diff compares two samples line by line in CTS, RTS, DSR, DTR order.
// DSR and DTR are only compared when verbose is set.
func Diff(old, next SignalState, verbose bool) []Change {
	var changes []Change
	if old.CTS != next.CTS {
		changes = append(changes, Change{SignalCTS, old.CTS, next.CTS})
	}
	if old.RTS != next.RTS {
		changes = append(changes, Change{SignalRTS, old.RTS, next.RTS})
	}
	if verbose {
		if old.DSR != next.DSR {
			changes = append(changes, Change{SignalDSR, old.DSR, next.DSR})
		}
		if old.DTR != next.DTR {
			changes = append(changes, Change{SignalDTR, old.DTR, next.DTR})
		}
	}
	return changes
}

// Detector holds the last observed state of one Source and turns fresh
// samples into transitions. It is the only writer of that state.
type Detector struct {
	src     Source
	stamper *Stamper
	verbose bool

	last   SignalState
	primed bool
}

// NewDetector returns an unprimed detector
func NewDetector(src Source, stamper *Stamper, verbose bool) *Detector {
	return &Detector{src: src, stamper: stamper, verbose: verbose}
}

// Prime takes the first sample and stores it without comparing.
// It runs once; later calls return the stored state.
func (d *Detector) Prime() (SignalState, error) {
	if d.primed {
		return d.last, nil
	}

	state, err := d.src.Sample()
	if err != nil {
		return SignalState{}, fmt.Errorf("failed to read initial signal state: %w", err)
	}
	d.last = state
	d.primed = true
	return state, nil
}

// State returns the last observed sample
func (d *Detector) State() SignalState {
	return d.last
}

// Tick samples once and returns one transition per changed line.
// The stored state is replaced by the sample even when nothing changed.
// On a sampling error the stored state is left as it was.
func (d *Detector) Tick() ([]Transition, error) {
	if !d.primed {
		return nil, ErrNotPrimed
	}

	next, err := d.src.Sample()
	if err != nil {
		return nil, err
	}

	changes := Diff(d.last, next, d.verbose)
	d.last = next

	if len(changes) == 0 {
		return nil, nil
	}

	ts := d.stamper.Stamp()
	transitions := make([]Transition, len(changes))
	for i, c := range changes {
		transitions[i] = Transition{
			Signal:    c.Signal,
			From:      c.From,
			To:        c.To,
			Timestamp: ts,
		}
	}
	return transitions, nil
}
