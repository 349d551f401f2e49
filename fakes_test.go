package ctsmon

import (
	"errors"
	"sync"
)

var errFakeRead = errors.New("fake read failure")

// fakeSource replays a scripted list of samples. Once the script runs out
// the last sample repeats. failAt makes the nth call (1-based) fail.
type fakeSource struct {
	mu      sync.Mutex
	samples []SignalState
	kind    SourceKind
	failAt  int
	calls   int
	closes  int
	onCall  func(n int)
}

var _ Source = (*fakeSource)(nil)

func newFakeSource(samples ...SignalState) *fakeSource {
	return &fakeSource{samples: samples}
}

func (f *fakeSource) Sample() (SignalState, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	hook := f.onCall
	f.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	if f.failAt > 0 && n >= f.failAt {
		return SignalState{}, errFakeRead
	}

	i := n - 1
	if i >= len(f.samples) {
		i = len(f.samples) - 1
	}
	return f.samples[i], nil
}

func (f *fakeSource) Kind() SourceKind {
	return f.kind
}

func (f *fakeSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeSource) Closes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

// recordSink keeps every event it is given
type recordSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recordSink) Write(e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *recordSink) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]string, len(r.events))
	for i, e := range r.events {
		lines[i] = e.String()
	}
	return lines
}

func (r *recordSink) Kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]EventKind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}
