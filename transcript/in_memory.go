package transcript

import "sync"

// InMemorySink keeps every snapshot in process memory. Best suited for tests
// and ephemeral demo runs.
type InMemorySink struct {
	mu       sync.Mutex
	records  []Unit
	final    *Unit
	finished bool
}

// NewInMemorySink constructs an empty in-memory sink.
func NewInMemorySink() *InMemorySink { return &InMemorySink{} }

// Record implements Sink.
func (s *InMemorySink) Record(unit Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, unit)
	return nil
}

// Finish implements Sink.
func (s *InMemorySink) Finish(unit Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.final = &unit
	s.finished = true
	return nil
}

// Records returns a copy of all recorded snapshots.
func (s *InMemorySink) Records() []Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Unit, len(s.records))
	copy(out, s.records)
	return out
}

// Final returns the completion snapshot, or nil if Finish was never called.
func (s *InMemorySink) Final() *Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.final == nil {
		return nil
	}
	f := *s.final
	return &f
}

// Finished reports whether Finish was called.
func (s *InMemorySink) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}
