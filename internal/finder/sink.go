package finder

import "sync"

// resultSink is the shared append-only buffer walk workers push into.
// The capacity check happens under the same lock as the append; the lock
// is held only for that check-and-push, never across filesystem I/O.
// A worker that observes a full sink quits its own subtree, so siblings
// may still land a few entries past the cap; the final truncation in the
// owning policy enforces the externally visible bound.
type resultSink struct {
	mu    sync.Mutex
	cap   int // 0 means unbounded
	items []SearchResult
}

func newResultSink(capacity int) *resultSink {
	return &resultSink{cap: capacity}
}

// push appends r and reports whether the worker should keep going.
func (s *resultSink) push(r SearchResult) WalkState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cap > 0 && len(s.items) >= s.cap {
		return WalkQuit
	}
	s.items = append(s.items, r)
	return WalkContinue
}

// drain returns the collected results. Call only after all workers are done.
func (s *resultSink) drain() []SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.items
	s.items = nil
	if items == nil {
		items = []SearchResult{}
	}
	return items
}
