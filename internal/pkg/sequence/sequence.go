package sequence

import "sync/atomic"

// Sequence hands out monotonically increasing document numbers. It is safe for
// concurrent use and is meant to be owned and injected by the composition root
// rather than living as package-level state.
type Sequence struct {
	next atomic.Int64
}

// New returns a sequence whose first Next call yields start.
func New(start int64) *Sequence {
	s := &Sequence{}
	s.next.Store(start)
	return s
}

// Next returns the current number and advances the sequence.
func (s *Sequence) Next() int64 {
	return s.next.Add(1) - 1
}

// Peek returns the number the next call to Next would yield.
func (s *Sequence) Peek() int64 {
	return s.next.Load()
}
