package testutil

import "sync"

// SeedSequence yields 1, 2, 3, ... as initiation seeds.
//
// It can be reset so a scenario initiated several times sees the same
// seeds and therefore the same recordings.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SeedSequence struct {
	mu   sync.Mutex
	seed uint64
}

// NewSeedSequence creates a sequence whose first Next returns 1.
func NewSeedSequence() *SeedSequence {
	return &SeedSequence{}
}

// Next increments and returns the next seed.
func (s *SeedSequence) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed++
	return s.seed
}

// Current returns the last seed handed out, or 0.
func (s *SeedSequence) Current() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// Reset restarts the sequence. The next call to Next returns 1.
func (s *SeedSequence) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = 0
}
