package playback

import (
	"math/rand/v2"
	"sync"

	"github.com/roach88/sortscope/internal/trace"
)

// Session initiates a Controller from initiator and algorithm names and
// remembers the last recording.
type Session struct {
	Controller *Controller

	mu        sync.Mutex
	seeds     func() uint64
	recording *trace.Recording
}

// NewSession wraps c. seeds supplies one seed per initiation; nil draws
// from the global random source.
func NewSession(c *Controller, seeds func() uint64) *Session {
	if seeds == nil {
		seeds = rand.Uint64
	}
	return &Session{Controller: c, seeds: seeds}
}

// FixedSeed returns a seed source that always yields seed.
func FixedSeed(seed uint64) func() uint64 {
	return func() uint64 { return seed }
}

// InitiateNamed records a new trace and binds it to the controller.
// Errors from the initiator or algorithm lookup are returned before the
// controller is touched, so the previous session stays displayed.
func (s *Session) InitiateNamed(initiatorName, algorithmName string, n int) (*trace.Recording, error) {
	rec, err := trace.Record(trace.RecordOptions{
		Initiator: initiatorName,
		Algorithm: algorithmName,
		N:         n,
		Seed:      s.nextSeed(),
	})
	if err != nil {
		return nil, err
	}
	s.InitiateRecording(rec)
	return rec, nil
}

// InitiateRecording binds an existing recording to the controller.
func (s *Session) InitiateRecording(rec *trace.Recording) {
	s.mu.Lock()
	s.recording = rec
	s.mu.Unlock()
	s.Controller.Initiate(rec.Cursor())
}

// Recording returns the recording bound last, or nil.
func (s *Session) Recording() *trace.Recording {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

func (s *Session) nextSeed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seeds()
}
