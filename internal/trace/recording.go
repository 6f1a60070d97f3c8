package trace

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/roach88/sortscope/internal/initiator"
	"github.com/roach88/sortscope/internal/ir"
	"github.com/roach88/sortscope/internal/sorter"
)

// Recording is the immutable result of one initiation.
type Recording struct {
	ID        string
	Initiator string
	Algorithm string
	N         int
	Seed      uint64
	Initial   []int
	Steps     ir.Trace
	Hash      string
}

// RecordOptions names what to record.
type RecordOptions struct {
	Initiator string
	Algorithm string
	N         int
	Seed      uint64

	// Initial, when non-nil, replaces the initiator's output. Initiator is
	// then only a label and N is taken from len(Initial).
	Initial []int
}

// NewRand returns the deterministic source used for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Record resolves the named initiator and algorithm, produces the initial
// array and records the algorithm's trace over a copy of it.
//
// Input-domain errors from the initiator are returned unchanged so callers
// can test them with initiator.IsInputError.
func Record(opts RecordOptions) (*Recording, error) {
	rng := NewRand(opts.Seed)

	initial := slices.Clone(opts.Initial)
	n := opts.N
	if initial == nil {
		gen, err := initiator.Lookup(opts.Initiator, rng)
		if err != nil {
			return nil, err
		}
		if initial, err = gen.Initiate(n); err != nil {
			return nil, err
		}
	} else {
		n = len(initial)
	}

	alg, err := sorter.Lookup(opts.Algorithm, rng)
	if err != nil {
		return nil, err
	}
	steps, _ := sorter.Run(alg, initial)

	return newRecording(opts.Initiator, alg.Name(), n, opts.Seed, initial, steps)
}

func newRecording(initiatorName, algorithmName string, n int, seed uint64, initial []int, steps ir.Trace) (*Recording, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate recording id: %w", err)
	}
	hash, err := ir.TraceHash(initial, steps)
	if err != nil {
		return nil, fmt.Errorf("hash trace: %w", err)
	}
	return &Recording{
		ID:        id.String(),
		Initiator: initiatorName,
		Algorithm: algorithmName,
		N:         n,
		Seed:      seed,
		Initial:   initial,
		Steps:     steps,
		Hash:      hash,
	}, nil
}

// Cursor returns a fresh cursor over the recording.
func (r *Recording) Cursor() *Cursor {
	return NewCursor(r.Initial, r.Steps)
}

// Final returns the array reached after every step has been applied.
func (r *Recording) Final() []int {
	return Apply(r.Initial, r.Steps)
}

// Verify recomputes the trace hash and reports whether it matches Hash.
func (r *Recording) Verify() error {
	hash, err := ir.TraceHash(r.Initial, r.Steps)
	if err != nil {
		return fmt.Errorf("hash trace: %w", err)
	}
	if hash != r.Hash {
		return fmt.Errorf("recording %s: hash %s does not match stored %s", r.ID, hash, r.Hash)
	}
	return nil
}

// Stats summarizes a recording.
type Stats struct {
	Steps        int
	Comparisons  int
	Swaps        int
	Replacements int
	Delayed      int
	ByKind       map[ir.Kind]int
}

// Stats counts the recording's steps by kind.
func (r *Recording) Stats() Stats {
	counts := r.Steps.Count()
	st := Stats{
		Steps:        len(r.Steps),
		Comparisons:  counts[ir.KindComparison],
		Swaps:        counts[ir.KindSwap],
		Replacements: counts[ir.KindReplace],
		ByKind:       counts,
	}
	for _, s := range r.Steps {
		if s.Delayed() {
			st.Delayed++
		}
	}
	return st
}
