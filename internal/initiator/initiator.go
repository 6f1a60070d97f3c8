// Package initiator produces the arrays that get sorted: permutations of
// 1..n arranged by a named strategy.
package initiator

import (
	"fmt"
	"math/rand/v2"

	"golang.org/x/text/cases"
)

// Initiator produces a permutation of 1..n.
// Content is always the values 1..n; only the arrangement varies.
type Initiator interface {
	Name() string
	Initiate(n int) ([]int, error)
}

// Constructor builds an initiator around a random source.
// Deterministic initiators ignore it.
type Constructor func(rng *rand.Rand) Initiator

type entry struct {
	name  string
	build Constructor
}

// registry lists initiators in the order they are offered to users.
var registry = []entry{
	{"permutation", func(rng *rand.Rand) Initiator { return Permutation{rng: rng} }},
	{"local", func(rng *rand.Rand) Initiator { return Local{rng: rng} }},
	{"transposition", func(rng *rand.Rand) Initiator { return Transposition{rng: rng} }},
	{"reverse", func(*rand.Rand) Initiator { return Reverse{} }},
	{"sorted", func(*rand.Rand) Initiator { return Sorted{} }},
}

// Names returns every registered initiator name.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	return names
}

// Lookup resolves an initiator by name, ignoring case.
// rng must be non-nil when the named initiator is randomized.
func Lookup(name string, rng *rand.Rand) (Initiator, error) {
	// Casers are stateful, so each lookup gets its own.
	fold := cases.Fold()
	key := fold.String(name)
	for _, e := range registry {
		if fold.String(e.name) == key {
			return e.build(rng), nil
		}
	}
	return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownInitiator, name, Names())
}

// ascending returns 1..n.
func ascending(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i + 1
	}
	return data
}

// Permutation returns a uniformly random permutation.
type Permutation struct {
	rng *rand.Rand
}

func (Permutation) Name() string { return "permutation" }

func (p Permutation) Initiate(n int) ([]int, error) {
	if err := checkSize(p.Name(), n, 0); err != nil {
		return nil, err
	}
	data := ascending(n)
	p.rng.Shuffle(n, func(i, j int) { data[i], data[j] = data[j], data[i] })
	return data, nil
}

// Reverse returns n..1.
type Reverse struct{}

func (Reverse) Name() string { return "reverse" }

func (r Reverse) Initiate(n int) ([]int, error) {
	if err := checkSize(r.Name(), n, 0); err != nil {
		return nil, err
	}
	data := make([]int, n)
	for i := range data {
		data[i] = n - i
	}
	return data, nil
}

// Transposition returns 1..n with exactly two distinct positions exchanged.
type Transposition struct {
	rng *rand.Rand
}

func (Transposition) Name() string { return "transposition" }

func (t Transposition) Initiate(n int) ([]int, error) {
	if err := checkSize(t.Name(), n, 2); err != nil {
		return nil, err
	}
	// pos1 in [0, n-2], pos2 in [pos1+1, n-1]
	pos1 := t.rng.IntN(n - 1)
	pos2 := pos1 + 1 + t.rng.IntN(n-pos1-1)

	data := ascending(n)
	data[pos1], data[pos2] = data[pos2], data[pos1]
	return data, nil
}

// Local returns 1..n with one contiguous window of length floor(n/r),
// r uniform in [2, 6], shuffled in place.
type Local struct {
	rng *rand.Rand
}

func (Local) Name() string { return "local" }

func (l Local) Initiate(n int) ([]int, error) {
	if err := checkSize(l.Name(), n, 2); err != nil {
		return nil, err
	}
	length := n / (2 + l.rng.IntN(5))
	pos := l.rng.IntN(n - length + 1)

	data := ascending(n)
	window := data[pos : pos+length]
	l.rng.Shuffle(len(window), func(i, j int) { window[i], window[j] = window[j], window[i] })
	return data, nil
}

// Sorted returns 1..n, the best case for adaptive algorithms.
type Sorted struct{}

func (Sorted) Name() string { return "sorted" }

func (s Sorted) Initiate(n int) ([]int, error) {
	if err := checkSize(s.Name(), n, 0); err != nil {
		return nil, err
	}
	return ascending(n), nil
}
