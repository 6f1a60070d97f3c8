package sorter

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"golang.org/x/text/cases"

	"github.com/roach88/sortscope/internal/ir"
)

// ErrUnknownAlgorithm is returned by Lookup for an unregistered name.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm sorts data in place using only the primitives of rec.
type Algorithm interface {
	Name() string
	Execute(data []int, rec *Recorder)
}

// Run executes alg on a copy of initial and returns the recorded trace
// together with the final array. initial is not modified.
func Run(alg Algorithm, initial []int) (ir.Trace, []int) {
	data := slices.Clone(initial)
	rec := NewRecorder()
	alg.Execute(data, rec)
	return rec.Trace(), data
}

// RunUninstrumented executes alg on a copy of initial without recording.
func RunUninstrumented(alg Algorithm, initial []int) []int {
	data := slices.Clone(initial)
	alg.Execute(data, NewDiscardRecorder())
	return data
}

type entry struct {
	name  string
	build func(rng *rand.Rand) Algorithm
}

// registry lists algorithms in the order they are offered to users.
var registry = []entry{
	{"selection", func(*rand.Rand) Algorithm { return Selection{} }},
	{"heap", func(*rand.Rand) Algorithm { return Heap{} }},
	{"insertion", func(*rand.Rand) Algorithm { return Insertion{} }},
	{"shell", func(*rand.Rand) Algorithm { return Shell{} }},
	{"bubble", func(*rand.Rand) Algorithm { return Bubble{} }},
	{"shaker", func(*rand.Rand) Algorithm { return Shaker{} }},
	{"comb", func(*rand.Rand) Algorithm { return Comb{} }},
	{"quick", func(*rand.Rand) Algorithm { return NewQuick("quick", PivotLast) }},
	{"quick-median", func(*rand.Rand) Algorithm { return NewQuick("quick-median", PivotMedianOfThree) }},
	{"quick-random", func(rng *rand.Rand) Algorithm { return NewQuick("quick-random", PivotRandom(rng)) }},
	{"merge", func(*rand.Rand) Algorithm { return Merge{} }},
	{"merge-straight", func(*rand.Rand) Algorithm { return StraightMerge{} }},
	{"merge-natural", func(*rand.Rand) Algorithm { return NaturalMerge{} }},
	{"radix", func(*rand.Rand) Algorithm { return Radix{} }},
	{"radix-binary", func(*rand.Rand) Algorithm { return BinaryRadix{} }},
}

// Names returns every registered algorithm name.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	return names
}

// Lookup resolves an algorithm by name, ignoring case.
// rng is required by quick-random and ignored by the others.
func Lookup(name string, rng *rand.Rand) (Algorithm, error) {
	fold := cases.Fold()
	key := fold.String(name)
	for _, e := range registry {
		if fold.String(e.name) == key {
			return e.build(rng), nil
		}
	}
	return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownAlgorithm, name, Names())
}
