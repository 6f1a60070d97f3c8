package sorter

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortscope/internal/initiator"
	"github.com/roach88/sortscope/internal/ir"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func initiate(t *testing.T, name string, seed uint64, n int) []int {
	t.Helper()
	gen, err := initiator.Lookup(name, newRand(seed))
	require.NoError(t, err)
	data, err := gen.Initiate(n)
	require.NoError(t, err)
	return data
}

func allAlgorithms(t *testing.T) []Algorithm {
	t.Helper()
	var algs []Algorithm
	for _, name := range Names() {
		alg, err := Lookup(name, newRand(7))
		require.NoError(t, err)
		algs = append(algs, alg)
	}
	return algs
}

func TestAllAlgorithms_SortEveryInitiator(t *testing.T) {
	for _, alg := range allAlgorithms(t) {
		for _, initName := range initiator.Names() {
			for _, n := range []int{2, 3, 10, 33} {
				initial := initiate(t, initName, uint64(n), n)

				steps, final := Run(alg, initial)
				replayed := ir.Replay(initial, steps)

				assert.True(t, slices.IsSorted(replayed),
					"%s/%s n=%d: replay not sorted: %v", alg.Name(), initName, n, replayed)
				assert.Equal(t, final, replayed,
					"%s/%s n=%d: replay differs from instrumented run", alg.Name(), initName, n)
			}
		}
	}
}

func TestAllAlgorithms_ReplayMatchesUninstrumented(t *testing.T) {
	initial := initiate(t, "permutation", 42, 50)

	for _, alg := range allAlgorithms(t) {
		steps, _ := Run(alg, initial)
		want := RunUninstrumented(alg, initial)

		// quick-random draws from its source, so rebuild it for a matching run
		if alg.Name() == "quick-random" {
			recorded, err := Lookup("quick-random", newRand(9))
			require.NoError(t, err)
			steps, _ = Run(recorded, initial)
			plain, err := Lookup("quick-random", newRand(9))
			require.NoError(t, err)
			want = RunUninstrumented(plain, initial)
		}

		assert.Equal(t, want, ir.Replay(initial, steps), alg.Name())
	}
}

func TestAllAlgorithms_PreserveMultiset(t *testing.T) {
	initial := []int{3, 1, 3, 2, 1, 3, 2, 0, 0, 5}
	want := slices.Sorted(slices.Values(initial))

	for _, alg := range allAlgorithms(t) {
		steps, final := Run(alg, initial)
		assert.Equal(t, want, final, alg.Name())
		assert.Equal(t, want, ir.Replay(initial, steps), alg.Name())
	}
	assert.Equal(t, []int{3, 1, 3, 2, 1, 3, 2, 0, 0, 5}, initial, "Run must not modify its input")
}

func TestAllAlgorithms_NegativeValues(t *testing.T) {
	initial := []int{-5, 3, 0, -1, 12, -40, 7}
	want := slices.Sorted(slices.Values(initial))

	for _, alg := range allAlgorithms(t) {
		_, final := Run(alg, initial)
		assert.Equal(t, want, final, alg.Name())
	}
}

func TestAllAlgorithms_DegenerateSizes(t *testing.T) {
	for _, alg := range allAlgorithms(t) {
		for _, initial := range [][]int{{}, {1}} {
			steps, final := Run(alg, initial)
			assert.Equal(t, initial, final, alg.Name())
			assert.Zero(t, steps.Count()[ir.KindSwap], alg.Name())
			assert.Zero(t, steps.Count()[ir.KindReplace], alg.Name())
		}
	}
}

func TestEarlyExit_SortedInputHasNoMutations(t *testing.T) {
	initial := initiate(t, "sorted", 0, 20)

	for _, name := range []string{"bubble", "shaker", "comb", "insertion", "shell"} {
		alg, err := Lookup(name, nil)
		require.NoError(t, err)

		steps, _ := Run(alg, initial)
		counts := steps.Count()
		assert.Zero(t, counts[ir.KindSwap], name)
		assert.Zero(t, counts[ir.KindReplace], name)
	}
}

func TestEarlyExit_SortedInputBestCaseComparisons(t *testing.T) {
	const n = 20
	initial := initiate(t, "sorted", 0, n)

	for _, name := range []string{"bubble", "shaker", "insertion", "merge-natural"} {
		alg, err := Lookup(name, nil)
		require.NoError(t, err)

		steps, final := Run(alg, initial)
		counts := steps.Count()
		assert.Equal(t, n-1, counts[ir.KindComparison], name)
		assert.Zero(t, counts[ir.KindSwap], name)
		assert.Zero(t, counts[ir.KindReplace], name)
		assert.Equal(t, initial, final, name)
	}
}

func TestBubble_SortedFiveIsOnePass(t *testing.T) {
	steps, final := Run(Bubble{}, []int{1, 2, 3, 4, 5})

	want := ir.Trace{
		ir.Comparison{Pos1: 1, Pos2: 0, Delay: true},
		ir.Unmark{},
		ir.Comparison{Pos1: 2, Pos2: 1, Delay: true},
		ir.Unmark{},
		ir.Comparison{Pos1: 3, Pos2: 2, Delay: true},
		ir.Unmark{},
		ir.Comparison{Pos1: 4, Pos2: 3, Delay: true},
		ir.Unmark{},
	}
	assert.Equal(t, want, steps)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, final)
}

func TestBubble_SwapIsPrecededByQuietMark(t *testing.T) {
	steps, _ := Run(Bubble{}, []int{2, 1})

	want := ir.Trace{
		ir.Comparison{Pos1: 1, Pos2: 0, Delay: true},
		ir.Mark{Pos: 0},
		ir.Swap{Pos1: 0, Pos2: 1, Delay: true},
	}
	assert.Equal(t, want, steps)
}

func TestSelection_ReverseFour(t *testing.T) {
	initial := initiate(t, "reverse", 0, 4)
	require.Equal(t, []int{4, 3, 2, 1}, initial)

	steps, final := Run(Selection{}, initial)
	counts := steps.Count()

	assert.Equal(t, []int{1, 2, 3, 4}, final)
	assert.Equal(t, 6, counts[ir.KindComparison])
	assert.Equal(t, 2, counts[ir.KindSwap])
	assert.Equal(t, 4, counts[ir.KindFocus])
	assert.Equal(t, ir.Focus{From: 0, To: 3, Delay: true}, steps[0])
	assert.Equal(t, ir.Mark{Pos: 0}, steps[1])
}

func TestInsertion_TranspositionIsLinear(t *testing.T) {
	const n = 10
	initial := initiate(t, "transposition", 3, n)

	var moved []int
	for i, v := range initial {
		if v != i+1 {
			moved = append(moved, i)
		}
	}
	require.Len(t, moved, 2)

	steps, final := Run(Insertion{}, initial)
	counts := steps.Count()

	assert.True(t, slices.IsSorted(final))
	assert.LessOrEqual(t, counts[ir.KindComparison], 3*n)
	for _, s := range steps {
		if sw, ok := s.(ir.Swap); ok {
			assert.GreaterOrEqual(t, sw.Pos1, moved[0])
			assert.LessOrEqual(t, sw.Pos2, moved[1])
		}
	}
}

func TestComb_TerminatesWithDuplicates(t *testing.T) {
	steps, final := Run(Comb{}, []int{2, 2, 1, 1, 2, 1})

	assert.Equal(t, []int{1, 1, 1, 2, 2, 2}, final)
	assert.NotEmpty(t, steps)
}

func TestQuick_PivotIsMarkedAfterFocus(t *testing.T) {
	steps, _ := Run(NewQuick("quick", PivotLast), []int{2, 3, 1})

	require.GreaterOrEqual(t, len(steps), 2)
	assert.Equal(t, ir.Focus{From: 0, To: 2, Delay: true}, steps[0])
	assert.Equal(t, ir.Mark{Pos: 2, Delay: true}, steps[1])
}

func TestPivotMedianOfThree_MovesMedianToEnd(t *testing.T) {
	cases := [][]int{
		{1, 2, 3},
		{1, 3, 2},
		{2, 1, 3},
		{2, 3, 1},
		{3, 1, 2},
		{3, 2, 1},
	}
	for _, data := range cases {
		rec := NewRecorder()
		PivotMedianOfThree(data, 0, 2, rec)

		assert.Equal(t, 2, data[2], "median should end at r")
		assert.LessOrEqual(t, rec.Trace().Count()[ir.KindSwap], 3)
	}
}

func TestPivotRandom_StaysInRange(t *testing.T) {
	pivot := PivotRandom(newRand(1))
	for range 50 {
		data := []int{10, 20, 30, 40, 50}
		rec := NewRecorder()
		pivot(data, 1, 3, rec)

		assert.Equal(t, 10, data[0])
		assert.Equal(t, 50, data[4])
		assert.ElementsMatch(t, []int{20, 30, 40}, data[1:4])
	}
}

func TestMerge_WritesThroughReplace(t *testing.T) {
	steps, final := Run(Merge{}, []int{2, 1})

	want := ir.Trace{
		ir.Focus{From: 0, To: 1, Delay: true},
		ir.Comparison{Pos1: 0, Pos2: 1, Delay: true},
		ir.Replace{Pos: 0, Height: 1, Delay: true},
		ir.Replace{Pos: 1, Height: 2, Delay: true},
		ir.Unreplace{},
		ir.Unfocus{},
	}
	assert.Equal(t, want, steps)
	assert.Equal(t, []int{1, 2}, final)
}

func TestNaturalMerge_SortedInputOnlyScans(t *testing.T) {
	steps, _ := Run(NaturalMerge{}, []int{1, 2, 3, 4})

	counts := steps.Count()
	assert.Equal(t, 3, counts[ir.KindComparison])
	assert.Zero(t, counts[ir.KindReplace])
}

func TestRadix_NoComparisons(t *testing.T) {
	steps, final := Run(Radix{}, []int{170, 45, 75, 90, 802, 24, 2, 66})

	assert.Equal(t, []int{2, 24, 45, 66, 75, 90, 170, 802}, final)
	assert.Zero(t, steps.Count()[ir.KindComparison])
	assert.Equal(t, 3*8, steps.Count()[ir.KindReplace])
}

func TestRecorder_QuietSharesTrace(t *testing.T) {
	rec := NewRecorder()
	quiet := rec.Quiet()

	rec.Focus(0, 1)
	quiet.Mark(1, true)

	assert.Equal(t, ir.Trace{
		ir.Focus{From: 0, To: 1, Delay: true},
		ir.Mark{Pos: 1, Multiple: true},
	}, rec.Trace())
	assert.Equal(t, 2, quiet.Len())
}

func TestDiscardRecorder_RecordsNothing(t *testing.T) {
	rec := NewDiscardRecorder()
	data := []int{2, 1}

	assert.False(t, rec.Compare(data, 0, 1))
	rec.Swap(data, 0, 1)

	assert.Equal(t, []int{1, 2}, data)
	assert.Zero(t, rec.Len())
}

func TestGaps(t *testing.T) {
	assert.Equal(t, []int{9, 8, 6, 4, 3, 2, 1}, Gaps(10))
	assert.Equal(t, []int{1}, Gaps(2))
	assert.Empty(t, Gaps(1))
}

func TestLookup(t *testing.T) {
	alg, err := Lookup("Quick-Median", nil)
	require.NoError(t, err)
	assert.Equal(t, "quick-median", alg.Name())

	_, err = Lookup("bogo", nil)
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
	assert.Contains(t, err.Error(), "bogo")
}

func TestNames_Registered(t *testing.T) {
	names := Names()
	assert.Len(t, names, 15)
	assert.Equal(t, "selection", names[0])
	assert.Contains(t, names, "radix-binary")
}
