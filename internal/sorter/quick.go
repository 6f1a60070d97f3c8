package sorter

import "math/rand/v2"

// PivotStrategy moves the chosen pivot of data[l..r] to position r.
type PivotStrategy func(data []int, l, r int, rec *Recorder)

// PivotLast uses data[r] as the pivot.
func PivotLast(data []int, l, r int, rec *Recorder) {}

// PivotMedianOfThree orders data[l], data[mid] and data[r] with at most
// three conditional swaps so that their median ends up at r.
func PivotMedianOfThree(data []int, l, r int, rec *Recorder) {
	if r-l < 2 {
		return
	}
	mid := l + (r-l)/2
	quiet := rec.Quiet()
	quiet.Mark(l, false)
	quiet.Mark(mid, true)
	quiet.Mark(r, true)
	if rec.Less(data, mid, l) {
		rec.Swap(data, l, mid)
	}
	if rec.Less(data, r, l) {
		rec.Swap(data, l, r)
	}
	if rec.Less(data, mid, r) {
		rec.Swap(data, mid, r)
	}
	quiet.Unmark()
}

// PivotRandom picks a uniformly random position in [l, r] and swaps it to r.
// A nil rng falls back to the global source.
func PivotRandom(rng *rand.Rand) PivotStrategy {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	return func(data []int, l, r int, rec *Recorder) {
		p := l + intN(r-l+1)
		if p != r {
			rec.Swap(data, p, r)
		}
	}
}

// Quick is quicksort parameterized by its pivot selection.
type Quick struct {
	name  string
	pivot PivotStrategy
}

// NewQuick returns a quicksort named name that selects pivots with pivot.
func NewQuick(name string, pivot PivotStrategy) Quick {
	if pivot == nil {
		pivot = PivotLast
	}
	return Quick{name: name, pivot: pivot}
}

func (q Quick) Name() string { return q.name }

func (q Quick) Execute(data []int, rec *Recorder) {
	q.sort(data, 0, len(data)-1, rec)
}

// sort recurses on the left partition and loops on the right one. The step
// order is the same as recursing on both.
func (q Quick) sort(data []int, l, r int, rec *Recorder) {
	for r > l {
		rec.Focus(l, r)
		q.pivot(data, l, r, rec)
		p := r
		rec.Mark(p, false)

		i, j := l-1, r
		for i < j {
			for i < j {
				i++
				if rec.Compare(data, p, i) {
					break
				}
			}
			for i < j {
				j--
				if rec.Compare(data, j, p) {
					break
				}
			}
			if i < j {
				rec.Swap(data, i, j)
			}
		}
		if i != p {
			rec.Swap(data, i, p)
		}

		q.sort(data, l, i-1, rec)
		l = i + 1
	}
}
