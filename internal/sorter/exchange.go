package sorter

// Bubble sweeps adjacent pairs upward and stops after a pass without swaps.
type Bubble struct{}

func (Bubble) Name() string { return "bubble" }

func (Bubble) Execute(data []int, rec *Recorder) {
	for i := len(data) - 1; i > 0; i-- {
		if !bubblePass(data, 0, i, 1, rec) {
			return
		}
	}
}

// Shaker alternates upward and downward bubble passes.
type Shaker struct{}

func (Shaker) Name() string { return "shaker" }

func (Shaker) Execute(data []int, rec *Recorder) {
	lo, hi := 0, len(data)-1
	for lo < hi {
		if !bubblePass(data, lo, hi, 1, rec) {
			return
		}
		hi--
		if !bubblePass(data, hi, lo, -1, rec) {
			return
		}
		lo++
	}
}

// bubblePass moves the element at from toward to one position at a time,
// swapping while it is out of order with its neighbour. dir is +1 for an
// upward pass (from < to) and -1 for a downward pass. It reports whether
// any swap happened.
func bubblePass(data []int, from, to, dir int, rec *Recorder) bool {
	quiet := rec.Quiet()
	swapped := false
	for j := from; j != to; j += dir {
		lo, hi := j, j+dir
		if dir < 0 {
			lo, hi = hi, lo
		}
		if rec.Less(data, hi, lo) {
			quiet.Mark(j, false)
			rec.Swap(data, j, j+dir)
			swapped = true
		} else {
			quiet.Unmark()
		}
	}
	return swapped
}

// Comb compares elements a shrinking gap apart. The gap shrinks by a factor
// of 1.3 each pass and the sort ends once a gap-1 pass makes no swap.
type Comb struct{}

func (Comb) Name() string { return "comb" }

func (Comb) Execute(data []int, rec *Recorder) {
	quiet := rec.Quiet()
	n := len(data)
	gap := n
	done := false
	for !done {
		// floor(gap / 1.3) without floating point
		gap = gap * 10 / 13
		if gap <= 1 {
			gap = 1
			done = true
		}
		for i := 0; i+gap < n; i++ {
			j := i + gap
			if rec.Less(data, j, i) {
				quiet.Mark(i, false)
				rec.Swap(data, i, j)
				done = false
			} else {
				quiet.Unmark()
			}
		}
	}
}
