package sorter

// Merge is top-down recursive mergesort.
type Merge struct{}

func (Merge) Name() string { return "merge" }

func (Merge) Execute(data []int, rec *Recorder) {
	scratch := make([]int, len(data))
	var sortRange func(l, r int)
	sortRange = func(l, r int) {
		if l >= r {
			return
		}
		m := l + (r-l)/2
		sortRange(l, m)
		sortRange(m+1, r)
		merge(data, scratch, l, m, r, rec)
	}
	sortRange(0, len(data)-1)
}

// StraightMerge is bottom-up mergesort over runs of doubling width.
type StraightMerge struct{}

func (StraightMerge) Name() string { return "merge-straight" }

func (StraightMerge) Execute(data []int, rec *Recorder) {
	n := len(data)
	scratch := make([]int, n)
	for width := 1; width < n; width *= 2 {
		for l := 0; l+width < n; l += 2 * width {
			m := l + width - 1
			r := min(l+2*width-1, n-1)
			merge(data, scratch, l, m, r, rec)
		}
	}
}

// NaturalMerge merges the ascending runs already present in the input
// until a single run remains.
type NaturalMerge struct{}

func (NaturalMerge) Name() string { return "merge-natural" }

func (NaturalMerge) Execute(data []int, rec *Recorder) {
	n := len(data)
	scratch := make([]int, n)
	for {
		merged := false
		for l := 0; l < n; {
			m := runEnd(data, l, rec)
			if m == n-1 {
				break
			}
			r := runEnd(data, m+1, rec)
			merge(data, scratch, l, m, r, rec)
			merged = true
			l = r + 1
		}
		if !merged {
			return
		}
	}
}

// runEnd returns the last index of the ascending run starting at l.
func runEnd(data []int, l int, rec *Recorder) int {
	for l+1 < len(data) && rec.Compare(data, l, l+1) {
		l++
	}
	return l
}

// merge combines the sorted ranges data[l..m] and data[m+1..r] through
// scratch and writes the result back with one Replace per position.
// Values move into scratch by reading data directly; every write to data
// goes through rec.
func merge(data, scratch []int, l, m, r int, rec *Recorder) {
	rec.Focus(l, r)
	i, j, k := l, m+1, 0
	for i <= m && j <= r {
		if rec.Compare(data, i, j) {
			scratch[k] = data[i]
			i++
		} else {
			scratch[k] = data[j]
			j++
		}
		k++
	}
	k += copy(scratch[k:], data[i:m+1])
	copy(scratch[k:], data[j:r+1])

	for k := 0; k <= r-l; k++ {
		rec.Replace(data, l+k, scratch[k])
	}
	quiet := rec.Quiet()
	quiet.Unreplace()
	quiet.Unfocus()
}
