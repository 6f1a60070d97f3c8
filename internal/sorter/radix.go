package sorter

import "slices"

// Radix is least-significant-digit radix sort in base 10. Each pass
// distributes by one digit through a scratch buffer and writes the buffer
// back with one Replace per position.
//
// Digits are read from data directly; negative values are handled by
// offsetting every key by the minimum.
type Radix struct{}

func (Radix) Name() string { return "radix" }

func (Radix) Execute(data []int, rec *Recorder) {
	n := len(data)
	if n < 2 {
		return
	}
	lo, hi := slices.Min(data), slices.Max(data)
	span := hi - lo

	scratch := make([]int, n)
	quiet := rec.Quiet()
	for exp := 1; span/exp > 0; exp *= 10 {
		var count [10]int
		for _, v := range data {
			count[(v-lo)/exp%10]++
		}
		for d := 1; d < 10; d++ {
			count[d] += count[d-1]
		}
		for i := n - 1; i >= 0; i-- {
			d := (data[i] - lo) / exp % 10
			count[d]--
			scratch[count[d]] = data[i]
		}

		rec.Focus(0, n-1)
		for i, v := range scratch {
			rec.Replace(data, i, v)
		}
		quiet.Unreplace()
		quiet.Unfocus()
		if exp > span/10 {
			break
		}
	}
}

// BinaryRadix is most-significant-bit radix exchange sort. Each range is
// partitioned in place by one bit with swaps, then both halves are sorted
// on the next lower bit.
type BinaryRadix struct{}

func (BinaryRadix) Name() string { return "radix-binary" }

func (BinaryRadix) Execute(data []int, rec *Recorder) {
	n := len(data)
	if n < 2 {
		return
	}
	lo := slices.Min(data)
	span := slices.Max(data) - lo
	top := -1
	for span>>(top+1) > 0 {
		top++
	}
	exchange(data, lo, 0, n-1, top, rec)
}

func exchange(data []int, lo, l, r, bit int, rec *Recorder) {
	if l >= r || bit < 0 {
		return
	}
	set := func(i int) bool { return (data[i]-lo)>>bit&1 == 1 }

	rec.Focus(l, r)
	i, j := l, r
	for i <= j {
		for i <= j && !set(i) {
			i++
		}
		for i <= j && set(j) {
			j--
		}
		if i < j {
			rec.Swap(data, i, j)
		}
	}
	exchange(data, lo, l, j, bit-1, rec)
	exchange(data, lo, i, r, bit-1, rec)
}
