package sorter

// Selection repeatedly selects the minimum of data[i:] and moves it to i.
type Selection struct{}

func (Selection) Name() string { return "selection" }

func (Selection) Execute(data []int, rec *Recorder) {
	quiet := rec.Quiet()
	n := len(data)
	for i := 0; i < n; i++ {
		rec.Focus(i, n-1)
		least := i
		quiet.Mark(least, false)
		for j := i + 1; j < n; j++ {
			if rec.Compare(data, j, least) {
				least = j
				quiet.Mark(least, false)
			}
		}
		if least != i {
			rec.Swap(data, i, least)
		}
	}
}

// Insertion shifts each element left until its predecessor is smaller.
type Insertion struct{}

func (Insertion) Name() string { return "insertion" }

func (Insertion) Execute(data []int, rec *Recorder) {
	gappedInsertion(data, 1, rec)
}

// Shell runs gapped insertion sorts over the 3-smooth gap sequence.
type Shell struct{}

func (Shell) Name() string { return "shell" }

func (Shell) Execute(data []int, rec *Recorder) {
	for _, gap := range Gaps(len(data)) {
		gappedInsertion(data, gap, rec)
	}
}

// Gaps returns every h in [1, n-1] of the form 2^p * 3^q in descending order.
func Gaps(n int) []int {
	var gaps []int
	for h := n - 1; h >= 1; h-- {
		rest := h
		for rest%2 == 0 {
			rest /= 2
		}
		for rest%3 == 0 {
			rest /= 3
		}
		if rest == 1 {
			gaps = append(gaps, h)
		}
	}
	return gaps
}

func gappedInsertion(data []int, gap int, rec *Recorder) {
	quiet := rec.Quiet()
	for i := gap; i < len(data); i++ {
		quiet.Mark(i, false)
		quiet.Focus(0, i)
		for j := i; j-gap >= 0; j -= gap {
			if !rec.Less(data, j, j-gap) {
				break
			}
			rec.Swap(data, j-gap, j)
		}
	}
}
