package sorter

// Heap builds a max-heap in place and repeatedly moves its root behind
// the shrinking heap.
type Heap struct{}

func (Heap) Name() string { return "heap" }

func (Heap) Execute(data []int, rec *Recorder) {
	n := len(data)
	if n < 2 {
		return
	}
	rec.Focus(0, n-1)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(data, i, n, rec)
	}
	for end := n - 1; end > 0; end-- {
		rec.Swap(data, 0, end)
		if end > 1 {
			rec.Focus(0, end-1)
		}
		siftDown(data, 0, end, rec)
	}
	quiet := rec.Quiet()
	quiet.Unmark()
	quiet.Unfocus()
}

// siftDown restores the heap property below root within data[:size].
func siftDown(data []int, root, size int, rec *Recorder) {
	quiet := rec.Quiet()
	quiet.Mark(root, false)
	for {
		child := 2*root + 1
		if child >= size {
			return
		}
		if child+1 < size && rec.Less(data, child, child+1) {
			child++
		}
		if !rec.Less(data, root, child) {
			return
		}
		rec.Swap(data, root, child)
		root = child
		quiet.Mark(root, false)
	}
}
