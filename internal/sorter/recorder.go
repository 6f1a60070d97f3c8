package sorter

import "github.com/roach88/sortscope/internal/ir"

// Recorder performs instrumented operations on an array and records one
// step per operation.
//
// A Recorder returned by Quiet shares the trace of its parent but emits
// steps with Delay=false.
type Recorder struct {
	trace   *ir.Trace
	delay   bool
	discard bool
}

// NewRecorder creates a recorder with an empty trace whose steps are delayed.
func NewRecorder() *Recorder {
	return &Recorder{trace: &ir.Trace{}, delay: true}
}

// NewDiscardRecorder creates a recorder that performs data operations but
// records nothing. Running an algorithm with it is the uninstrumented
// execution of that algorithm.
func NewDiscardRecorder() *Recorder {
	return &Recorder{trace: &ir.Trace{}, delay: true, discard: true}
}

// Quiet returns a view of r whose steps carry Delay=false.
func (r *Recorder) Quiet() *Recorder {
	return &Recorder{trace: r.trace, delay: false, discard: r.discard}
}

// Trace returns the steps recorded so far.
func (r *Recorder) Trace() ir.Trace {
	return *r.trace
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	return len(*r.trace)
}

func (r *Recorder) emit(s ir.Step) {
	if r.discard {
		return
	}
	*r.trace = append(*r.trace, s)
}

// Compare reports whether data[i] <= data[j].
func (r *Recorder) Compare(data []int, i, j int) bool {
	r.emit(ir.Comparison{Pos1: i, Pos2: j, Delay: r.delay})
	return data[i] <= data[j]
}

// Less reports whether data[i] < data[j]. It records the same Comparison
// step as Compare; exchange sorts use it so equal values are never swapped.
func (r *Recorder) Less(data []int, i, j int) bool {
	r.emit(ir.Comparison{Pos1: i, Pos2: j, Delay: r.delay})
	return data[i] < data[j]
}

// Swap exchanges data[i] and data[j].
func (r *Recorder) Swap(data []int, i, j int) {
	data[i], data[j] = data[j], data[i]
	r.emit(ir.Swap{Pos1: i, Pos2: j, Delay: r.delay})
}

// Replace writes height into data[pos].
func (r *Recorder) Replace(data []int, pos, height int) {
	data[pos] = height
	r.emit(ir.Replace{Pos: pos, Height: height, Delay: r.delay})
}

// Mark flags pos. With multiple set the mark joins the current marks
// instead of replacing them.
func (r *Recorder) Mark(pos int, multiple bool) {
	r.emit(ir.Mark{Pos: pos, Multiple: multiple, Delay: r.delay})
}

func (r *Recorder) Unmark() {
	r.emit(ir.Unmark{Delay: r.delay})
}

// Focus highlights the inclusive range [from, to].
func (r *Recorder) Focus(from, to int) {
	r.emit(ir.Focus{From: from, To: to, Delay: r.delay})
}

func (r *Recorder) Unfocus() {
	r.emit(ir.Unfocus{Delay: r.delay})
}

func (r *Recorder) Unreplace() {
	r.emit(ir.Unreplace{Delay: r.delay})
}
