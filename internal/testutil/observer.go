package testutil

import (
	"sync"
)

// CountingObserver records the last value of each counter notification
// and how often a session finished or failed.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type CountingObserver struct {
	mu          sync.Mutex
	comparisons int
	swaps       int
	replaces    int
	notified    int
	finished    int
	failures    []error

	finishedCh chan struct{}
	failedCh   chan struct{}
}

// NewCountingObserver creates an observer with no notifications.
func NewCountingObserver() *CountingObserver {
	return &CountingObserver{
		finishedCh: make(chan struct{}),
		failedCh:   make(chan struct{}),
	}
}

func (o *CountingObserver) OnComparisonCount(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.comparisons = n
	o.notified++
}

func (o *CountingObserver) OnSwapCount(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.swaps = n
	o.notified++
}

func (o *CountingObserver) OnReplaceCount(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.replaces = n
	o.notified++
}

func (o *CountingObserver) OnFinished() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished++
	if o.finished == 1 {
		close(o.finishedCh)
	}
}

func (o *CountingObserver) OnFailure(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures = append(o.failures, err)
	if len(o.failures) == 1 {
		close(o.failedCh)
	}
}

// Last returns the most recent comparison, swap and replace counts.
func (o *CountingObserver) Last() (comparisons, swaps, replaces int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.comparisons, o.swaps, o.replaces
}

// Notifications returns the number of counter notifications received.
func (o *CountingObserver) Notifications() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.notified
}

// FinishedCount returns how often OnFinished was called.
func (o *CountingObserver) FinishedCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.finished
}

// Failures returns the errors passed to OnFailure.
func (o *CountingObserver) Failures() []error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]error(nil), o.failures...)
}

// Finished is closed on the first OnFinished.
func (o *CountingObserver) Finished() <-chan struct{} {
	return o.finishedCh
}

// Failed is closed on the first OnFailure.
func (o *CountingObserver) Failed() <-chan struct{} {
	return o.failedCh
}
