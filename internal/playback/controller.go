package playback

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/sortscope/internal/trace"
)

// DefaultDelay is the pause after each delayed step in the timed loop.
const DefaultDelay = 50 * time.Millisecond

// State is the lifecycle state of a Controller.
type State int

const (
	// Idle means no trace has been initiated.
	Idle State = iota
	// Ready means a trace is bound and no step has been applied.
	Ready
	// Running means the timed loop owns the cursor.
	Running
	// Paused means the session has started and is not running.
	Paused
	// Finished means every step has been applied.
	Finished
	// Failed means a step application failed. Only Initiate leaves it.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Controller replays a trace cursor against a Renderer.
type Controller struct {
	renderer Renderer
	observer Observer
	logger   *slog.Logger

	// ctrl serializes control operations.
	ctrl sync.Mutex

	// mu guards everything below; the timed loop holds it while applying
	// a step.
	mu     sync.Mutex
	cursor *trace.Cursor
	state  State
	counts Counts
	delay  time.Duration
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay sets the initial inter-step delay. Negative values mean zero.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = max(d, 0)
	}
}

// WithObserver sets the observer notified of counter changes.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger sets the logger for state transitions and failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates an idle Controller that draws on r.
func New(r Renderer, opts ...Option) *Controller {
	c := &Controller{
		renderer: r,
		observer: NopObserver{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		delay:    DefaultDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initiate binds a new cursor. A running loop is stopped and joined first.
// Counters reset to zero and the renderer is rebuilt from the cursor's
// initial array. An empty trace finishes immediately.
func (c *Controller) Initiate(cursor *trace.Cursor) {
	c.ctrl.Lock()
	defer c.ctrl.Unlock()

	c.stopAndJoin()

	c.mu.Lock()
	c.cursor = cursor
	c.counts = Counts{}
	c.state = Ready
	c.renderer.Build(cursor.Initial())
	c.observer.OnComparisonCount(0)
	c.observer.OnSwapCount(0)
	c.observer.OnReplaceCount(0)
	empty := !cursor.NextAvailable()
	if empty {
		c.state = Finished
	}
	c.mu.Unlock()

	c.logger.Debug("session initiated", "steps", cursor.Len())
	if empty {
		c.observer.OnFinished()
	}
}

// Start begins the timed loop. It is a no-op while already running.
func (c *Controller) Start() error {
	c.ctrl.Lock()
	defer c.ctrl.Unlock()

	c.mu.Lock()
	if err := c.checkStartable(); err != nil || c.state == Running {
		c.mu.Unlock()
		return err
	}
	prev := c.done
	c.mu.Unlock()

	// a paused loop may still be leaving its sleep
	if prev != nil {
		<-prev
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.mu.Lock()
	c.cancel = cancel
	c.done = done
	c.state = Running
	c.mu.Unlock()

	c.logger.Debug("timed loop started")
	go c.loop(ctx, done)
	return nil
}

func (c *Controller) checkStartable() error {
	switch {
	case c.cursor == nil:
		return ErrNoSession
	case c.state == Failed:
		return ErrLoopFailure
	case c.state == Running:
		return nil
	case !c.cursor.NextAvailable():
		return newControlError(CodeExhausted, "trace has no next step", trace.ErrNoNextStep)
	}
	return nil
}

// Pause asks the timed loop to stop. No step is applied after Pause
// returns, although the loop goroutine may still be exiting; use Wait to
// join it. Pause is a no-op unless the loop is running.
func (c *Controller) Pause() {
	c.ctrl.Lock()
	defer c.ctrl.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Running {
		return
	}
	c.cancel()
	c.state = Paused
	c.logger.Debug("timed loop paused", "index", c.cursor.Index())
}

// Step applies exactly one step. The step's delay flag is ignored.
func (c *Controller) Step() error {
	c.ctrl.Lock()
	defer c.ctrl.Unlock()

	c.mu.Lock()
	switch {
	case c.cursor == nil:
		c.mu.Unlock()
		return ErrNoSession
	case c.state == Running:
		c.mu.Unlock()
		return ErrRunning
	case c.state == Failed:
		c.mu.Unlock()
		return ErrLoopFailure
	case !c.cursor.NextAvailable():
		c.mu.Unlock()
		return newControlError(CodeExhausted, "trace has no next step", trace.ErrNoNextStep)
	}
	_, finished, err := c.advance()
	if err == nil && !finished {
		c.state = Paused
	}
	c.mu.Unlock()

	return c.report(finished, err)
}

// SetDelay changes the inter-step delay. It takes effect from the next
// sleep of the timed loop. Negative values mean zero.
func (c *Controller) SetDelay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delay = max(d, 0)
}

// Delay returns the current inter-step delay.
func (c *Controller) Delay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delay
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Counts returns the current counters.
func (c *Controller) Counts() Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts
}

// Index returns the cursor index, or -1 without a session.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor == nil {
		return -1
	}
	return c.cursor.Index()
}

// Applied returns how many steps of the current session have been applied.
func (c *Controller) Applied() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor == nil {
		return 0
	}
	return c.cursor.Index() + 1
}

// Wait blocks until the timed loop, if any, has exited.
func (c *Controller) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Close stops the timed loop and waits for it to exit.
func (c *Controller) Close() {
	c.ctrl.Lock()
	defer c.ctrl.Unlock()
	c.stopAndJoin()
}

// stopAndJoin cancels a running loop and waits for it. Called with c.ctrl
// held.
func (c *Controller) stopAndJoin() {
	c.mu.Lock()
	if c.state == Running {
		c.cancel()
		c.state = Paused
	}
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// loop is the timed loop. It is the only advancer of the cursor while the
// state is Running.
func (c *Controller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		r := c.tick(ctx)
		switch {
		case r.err != nil:
			_ = c.report(false, r.err)
			return
		case r.finished:
			_ = c.report(true, nil)
			return
		case r.cancelled:
			return
		}
		if !r.delayed || r.wait == 0 {
			continue
		}

		timer := time.NewTimer(r.wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

type tickResult struct {
	delayed   bool
	finished  bool
	cancelled bool
	wait      time.Duration
	err       error
}

// tick applies one step unless ctx was cancelled. The cancellation check
// and the step happen under c.mu, so Pause and tick never interleave.
func (c *Controller) tick(ctx context.Context) tickResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx.Err() != nil {
		return tickResult{cancelled: true}
	}
	delayed, finished, err := c.advance()
	return tickResult{delayed: delayed, finished: finished, wait: c.delay, err: err}
}

// advance applies the next step. A panic from the renderer or observer is
// recovered and moves the session to Failed. Called with c.mu held.
func (c *Controller) advance() (delayed, finished bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newControlError(CodeLoopFailure, "step application panicked", fmt.Errorf("%v", r))
		}
		if err != nil {
			c.state = Failed
			c.cancelLoop()
			finished = false
		}
	}()

	s, err := c.cursor.Next()
	if err != nil {
		return false, false, newControlError(CodeExhausted, "trace has no next step", err)
	}
	delayed, err = c.apply(s)
	if err != nil {
		return false, false, newControlError(CodeLoopFailure, fmt.Sprintf("step %d", c.cursor.Index()), err)
	}
	if !c.cursor.NextAvailable() {
		c.clear()
		c.state = Finished
		c.cancelLoop()
		return delayed, true, nil
	}
	return delayed, false, nil
}

func (c *Controller) cancelLoop() {
	if c.cancel != nil {
		c.cancel()
	}
}

// report notifies the observer of a finished session or a failure.
// Called without c.mu held.
func (c *Controller) report(finished bool, err error) error {
	if err != nil {
		if IsLoopFailure(err) {
			c.logger.Error("step application failed", "error", err)
			c.observer.OnFailure(err)
		}
		return err
	}
	if finished {
		c.logger.Debug("session finished")
		c.observer.OnFinished()
	}
	return nil
}
