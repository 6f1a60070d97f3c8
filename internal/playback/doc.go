// Package playback replays a recorded trace against a Renderer.
//
// A Controller owns at most one background goroutine, the timed loop,
// which applies steps in trace order and sleeps for the configured delay
// after every delayed step. The foreground may pause the loop, change the
// delay, or apply single steps while the loop is not running.
//
// Thread-safety model:
//   - All Controller methods are safe from any goroutine and are
//     serialized against each other.
//   - Renderer calls and counter notifications are made with the
//     controller's state lock held, so they never overlap and must not
//     call back into the Controller.
//   - OnFinished and OnFailure are called after the lock is released.
//
// INVARIANTS:
//   - Steps are applied in trace order, one at a time.
//   - No step is applied after Pause returns.
//   - Counts equal the number of applied steps of each mutating or
//     comparing kind.
//   - OnFinished fires exactly once per initiated session.
package playback
