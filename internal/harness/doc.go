// Package harness runs conformance scenarios for sorting algorithms.
//
// A scenario names an initiator, an algorithm and a size (or an explicit
// initial array) and lists assertions over the outcome. Run records the
// trace, replays it through a playback.Controller one step at a time
// against a recording renderer, checks that the controller's counters and
// the rendered array agree with the recording, and then evaluates the
// scenario's assertions.
//
// RunWithGolden additionally snapshots the recording as canonical JSON
// and compares it with testdata/golden/{name}.golden. To regenerate
// golden files, run:
//
//	go test ./internal/harness -update
package harness
