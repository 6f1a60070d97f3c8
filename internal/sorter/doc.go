// Package sorter implements the instrumented sorting engine.
//
// Every algorithm works on a private copy of the input and touches it only
// through the Recorder primitives. Each primitive performs its data effect
// and appends exactly one ir.Step in the same call, so iterating the trace
// and iterating the real execution stay synchronized 1:1.
//
// INVARIANTS:
//   - Replaying only Swap and Replace steps over the initial array yields
//     the same final array the algorithm produced
//   - A trace belongs to exactly one Recorder; there is no shared or
//     package-level trace state
//   - Algorithms never write data except through Swap and Replace
//     (reads for digit extraction and scratch copies are allowed)
package sorter
