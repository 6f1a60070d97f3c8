// Package trace holds recorded sorting runs and the cursor used to walk
// them.
//
// A Recording is the immutable output of one initiation: the initial array
// produced by an initiator and the steps an algorithm emitted while sorting
// a copy of it. A Cursor walks a recording's steps forward one at a time.
// Stepping backward is inspection only and never undoes a step's effect.
package trace
