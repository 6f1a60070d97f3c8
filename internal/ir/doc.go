// Package ir defines the trace vocabulary shared by every other package:
// the closed set of sorting steps and their canonical encoding.
//
// All other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Step is a sealed interface; a type switch over the eight concrete
//     kinds is exhaustive
//   - Only Swap and Replace mutate data
//   - Canonical JSON (RFC 8785) is the only encoding used for hashing
//   - All JSON keys are lower case
package ir
