package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/sortscope/internal/ir"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion against the result and
// returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}
	return failures
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertSorted:
		return assertSorted(result.Final)
	case AssertStepCount:
		return assertStepCount(result.Recording.Steps, a.StepCount)
	case AssertFinalEquals:
		return assertFinalEquals(result.Final, a.Values)
	case AssertNoMutations:
		return assertNoMutations(result.Recording.Steps)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertSorted(final []int) error {
	if slices.IsSorted(final) {
		return nil
	}
	return &AssertionError{
		Type:     AssertSorted,
		Expected: "non-decreasing array",
		Actual:   fmt.Sprint(final),
	}
}

func assertStepCount(steps ir.Trace, sc *StepCount) error {
	got := steps.Count()[sc.Kind]
	switch {
	case sc.Count != nil && got != *sc.Count:
		return &AssertionError{
			Type:     AssertStepCount,
			Expected: fmt.Sprintf("%d %s steps", *sc.Count, sc.Kind),
			Actual:   fmt.Sprintf("%d %s steps", got, sc.Kind),
		}
	case sc.Max != nil && got > *sc.Max:
		return &AssertionError{
			Type:     AssertStepCount,
			Expected: fmt.Sprintf("at most %d %s steps", *sc.Max, sc.Kind),
			Actual:   fmt.Sprintf("%d %s steps", got, sc.Kind),
		}
	}
	return nil
}

func assertFinalEquals(final, want []int) error {
	if slices.Equal(final, want) {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalEquals,
		Expected: fmt.Sprint(want),
		Actual:   fmt.Sprint(final),
	}
}

func assertNoMutations(steps ir.Trace) error {
	for i, s := range steps {
		if ir.Mutates(s) {
			return &AssertionError{
				Type:     AssertNoMutations,
				Expected: "no swap or replace steps",
				Actual:   fmt.Sprintf("step %d is %s", i, ir.String(s)),
			}
		}
	}
	return nil
}
