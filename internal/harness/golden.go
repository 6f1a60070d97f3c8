package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/sortscope/internal/ir"
)

// TraceSnapshot captures a scenario's recording for golden comparison.
// Recording IDs are random and therefore left out.
type TraceSnapshot struct {
	ScenarioName string
	Initiator    string
	Algorithm    string
	N            int
	Initial      []int
	Final        []int
	Counts       map[string]any
	Steps        ir.Trace
}

func snapshotOf(name string, result *Result) TraceSnapshot {
	rec := result.Recording
	return TraceSnapshot{
		ScenarioName: name,
		Initiator:    rec.Initiator,
		Algorithm:    rec.Algorithm,
		N:            rec.N,
		Initial:      rec.Initial,
		Final:        result.Final,
		Counts: map[string]any{
			"comparisons":  result.Counts.Comparisons,
			"swaps":        result.Counts.Swaps,
			"replacements": result.Counts.Replacements,
		},
		Steps: rec.Steps,
	}
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical JSON serialization.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	initial, final, steps := s.Initial, s.Final, s.Steps
	if initial == nil {
		initial = []int{}
	}
	if final == nil {
		final = []int{}
	}
	if steps == nil {
		steps = ir.Trace{}
	}
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"initiator":     s.Initiator,
		"algorithm":     s.Algorithm,
		"n":             s.N,
		"initial":       initial,
		"final":         final,
		"counts":        s.Counts,
		"steps":         steps,
	}
}

// MarshalSnapshot returns the canonical JSON snapshot of a result.
func MarshalSnapshot(name string, result *Result) ([]byte, error) {
	snapshot := snapshotOf(name, result)
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an already computed result against its golden
// file without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
