package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sortscope/internal/config"
	"github.com/roach88/sortscope/internal/ir"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Initiator names the initial array generator. With Initial set it is
	// only a label.
	Initiator string `yaml:"initiator"`

	// Algorithm names the sorting algorithm under test.
	Algorithm string `yaml:"algorithm"`

	// N is the array size passed to the initiator.
	N int `yaml:"n,omitempty"`

	// Seed makes randomized initiators and pivots reproducible.
	Seed uint64 `yaml:"seed,omitempty"`

	// Initial overrides the initiator's output when present.
	Initial []int `yaml:"initial,omitempty"`

	// Assertions validate the recorded trace and the final array.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates the outcome of a scenario.
type Assertion struct {
	// Type specifies the assertion type:
	// - "sorted": the final array is non-decreasing
	// - "step_count": steps of one kind occur exactly Count or at most Max times
	// - "final_equals": the final array equals Values
	// - "no_mutations": the trace contains no swap or replace step
	Type string `yaml:"type"`

	// StepCount is used by step_count.
	StepCount *StepCount `yaml:"step_count,omitempty"`

	// Values is used by final_equals.
	Values []int `yaml:"values,omitempty"`
}

// StepCount bounds the number of steps of one kind.
type StepCount struct {
	Kind  ir.Kind `yaml:"kind"`
	Count *int    `yaml:"count,omitempty"`
	Max   *int    `yaml:"max,omitempty"`
}

// Assertion type constants.
const (
	AssertSorted      = "sorted"
	AssertStepCount   = "step_count"
	AssertFinalEquals = "final_equals"
	AssertNoMutations = "no_mutations"
)

// LoadScenario reads a scenario YAML file, validates it against the
// scenario schema and decodes it. Unknown fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario validates and decodes a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	schema, err := config.LoadSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateYAML(config.DefScenario, data); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, ordered by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks what the schema cannot: each assertion carries
// the payload its type needs.
func validateScenario(s *Scenario) error {
	for i, a := range s.Assertions {
		switch a.Type {
		case AssertStepCount:
			if a.StepCount == nil {
				return fmt.Errorf("assertion %d: step_count requires step_count", i)
			}
			if (a.StepCount.Count == nil) == (a.StepCount.Max == nil) {
				return fmt.Errorf("assertion %d: step_count needs exactly one of count or max", i)
			}
		case AssertFinalEquals:
			if a.Values == nil {
				return fmt.Errorf("assertion %d: final_equals requires values", i)
			}
		}
	}
	return nil
}
