package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/roach88/sortscope/internal/ir"
)

// marshalInitial converts the initial array to canonical JSON TEXT.
func marshalInitial(initial []int) (string, error) {
	if initial == nil {
		initial = []int{}
	}
	data, err := ir.MarshalCanonical(initial)
	if err != nil {
		return "", fmt.Errorf("marshal initial: %w", err)
	}
	return string(data), nil
}

// unmarshalInitial parses TEXT produced by marshalInitial.
// Returns an empty slice (not nil) for an empty array.
func unmarshalInitial(data string) ([]int, error) {
	initial := []int{}
	if err := json.Unmarshal([]byte(data), &initial); err != nil {
		return nil, fmt.Errorf("unmarshal initial: %w", err)
	}
	return initial, nil
}

// marshalStep converts one step to canonical JSON TEXT.
func marshalStep(s ir.Step) (string, error) {
	data, err := ir.MarshalStep(s)
	if err != nil {
		return "", fmt.Errorf("marshal step: %w", err)
	}
	return string(data), nil
}

// seeds are uint64 and may not fit SQLite's signed INTEGER, so they are
// stored as decimal TEXT.
func formatSeed(seed uint64) string {
	return strconv.FormatUint(seed, 10)
}

func parseSeed(s string) (uint64, error) {
	seed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse seed %q: %w", s, err)
	}
	return seed, nil
}
