package harness

import (
	"github.com/roach88/sortscope/internal/playback"
	"github.com/roach88/sortscope/internal/trace"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	Pass bool `json:"pass"`

	// Recording is the recorded trace the scenario replayed.
	Recording *trace.Recording `json:"-"`

	// Final is the array the renderer showed after the last step.
	Final []int `json:"final"`

	// Counts are the controller's counters after the last step.
	Counts playback.Counts `json:"counts"`

	// Errors contains assertion and consistency failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
