package trace

import "errors"

var (
	// ErrNoNextStep is returned by Next when the cursor is exhausted.
	ErrNoNextStep = errors.New("NO_NEXT_STEP: trace has no next step")

	// ErrNoPreviousStep is returned by Previous at the start of a trace.
	ErrNoPreviousStep = errors.New("NO_PREVIOUS_STEP: trace has no previous step")
)
