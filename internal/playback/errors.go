package playback

import (
	"errors"
	"fmt"
)

// ControlErrorCode categorizes control errors.
type ControlErrorCode string

const (
	// CodeNoSession indicates an operation that needs a bound trace was
	// called before Initiate.
	CodeNoSession ControlErrorCode = "NO_SESSION"

	// CodeRunning indicates Step was called while the timed loop owns the
	// cursor.
	CodeRunning ControlErrorCode = "RUNNING"

	// CodeExhausted indicates there is no next step to apply.
	CodeExhausted ControlErrorCode = "EXHAUSTED"

	// CodeLoopFailure indicates a step application failed. The session
	// is unusable until the next Initiate.
	CodeLoopFailure ControlErrorCode = "LOOP_FAILURE"
)

// ControlError is returned by Controller operations.
type ControlError struct {
	Code    ControlErrorCode
	Message string
	Cause   error
}

// Sentinels for errors.Is. Any ControlError with the same Code matches.
var (
	ErrNoSession   = &ControlError{Code: CodeNoSession, Message: "no trace initiated"}
	ErrRunning     = &ControlError{Code: CodeRunning, Message: "timed loop is running"}
	ErrExhausted   = &ControlError{Code: CodeExhausted, Message: "trace has no next step"}
	ErrLoopFailure = &ControlError{Code: CodeLoopFailure, Message: "step application failed"}
)

func (e *ControlError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ControlError) Unwrap() error {
	return e.Cause
}

// Is matches any ControlError carrying the same Code.
func (e *ControlError) Is(target error) bool {
	var ce *ControlError
	if !errors.As(target, &ce) {
		return false
	}
	return ce.Code == e.Code
}

func newControlError(code ControlErrorCode, message string, cause error) *ControlError {
	return &ControlError{Code: code, Message: message, Cause: cause}
}

// IsPreconditionError returns true if err reports a call the controller's
// current state does not allow: no session, running, or exhausted.
// Uses errors.As to handle wrapped errors.
func IsPreconditionError(err error) bool {
	var ce *ControlError
	if errors.As(err, &ce) {
		switch ce.Code {
		case CodeNoSession, CodeRunning, CodeExhausted:
			return true
		}
	}
	return false
}

// IsLoopFailure returns true if err reports a failed step application.
func IsLoopFailure(err error) bool {
	var ce *ControlError
	if errors.As(err, &ce) {
		return ce.Code == CodeLoopFailure
	}
	return false
}
