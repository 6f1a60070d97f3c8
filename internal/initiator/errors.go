package initiator

import (
	"errors"
	"fmt"
)

// ErrInputDomain is matched by every InputError via errors.Is.
var ErrInputDomain = errors.New("input outside initiator domain")

// ErrUnknownInitiator is returned by Lookup for an unregistered name.
var ErrUnknownInitiator = errors.New("unknown initiator")

// InputError reports a size an initiator cannot produce a valid array for.
// No array is returned alongside it.
type InputError struct {
	Initiator string
	N         int
	Min       int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("INPUT_DOMAIN: %s initiator needs n >= %d, got %d", e.Initiator, e.Min, e.N)
}

// Is makes errors.Is(err, ErrInputDomain) true for any InputError.
func (e *InputError) Is(target error) bool {
	return target == ErrInputDomain
}

// IsInputError returns true if err is (or wraps) an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

func checkSize(name string, n, min int) error {
	if n < min {
		return &InputError{Initiator: name, N: n, Min: min}
	}
	return nil
}
