package translator

import (
	"errors"
	"fmt"
)

// StructuralError marks invalid pipeline input: a non-positive chunk
// budget, a missing completer, and similar contract violations. It is
// the only failure class the orchestrator propagates; endpoint call
// failures are absorbed at entry or chunk granularity with an
// original-text fallback.
type StructuralError struct {
	Message string
	Cause   error
}

func (e *StructuralError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("structural failure: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("structural failure: %s", e.Message)
}

func (e *StructuralError) Unwrap() error {
	return e.Cause
}

func newStructuralError(format string, args ...interface{}) *StructuralError {
	return &StructuralError{Message: fmt.Sprintf(format, args...)}
}

// IsStructural reports whether err carries a StructuralError.
func IsStructural(err error) bool {
	var structural *StructuralError
	return errors.As(err, &structural)
}
