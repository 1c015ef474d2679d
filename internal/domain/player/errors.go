package player

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel kind behind every ValidationError.
var ErrValidation = errors.New("invalid player data")

// ValidationError reports a required field that is missing or out of range.
// It is fatal for a valuation and is never defaulted.
type ValidationError struct {
	Field  string
	Reason string
	Value  any
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s %s (got %v)", ErrValidation, e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }
