package engine

import "errors"

// ErrNilOwnerContext is returned when Evaluate is called without an owner.
var ErrNilOwnerContext = errors.New("owner context is required")
