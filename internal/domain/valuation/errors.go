package valuation

import "errors"

var (
	// ErrNilContext is returned when a factor runs without a valuation context.
	ErrNilContext = errors.New("valuation context is required")
	// ErrNoFactors is returned when there is nothing to aggregate.
	ErrNoFactors = errors.New("no factor results to aggregate")
)
