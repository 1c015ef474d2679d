package owner

import "errors"

// ErrInvalidDirective is returned for unknown philosophies or out-of-range
// owner limits.
var ErrInvalidDirective = errors.New("invalid owner directive")
