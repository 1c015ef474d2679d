package poolgen

import "errors"

// ErrInvalidSize is returned when a pool of fewer than one player is requested.
var ErrInvalidSize = errors.New("pool size must be at least 1")
