package repository

import "errors"

// Sentinel kinds for offer board errors.
var (
	ErrNotFound     = errors.New("player not on board")
	ErrInvalidLimit = errors.New("invalid board limit")
	ErrInvalidOffer = errors.New("invalid offer")
)
