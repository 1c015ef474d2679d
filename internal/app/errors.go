package service

import "errors"

// Sentinel kinds surfaced to transport layers.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("offer queue full")
	ErrStopped      = errors.New("service not started")
)
