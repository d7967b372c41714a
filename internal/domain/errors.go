package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrNoActiveSession = errors.New("no active cooking session")
	ErrTimerNotFound   = errors.New("timer not found")
	ErrInvalidStep     = errors.New("invalid step")
	ErrOutOfRange      = errors.New("step out of range")
)
