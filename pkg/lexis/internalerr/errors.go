package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrDecode           = errors.New("invalid text encoding")
	ErrStoreUnavailable = errors.New("store unavailable")
)
