package fluxeval

import "errors"

// ErrKeyMismatch reports a join across incompatible site keys.
var ErrKeyMismatch = errors.New("site key mismatch")

// ErrInsufficientData reports fewer valid points than an operation requires.
var ErrInsufficientData = errors.New("insufficient data")
