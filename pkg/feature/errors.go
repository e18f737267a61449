package feature

import "errors"

// Predefined errors for the feature package.
var (
	// ErrInvalidFlag indicates that the provided flag parameters are invalid.
	ErrInvalidFlag = errors.New("invalid feature flag parameters")
)
