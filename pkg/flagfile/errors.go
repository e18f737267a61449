package flagfile

import "errors"

// Predefined errors for the flagfile package.
var (
	// ErrReadFile indicates the flag configuration file could not be read.
	ErrReadFile = errors.New("failed to read flag configuration file")

	// ErrMalformedDocument indicates the flag configuration document could
	// not be parsed.
	ErrMalformedDocument = errors.New("malformed flag configuration document")
)
