package fmri

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fmri package. Wrap with fmt.Errorf("%w: ...")
// at the call site to add context; never compare error strings.
var (
	// ErrVersionUnsupported indicates a caller-supplied version exceeds
	// the version this package knows how to handle.
	ErrVersionUnsupported = errors.New("fmri: version unsupported")

	// ErrMalformedFMRI indicates a textual FMRI failed the grammar or
	// its ID parse.
	ErrMalformedFMRI = errors.New("fmri: malformed fmri string")

	// ErrMalformedNVL indicates a structured FMRI lacks required fields
	// or carries a field of the wrong shape.
	ErrMalformedNVL = errors.New("fmri: malformed nvl")
)

func malformedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedFMRI, fmt.Sprintf(format, args...))
}
