package topo

import "errors"

// ErrUnsupported is returned by the SAS2DEV and SAS2HC methods, which the
// original plugin never implemented (Open Question 4): both always fail
// with this status rather than guessing at a /devices or hc-scheme
// mapping.
var ErrUnsupported = errors.New("topo: method not supported")
