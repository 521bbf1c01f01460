package expander

import "errors"

// ErrIO wraps any non-accepted SMP result, per the IO_ERROR taxonomy
// entry (spec §7).
var ErrIO = errors.New("expander: io error")
