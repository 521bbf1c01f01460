package hba

import "errors"

// ErrIO wraps any non-accepted result returned by a Source call,
// per the IO_ERROR taxonomy entry (spec §7).
var ErrIO = errors.New("hba: io error")
