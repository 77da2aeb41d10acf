//go:build linux

package opencore

import "errors"

// ErrDumpNotInvoked is returned by Dump when the dump child could not even
// be started (spec.md §4.1 "Fork failure: ... callback not invoked").
var ErrDumpNotInvoked = errors.New("opencore: dump child failed to start")
