//go:build linux

package sigctx

import "errors"

// ErrAlreadyInstalled names the condition of installing the handler set
// twice without an intervening Restore. Install itself never returns it:
// each Install call registers a new, independent Handler.
var ErrAlreadyInstalled = errors.New("sigctx: handler already installed")
