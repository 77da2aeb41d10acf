//go:build linux

package ptrace

import "errors"

var (
	// ErrAttachFailed wraps a failed PTRACE_ATTACH; the caller should log
	// and continue with the next thread rather than abort the dump.
	ErrAttachFailed = errors.New("ptrace: attach failed")

	// ErrWaitFailed wraps a failed waitpid after a successful attach.
	ErrWaitFailed = errors.New("ptrace: wait failed")

	// ErrGetRegSetFailed wraps a failed PTRACE_GETREGSET request.
	ErrGetRegSetFailed = errors.New("ptrace: getregset failed")
)
