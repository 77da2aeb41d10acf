//go:build linux

// Package sigctx is the signal-handling and prctl front door for the
// coredump engine: installing/restoring the fatal-signal handler set via
// os/signal, and the PR_SET_DUMPABLE / PR_SET_PTRACER dance that lets a
// re-exec'd child ptrace-attach to the faulting process.
//
// It deliberately does not attempt to decode siginfo_t or ucontext_t —
// os/signal.Notify only ever delivers a signal number in pure Go, and
// there is no portable way to get more without cgo. See the engine's
// documentation for what this means for faulting-thread register capture.
package sigctx
