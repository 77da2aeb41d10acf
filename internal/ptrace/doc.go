//go:build linux

// Package ptrace wraps the small set of raw ptrace(2) requests the
// coredump engine needs to quiesce and inspect another process's threads:
// ATTACH, the wait for the resulting group-stop, GETREGSET for register
// capture, and DETACH. It intentionally does not expose the general
// ptrace(2) surface.
package ptrace
