//go:build linux

// Package procfs provides the minimal set of /proc readers the coredump
// engine needs: memory-map parsing, the auxiliary vector, task enumeration,
// comm strings, and paged access to a target process's memory.
//
// Every reader here is read-only and safe to call from the re-exec'd dump
// child against an arbitrary pid, provided the caller already holds a
// ptrace attachment on at least one task of that pid (required for
// /proc/<pid>/mem reads by a non-parent tracer).
package procfs
