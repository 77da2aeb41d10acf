//go:build linux

// Package vma takes the VirtualMemoryArea records that internal/procfs
// parses from /proc/<pid>/maps and decides, per spec.md §4.3, whether
// each one's PT_LOAD payload is
// emitted, suppressed, or forced to be kept regardless of what the other
// filters say.
//
// The filter verdict is a tri-state (NORMAL, NULL, INCLUDE) rather than a
// boolean: minidump mode's INCLUDE must be able to override every other
// suppression rule, and expressing that as "suppress unless" booleans
// scattered across filter checks is exactly the bug class a tri-state
// return avoids.
package vma
