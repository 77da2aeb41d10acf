//go:build linux

package procfs

import "errors"

var (
	// ErrNoMapsLine indicates a /proc/<pid>/maps line could not be parsed.
	ErrNoMapsLine = errors.New("procfs: malformed maps line")

	// ErrShortAuxv indicates /proc/<pid>/auxv length is not a multiple of
	// the entry size for the requested word size.
	ErrShortAuxv = errors.New("procfs: auxv length not a multiple of entry size")

	// ErrNoTasks indicates /proc/<pid>/task enumerated no entries.
	ErrNoTasks = errors.New("procfs: no tasks found")

	// ErrNoStatLine indicates /proc/<pid>/stat could not be parsed.
	ErrNoStatLine = errors.New("procfs: malformed stat line")
)
