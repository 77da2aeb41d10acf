package elfcore

import "errors"

var (
	// ErrNoSegments names the absence of any PT_LOAD segment. Build does
	// not return it: a zero-VMA image (spec.md §8 boundary behavior) is
	// built with only the PT_NOTE program header.
	ErrNoSegments = errors.New("elfcore: no program segments")

	// ErrShortWrite wraps a write that stopped before reaching the
	// requested length, distinct from an I/O error — the disk-full
	// (ENOSPC) case spec.md §7 requires to halt emission immediately.
	ErrShortWrite = errors.New("elfcore: short write")
)
