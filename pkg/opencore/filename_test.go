//go:build linux

package opencore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeFilenameScenario1(t *testing.T) {
	// spec.md §8 scenario 1: dir=/tmp flags=CORE|PID|TID pid=4096 tid=4100.
	got := composeFilename("/tmp", FlagCore|FlagPID|FlagTID, 4096, 4100, noopLogger)
	assert.Equal(t, "/tmp/core.4096_4100", got)
}

func TestComposeFilenameDefaultsToCoreTID(t *testing.T) {
	got := composeFilename("/tmp", 0, 1, 2, noopLogger)
	assert.Equal(t, "/tmp/core.2", got)
}

func TestComposeFilenameNoCorePrefix(t *testing.T) {
	got := composeFilename("/tmp", FlagPID|FlagTID, 1, 2, noopLogger)
	assert.Equal(t, "/tmp/1_2", got)
}

func TestComposeFilenamePIDOnly(t *testing.T) {
	got := composeFilename("/var/crash", FlagCore|FlagPID, 99, 0, noopLogger)
	assert.Equal(t, "/var/crash/core.99", got)
}
