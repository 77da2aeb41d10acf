//go:build linux

package opencore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorderForPRStatusPlacesFaultingTIDFirst(t *testing.T) {
	threads := []ThreadRecord{
		{TID: 10, Attached: true},
		{TID: 20, Attached: true},
		{TID: 30, Attached: false},
	}

	out := ReorderForPRStatus(threads, 20)
	require.Len(t, out, 3)
	assert.Equal(t, 20, out[0].TID)
	assert.True(t, out[0].Attached)
	assert.ElementsMatch(t, []int{10, 30}, []int{out[1].TID, out[2].TID})
}

func TestReorderForPRStatusFaultingTIDMissing(t *testing.T) {
	// the faulting tid may have already exited by the time /proc/<pid>/task
	// was enumerated (spec.md §9 open question) — slot 0 is still reserved
	// for it, unattached.
	threads := []ThreadRecord{{TID: 10, Attached: true}}

	out := ReorderForPRStatus(threads, 999)
	require.Len(t, out, 2)
	assert.Equal(t, 999, out[0].TID)
	assert.False(t, out[0].Attached)
	assert.Equal(t, 10, out[1].TID)
}

func TestReorderForPRStatusOverflowOverwritesSlotZero(t *testing.T) {
	threads := make([]ThreadRecord, 0, maxThreadSlots+5)
	for i := 0; i < maxThreadSlots+5; i++ {
		threads = append(threads, ThreadRecord{TID: 1000 + i, Attached: true})
	}

	out := ReorderForPRStatus(threads, 1)
	require.Len(t, out, maxThreadSlots)
	// the last tid processed overwrites slot 0, per the documented edge case
	assert.Equal(t, 1000+len(threads)-1, out[0].TID)
}

func TestReleaseSkipsUnattachedThreads(t *testing.T) {
	// Detach is never called for an unattached record; Release must not
	// panic or block on threads that never stopped.
	assert.NotPanics(t, func() {
		Release([]ThreadRecord{{TID: 1, Attached: false}})
	})
}
