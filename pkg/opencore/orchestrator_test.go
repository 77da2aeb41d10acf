//go:build linux

package opencore

import (
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/ja7ad/opencore/internal/procfs"
	"github.com/ja7ad/opencore/pkg/opencore/arch"
	"github.com/ja7ad/opencore/pkg/opencore/vma"
)

func testBackend(t *testing.T) arch.Backend {
	b, err := arch.For(runtime.GOARCH)
	if err != nil {
		t.Skipf("no arch backend for %s in this environment", runtime.GOARCH)
	}
	return b
}

func TestBuildThreadNotesOrdersSigInfoAfterSlotZero(t *testing.T) {
	b := testBackend(t)
	threads := []ThreadRecord{{TID: 10}, {TID: 20}}
	regs := map[int][]byte{10: make([]byte, b.PtRegsSize()), 20: make([]byte, b.PtRegsSize())}

	notes := buildThreadNotes(threads, b, regs, 1000, 999)

	require.GreaterOrEqual(t, len(notes), 3)
	assert.EqualValues(t, 1, notes[0].Type) // NT_PRSTATUS for slot 0
	assert.EqualValues(t, 0x53494749, notes[1].Type) // NT_SIGINFO, thread 0 only
	assert.Len(t, notes[1].Desc, siginfoSize)
}

func TestBuildSegmentsTracksOneNtFileEntryPerVMA(t *testing.T) {
	b := testBackend(t)
	vmas := []procfs.VMA{
		{Begin: 0x1000, End: 0x2000, Read: true, Path: "/lib/libc.so"},
		{Begin: 0x3000, End: 0x4000, Read: true, Write: true, Path: ""},
	}

	segments, entries, paths := buildSegments(vmas, vma.FilterNone, nil, b)

	require.Len(t, segments, 2)
	require.Len(t, entries, 2)
	require.Len(t, paths, 2)
	assert.Equal(t, "/lib/libc.so", paths[0])
	assert.Equal(t, uint64(0x1000), entries[0].Begin)
	assert.Equal(t, "", paths[1])
	assert.Equal(t, uint64(0x3000), entries[1].Begin)
}

func TestToElfAuxvPreservesOrder(t *testing.T) {
	in := []procfs.AuxvEntry{{Type: 1, Value: 2}, {Type: 3, Value: 4}}
	out := toElfAuxv(in)
	require.Len(t, out, 2)
	assert.Equal(t, uint64(3), out[1].Type)
	assert.Equal(t, uint64(4), out[1].Value)
}

func TestDoCoredumpSelfProcess(t *testing.T) {
	if os.Getenv("OPENCORE_PTRACE_TESTS") == "" {
		t.Skip("set OPENCORE_PTRACE_TESTS=1 on a host permitting self-ptrace to run this")
	}
	testBackend(t)

	dir := t.TempDir()
	path := dir + "/core.self"
	err := DoCoredump(os.Getpid(), unix.Gettid(), path, vma.FilterNone, 5*time.Second, noopLogger)
	require.NoError(t, err)

	info, statErr := os.Stat(path)
	require.NoError(t, statErr)
	assert.Positive(t, info.Size())
}
