//go:build linux

package vma

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/opencore/internal/procfs"
	"github.com/ja7ad/opencore/pkg/opencore/elfcore"
)

func TestIsFilterSegmentSpecialPath(t *testing.T) {
	v := procfs.VMA{Path: "[vvar]"}
	assert.Equal(t, VerdictNull, IsFilterSegment(FilterSpecialVMA, v, 0))
	assert.Equal(t, VerdictNormal, IsFilterSegment(FilterNone, v, 0))
}

func TestIsFilterSegmentSharedVMA(t *testing.T) {
	v := procfs.VMA{Shared: true}
	assert.Equal(t, VerdictNull, IsFilterSegment(FilterSharedVMA, v, 0))
}

func TestIsFilterSegmentSanitizerShadow(t *testing.T) {
	v := procfs.VMA{Path: "[anon:hwasan-shadow]"}
	assert.Equal(t, VerdictNull, IsFilterSegment(FilterSanitizerShadowVMA, v, 0))
}

func TestIsFilterSegmentNonReadVMA(t *testing.T) {
	v := procfs.VMA{}
	assert.Equal(t, VerdictNull, IsFilterSegment(FilterNonReadVMA, v, 0))
}

func TestIsFilterSegmentJavaHeapAndJIT(t *testing.T) {
	heap := procfs.VMA{Path: "[anon:dalvik-main space]"}
	assert.Equal(t, VerdictNull, IsFilterSegment(FilterJavaHeapVMA, heap, 0))

	jit := procfs.VMA{Path: "/memfd:jit-cache"}
	assert.Equal(t, VerdictNull, IsFilterSegment(FilterJITCacheVMA, jit, 0))
}

func TestIsFilterSegmentFileVMARejectsWrongMachine(t *testing.T) {
	self, err := os.Executable()
	require.NoError(t, err)

	v := procfs.VMA{Path: self, FileOffset: 0, Inode: 1}
	assert.Equal(t, VerdictNull, IsFilterSegment(FilterFileVMA, v, 0), "machine 0 accepts any architecture")
	assert.Equal(t, VerdictNormal, IsFilterSegment(FilterFileVMA, v, 0xffff), "bogus machine must reject the match")
}

func TestIsSpecialFilterSegmentOverridesNull(t *testing.T) {
	seg := elfcore.ProgramSegment{MemSz: 0x1000}
	v := procfs.VMA{Shared: true, Begin: 0x1000, End: 0x2000}
	regs := []byte{0x50, 0x10}

	reachable := func(regs []byte, begin, end uint64) bool { return true }

	out := Evaluate(seg, FilterSharedVMA|FilterMinidump, v, 0, regs, reachable)
	assert.Equal(t, seg.MemSz, out.FileSz, "INCLUDE must win over NULL")
}

func TestEvaluateNullZeroesFileSz(t *testing.T) {
	seg := elfcore.ProgramSegment{MemSz: 0x2000, FileSz: 0x2000}
	v := procfs.VMA{Shared: true}
	reachable := func(regs []byte, begin, end uint64) bool { return false }

	out := Evaluate(seg, FilterSharedVMA, v, 0, nil, reachable)
	assert.Zero(t, out.FileSz)
}

func TestNeedsFilterFileRejectsMissingOrNonELF(t *testing.T) {
	assert.False(t, NeedsFilterFile(procfs.VMA{Path: ""}))
	assert.False(t, NeedsFilterFile(procfs.VMA{Path: "/nonexistent/path/does-not-exist"}))

	tmp, err := os.CreateTemp(t.TempDir(), "notelf")
	require.NoError(t, err)
	_, err = tmp.WriteString("not an elf file")
	require.NoError(t, err)
	require.NoError(t, tmp.Close())

	assert.False(t, NeedsFilterFile(procfs.VMA{Path: tmp.Name(), FileOffset: 0}))
}

func TestNeedsFilterFileReadsRunningBinary(t *testing.T) {
	self, err := os.Executable()
	require.NoError(t, err)

	// Offset 0 always falls inside the ELF header's own PT_LOAD, which on
	// every supported architecture is mapped read-only.
	assert.True(t, NeedsFilterFile(procfs.VMA{Path: self, FileOffset: 0}))
}
