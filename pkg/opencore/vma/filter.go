//go:build linux

package vma

import (
	"strings"

	"github.com/ja7ad/opencore/internal/procfs"
	"github.com/ja7ad/opencore/pkg/opencore/elfcore"
)

// FilterFlag bits select which suppression rules apply to a dump,
// independently configurable (spec.md §4.3). Values match the original
// FILTER_* bit assignments exactly, since EngineConfig persists across
// process lifetime and any reordering would silently change the meaning
// of a previously-saved config value.
type FilterFlag uint32

const (
	FilterNone               FilterFlag = 0
	FilterSpecialVMA         FilterFlag = 1 << 0
	FilterFileVMA            FilterFlag = 1 << 1
	FilterSharedVMA          FilterFlag = 1 << 2
	FilterSanitizerShadowVMA FilterFlag = 1 << 3
	FilterNonReadVMA         FilterFlag = 1 << 4
	FilterSignalContext      FilterFlag = 1 << 5
	FilterMinidump           FilterFlag = 1 << 6
	FilterJavaHeapVMA        FilterFlag = 1 << 7
	FilterJITCacheVMA        FilterFlag = 1 << 8
)

// Verdict is the tri-state result of evaluating a VMA against the
// configured filters.
type Verdict int

const (
	VerdictNormal Verdict = 0
	VerdictNull   Verdict = 1 << 0
	VerdictInclude Verdict = 1 << 1
)

var specialVMAPaths = map[string]bool{
	"/dev/binderfs/hwbinder": true,
	"/dev/binderfs/binder":   true,
	"[vvar]":                 true,
	"/dev/mali0":             true,
}

// IsFilterSegment applies every configured category-based rule in order
// and returns the first VMA_NULL match, or VerdictNormal — a direct port
// of Opencore::IsFilterSegment. machine is the running backend's
// e_machine (arch.Backend.MachineID()); pass 0 to accept a backing file
// of any architecture.
func IsFilterSegment(flags FilterFlag, v procfs.VMA, machine uint16) Verdict {
	if flags&FilterSpecialVMA != 0 && specialVMAPaths[v.Path] {
		return VerdictNull
	}

	if flags&FilterFileVMA != 0 && v.Inode > 0 && !v.Write {
		if NeedsFilterFileForMachine(v, machine) {
			return VerdictNull
		}
	}

	if flags&FilterSharedVMA != 0 && v.Shared {
		return VerdictNull
	}

	if flags&FilterSanitizerShadowVMA != 0 {
		if v.Path == "[anon:low shadow]" || v.Path == "[anon:high shadow]" || strings.HasPrefix(v.Path, "[anon:hwasan") {
			return VerdictNull
		}
	}

	if flags&FilterNonReadVMA != 0 && !v.Read && !v.Write && !v.Exec {
		return VerdictNull
	}

	if flags&FilterJavaHeapVMA != 0 && strings.HasPrefix(v.Path, "[anon:dalvik") {
		return VerdictNull
	}

	if flags&FilterJITCacheVMA != 0 && strings.HasPrefix(v.Path, "/memfd:jit") {
		return VerdictNull
	}

	return VerdictNormal
}

// IsSpecialFilterSegment is the minidump-mode reachability check: when
// FilterMinidump is set, a VMA containing any general register value from
// regs is force-included, overriding every suppression rule above.
func IsSpecialFilterSegment(flags FilterFlag, v procfs.VMA, regs []byte, reachable func(regs []byte, begin, end uint64) bool) Verdict {
	if flags&FilterMinidump == 0 {
		return VerdictNormal
	}
	if reachable(regs, v.Begin, v.End) {
		return VerdictInclude
	}
	return VerdictNormal
}

// Evaluate combines IsFilterSegment and IsSpecialFilterSegment and
// applies the resulting p_filesz, mirroring OpencoreImpl::SpecialCoreFilter:
// VMA_NULL zeroes filesz first, then VMA_INCLUDE — if present — always
// wins and restores it to memsz. machine is forwarded to IsFilterSegment.
func Evaluate(seg elfcore.ProgramSegment, flags FilterFlag, v procfs.VMA, machine uint16, regs []byte, reachable func(regs []byte, begin, end uint64) bool) elfcore.ProgramSegment {
	verdict := IsFilterSegment(flags, v, machine) | IsSpecialFilterSegment(flags, v, regs, reachable)

	if verdict&VerdictNull != 0 {
		seg.FileSz = 0
	}
	if verdict&VerdictInclude != 0 {
		seg.FileSz = seg.MemSz
	}
	return seg
}
