//go:build linux

package vma

import (
	"debug/elf"

	"github.com/ja7ad/opencore/internal/procfs"
)

// NeedsFilterFile reports whether v's backing file is a read-only-loaded
// region of an ELF file — and is therefore faithfully reconstructible
// from disk at analysis time, making its PT_LOAD payload safe to
// suppress. It accepts a backing file of any e_machine; callers that
// know the running backend's machine ID should use
// NeedsFilterFileForMachine instead, matching the original's e_machine
// comparison.
//
// Ported from OpencoreImpl::NeedFilterFile (lp32/opencore.cpp): the
// original opens and mmaps the backing file itself to sniff the ELF
// header and walk program headers without a full parse; this package uses
// debug/elf for the same check, since it is the standard, idiomatic way
// to read an arbitrary ELF file's headers in Go and no third-party ELF
// reader appears anywhere in the reference set this module draws from.
// Any failure along the way (not an ELF file, wrong machine, no PT_LOAD
// contains the VMA's file offset) means "do not suppress", matching the
// original's fail-open behavior.
func NeedsFilterFile(v procfs.VMA) bool {
	return needsFilterFileFor(v, 0)
}

// NeedsFilterFileForMachine is NeedsFilterFile with an explicit expected
// e_machine, used by IsFilterSegment so the running backend's machine ID
// rejects a foreign-architecture ELF file exactly like the original's
// e_machine comparison.
func NeedsFilterFileForMachine(v procfs.VMA, machine uint16) bool {
	return needsFilterFileFor(v, machine)
}

func needsFilterFileFor(v procfs.VMA, machine uint16) bool {
	if v.Path == "" {
		return false
	}
	f, err := elf.Open(v.Path)
	if err != nil {
		return false
	}
	defer f.Close()

	if machine != 0 && uint16(f.Machine) != machine {
		return false
	}

	for _, p := range f.Progs {
		if p.Type != elf.PT_LOAD {
			continue
		}
		if v.FileOffset < p.Off || v.FileOffset >= p.Off+p.Filesz {
			continue
		}
		return p.Flags&elf.PF_W == 0
	}
	return false
}
