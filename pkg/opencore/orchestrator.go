//go:build linux

package opencore

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/ja7ad/opencore/internal/procfs"
	"github.com/ja7ad/opencore/internal/reexec"
	"github.com/ja7ad/opencore/pkg/opencore/arch"
	"github.com/ja7ad/opencore/pkg/opencore/elfcore"
	"github.com/ja7ad/opencore/pkg/opencore/vma"
)

// dumpEntrypoint is the reexec registration name for the dump child
// (SPEC_FULL.md §C item 9).
const dumpEntrypoint = "opencore-dump"

// siginfoSize is sizeof(siginfo_t) on every architecture this package
// supports. This repository never captures a real siginfo_t (SPEC_FULL.md
// §C item 8), so the NT_SIGINFO note is always this many zero bytes —
// matching spec.md §8 scenario 2 "no signal captured (siginfo zero-filled)".
const siginfoSize = 128

// childRequest is the JSON payload the parent writes to the dump child's
// stdin pipe (SPEC_FULL.md §C item 9): everything DoCoredump needs that
// isn't already implied by os.Args.
type childRequest struct {
	PID          int
	TID          int
	Filename     string
	Filter       uint32
	TimeoutNanos int64
}

func init() {
	reexec.Register(dumpEntrypoint, runChild)
}

// runChild is the re-exec'd dump child's entire main body (spec.md §4.1
// "Dump execution protocol", the child branch). It always exits 0, since
// the parent only cares whether a file landed at the requested path, not
// the child's exit status.
func runChild() {
	logger := Logger(func(format string, args ...any) { fmt.Fprintf(os.Stderr, format+"\n", args...) })

	var req childRequest
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		logger("opencore: dump child: decode request: %v", err)
		os.Exit(0)
	}

	if err := DoCoredump(req.PID, req.TID, req.Filename, vma.FilterFlag(req.Filter), time.Duration(req.TimeoutNanos), logger); err != nil {
		logger("opencore: dump child: %v", err)
	}
	os.Exit(0)
}

// DoCoredump performs spec.md §4.2-§4.4 end to end against targetPID,
// treating faultingTID as the thread whose PRSTATUS note occupies slot 0.
// It always releases every attached thread before returning, including
// when a watchdog timeout fires partway through (spec.md §4.1 "Finish must
// always run").
func DoCoredump(targetPID, faultingTID int, path string, filter vma.FilterFlag, timeout time.Duration, logger Logger) error {
	threads := Quiesce(targetPID)

	released := false
	release := func() {
		if !released {
			released = true
			Release(threads)
		}
	}
	defer release()

	if timeout > 0 {
		wd := StartWatchdog(timeout, func() {
			logger("opencore: dump timed out after %s", timeout)
			release()
			os.Exit(0)
		})
		defer wd.Stop()
	}

	backend, err := arch.For(runtime.GOARCH)
	if err != nil {
		return fmt.Errorf("opencore: %w", err)
	}

	vmas, err := procfs.ParseMaps(targetPID)
	if err != nil {
		return fmt.Errorf("opencore: parse maps: %w", err)
	}

	layout := elfcore.Layout{Is64: backend.Is64(), Machine: backend.MachineID(), PageSize: os.Getpagesize()}
	ordered := ReorderForPRStatus(threads, faultingTID)

	regsByTID := make(map[int][]byte, len(ordered))
	for _, t := range ordered {
		regs, rerr := backend.CapturePtRegs(t.TID)
		if rerr != nil {
			logger("opencore: capture registers tid=%d: %v", t.TID, rerr)
		}
		regsByTID[t.TID] = regs
	}

	ppid, err := procfs.ReadPPid(targetPID)
	if err != nil {
		logger("opencore: read ppid: %v", err)
	}

	notes := buildThreadNotes(ordered, backend, regsByTID, targetPID, ppid)

	wordSize := layout.WordSize()
	auxvRaw, err := procfs.ReadAuxv(targetPID, wordSize)
	if err != nil {
		logger("opencore: read auxv: %v", err)
	}
	notes = append(notes, elfcore.Note{Name: "CORE", Type: elfcore.NT_AUXV, Desc: layout.EncodeAuxv(toElfAuxv(auxvRaw))})

	faultingRegs := regsByTID[faultingTID]
	segments, ntFileEntries, ntFilePaths := buildSegments(vmas, filter, faultingRegs, backend)
	notes = append(notes, elfcore.Note{
		Name: "CORE",
		Type: elfcore.NT_FILE,
		Desc: layout.EncodeNtFile(ntFileEntries, ntFilePaths, uint64(layout.PageSize)),
	})

	img := elfcore.Build(layout, notes, segments)

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opencore: open output: %w", err)
	}
	defer out.Close()

	if err := img.WriteHeaders(out); err != nil {
		return fmt.Errorf("opencore: write headers: %w", err)
	}

	mem, err := procfs.OpenMem(targetPID)
	if err != nil {
		logger("opencore: open /proc/%d/mem: %v", targetPID, err)
		return nil
	}
	defer mem.Close()

	reader := func(vaddr uint64, buf []byte) error { return procfs.PreadPage(mem, vaddr, buf) }
	if err := elfcore.WriteLoadSegments(out, img, reader); err != nil {
		logger("opencore: write load segments: %v", err)
	}
	return nil
}

func buildThreadNotes(threads []ThreadRecord, backend arch.Backend, regs map[int][]byte, pid, ppid int) []elfcore.Note {
	var notes []elfcore.Note
	for i, t := range threads {
		in := arch.PRStatusInput{
			Pid:    int32(t.TID),
			Tid:    int32(t.TID),
			PPid:   int32(ppid),
			PGrp:   int32(pid),
			Sid:    int32(pid),
			Regs:   regs[t.TID],
		}
		notes = append(notes, elfcore.Note{Name: "CORE", Type: elfcore.NT_PRSTATUS, Desc: backend.EncodePRStatus(in)})
		if i == 0 {
			notes = append(notes, elfcore.Note{Name: "CORE", Type: elfcore.NT_SIGINFO, Desc: make([]byte, siginfoSize)})
		}
		notes = append(notes, backend.ExtraNotes(t.TID)...)
	}
	return notes
}

func buildSegments(vmas []procfs.VMA, filter vma.FilterFlag, faultingRegs []byte, backend arch.Backend) ([]elfcore.ProgramSegment, []elfcore.NtFileEntry, []string) {
	segments := make([]elfcore.ProgramSegment, 0, len(vmas))
	entries := make([]elfcore.NtFileEntry, 0, len(vmas))
	paths := make([]string, 0, len(vmas))

	reachable := backend.MinidumpReachable
	for _, v := range vmas {
		seg := elfcore.ProgramSegment{
			VAddr:  v.Begin,
			MemSz:  v.End - v.Begin,
			Flags:  elfcore.SegmentFlags(v.Read, v.Write, v.Exec),
			FileSz: v.End - v.Begin,
		}
		seg = vma.Evaluate(seg, filter, v, backend.MachineID(), faultingRegs, reachable)
		segments = append(segments, seg)

		entries = append(entries, elfcore.NtFileEntry{
			Begin:      v.Begin,
			End:        v.End,
			OffsetPage: v.FileOffset / uint64(os.Getpagesize()),
		})
		paths = append(paths, v.Path)
	}
	return segments, entries, paths
}

func toElfAuxv(entries []procfs.AuxvEntry) []elfcore.AuxvEntry {
	out := make([]elfcore.AuxvEntry, len(entries))
	for i, e := range entries {
		out[i] = elfcore.AuxvEntry{Type: e.Type, Value: e.Value}
	}
	return out
}
