//go:build linux

package opencore

import (
	"github.com/ja7ad/opencore/internal/procfs"
	"github.com/ja7ad/opencore/internal/ptrace"
)

// maxThreadSlots bounds the PRSTATUS note slot array. The original engine
// uses a fixed-size array here; when a process has more threads than this,
// slot 0 (the faulting thread) is overwritten by the last thread
// processed, a documented edge case preserved rather than fixed (spec.md
// §4.2 step 3, §9 "Open question").
const maxThreadSlots = 1024

// ThreadRecord is one kernel task stopped during quiescence (spec.md §3).
type ThreadRecord struct {
	TID      int
	Attached bool
}

// Quiesce attaches to every task under /proc/<pid>/task, in readdir order,
// tolerating per-thread ptrace-attach failures (spec.md §4.2 steps 1-2).
// The returned slice is in iteration order, the order Release detaches in;
// it is not yet reordered for PRSTATUS note emission — see
// ReorderForPRStatus.
func Quiesce(pid int) []ThreadRecord {
	tids, err := procfs.ListTasks(pid)
	if err != nil {
		return nil
	}

	threads := make([]ThreadRecord, 0, len(tids))
	for _, tid := range tids {
		tr := ThreadRecord{TID: tid}
		if err := ptrace.Attach(tid); err == nil {
			tr.Attached = true
		}
		threads = append(threads, tr)
	}
	return threads
}

// Release detaches every thread that was successfully attached. Called
// unconditionally, even on a partially failed dump, so the target process
// is always left runnable (spec.md §4.2 step 5, §4.1 "Finish must always
// run").
func Release(threads []ThreadRecord) {
	for _, t := range threads {
		if t.Attached {
			_ = ptrace.Detach(t.TID)
		}
	}
}

// ReorderForPRStatus rearranges threads so the faulting tid occupies slot
// 0 and every other tid fills slots 1..N-1 in iteration order (spec.md
// §4.2 step 3). If faultingTID is not present in threads (it may have
// already exited), slot 0 is a synthetic, unattached record naming it
// anyway, since a PRSTATUS note for the faulting tid is still expected at
// index 0 by spec.md §8's end-to-end scenarios.
func ReorderForPRStatus(threads []ThreadRecord, faultingTID int) []ThreadRecord {
	out := make([]ThreadRecord, 0, len(threads)+1)
	out = append(out, ThreadRecord{TID: faultingTID, Attached: attachedOf(threads, faultingTID)})

	for _, t := range threads {
		if t.TID == faultingTID {
			continue
		}
		if len(out) >= maxThreadSlots {
			out[0] = t
			continue
		}
		out = append(out, t)
	}
	return out
}

func attachedOf(threads []ThreadRecord, tid int) bool {
	for _, t := range threads {
		if t.TID == tid {
			return t.Attached
		}
	}
	return false
}
