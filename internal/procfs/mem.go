//go:build linux

package procfs

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// OpenMem opens /proc/<pid>/mem for paged reads. The caller must already be
// a ptrace tracer of some task belonging to pid; otherwise every read fails
// with EIO regardless of file permissions.
func OpenMem(pid int) (*os.File, error) {
	return os.OpenFile(fmt.Sprintf("/proc/%d/mem", pid), os.O_RDONLY, 0)
}

// PreadPage reads exactly len(buf) bytes from mem at the given virtual
// address via pread64, so the file's seek offset (shared with other
// readers) is never disturbed. A failed read (unmapped, swapped, or any
// other per-page fault) is reported to the caller, which is expected to
// substitute a zero page rather than abort the whole segment.
func PreadPage(mem *os.File, vaddr uint64, buf []byte) error {
	n, err := unix.Pread(int(mem.Fd()), buf, int64(vaddr))
	if err != nil {
		return err
	}
	if n != len(buf) {
		for i := n; i < len(buf); i++ {
			buf[i] = 0
		}
	}
	return nil
}
