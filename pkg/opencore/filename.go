//go:build linux

package opencore

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ja7ad/opencore/internal/procfs"
)

// composeFilename builds the output path per spec.md §6: concatenate the
// enabled FLAG_* tokens, in the listed order (PROCESS_COMM, PID,
// THREAD_COMM, TID, TIMESTAMP), joined by "_"; FLAG_CORE prepends the
// literal "core." to the whole name rather than joining as a token. A
// zero flag set defaults to CORE|TID, per spec.md §6.
func composeFilename(dir string, flags FilenameFlag, pid, tid int, logger Logger) string {
	if flags == 0 {
		flags = FlagCore | FlagTID
	}

	var parts []string
	if flags&FlagProcessComm != 0 {
		if comm, err := procfs.ProcessComm(pid); err == nil && comm != "" {
			parts = append(parts, comm)
		} else if err != nil {
			logger("opencore: read process comm: %v", err)
		}
	}
	if flags&FlagPID != 0 {
		parts = append(parts, strconv.Itoa(pid))
	}
	if flags&FlagThreadComm != 0 {
		if comm, err := procfs.ThreadComm(pid, tid); err == nil && comm != "" {
			parts = append(parts, comm)
		} else if err != nil {
			logger("opencore: read thread comm: %v", err)
		}
	}
	if flags&FlagTID != 0 {
		parts = append(parts, strconv.Itoa(tid))
	}
	if flags&FlagTimestamp != 0 {
		parts = append(parts, strconv.FormatInt(time.Now().Unix(), 10))
	}

	name := strings.Join(parts, "_")
	if flags&FlagCore != 0 {
		name = "core." + name
	}
	return filepath.Join(dir, name)
}
