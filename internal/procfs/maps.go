//go:build linux

package procfs

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// VMA is one parsed line of /proc/<pid>/maps.
type VMA struct {
	Begin, End     uint64
	Read, Write    bool
	Exec           bool
	Shared         bool // 's' or 'S' in the fourth permission column (MAP_SHARED)
	Private        bool
	FileOffset     uint64
	DevMajor       uint32
	DevMinor       uint32
	Inode          uint64
	Path           string
}

// ParseMaps reads and parses /proc/<pid>/maps into an ordered slice of VMAs,
// preserving kernel readdir/listing order (ascending by address).
func ParseMaps(pid int) ([]VMA, error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []VMA
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		v, err := parseMapsLine(sc.Text())
		if err != nil {
			continue // a handful of pseudo-VMAs (e.g. [vsyscall]) can be malformed; skip rather than abort the scan
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseMapsLine(line string) (VMA, error) {
	// "begin-end perms offset dev inode path"
	fs := strings.Fields(line)
	if len(fs) < 5 {
		return VMA{}, ErrNoMapsLine
	}
	addrs := strings.SplitN(fs[0], "-", 2)
	if len(addrs) != 2 {
		return VMA{}, ErrNoMapsLine
	}
	begin, err := strconv.ParseUint(addrs[0], 16, 64)
	if err != nil {
		return VMA{}, ErrNoMapsLine
	}
	end, err := strconv.ParseUint(addrs[1], 16, 64)
	if err != nil {
		return VMA{}, ErrNoMapsLine
	}

	perms := fs[1]
	if len(perms) < 4 {
		return VMA{}, ErrNoMapsLine
	}

	offset, err := strconv.ParseUint(fs[2], 16, 64)
	if err != nil {
		return VMA{}, ErrNoMapsLine
	}

	dev := strings.SplitN(fs[3], ":", 2)
	var major, minor uint64
	if len(dev) == 2 {
		major, _ = strconv.ParseUint(dev[0], 16, 32)
		minor, _ = strconv.ParseUint(dev[1], 16, 32)
	}

	inode, _ := strconv.ParseUint(fs[4], 10, 64)

	var path string
	if i := strings.IndexByte(line, '/'); i >= 0 {
		path = strings.TrimSpace(line[i:])
	} else if i := strings.IndexByte(line, '['); i >= 0 {
		path = strings.TrimSpace(line[i:])
	}

	return VMA{
		Begin:      begin,
		End:        end,
		Read:       perms[0] == 'r',
		Write:      perms[1] == 'w',
		Exec:       perms[2] == 'x',
		Shared:     perms[3] == 's' || perms[3] == 'S',
		Private:    perms[3] == 'p' || perms[3] == 'P',
		FileOffset: offset,
		DevMajor:   uint32(major),
		DevMinor:   uint32(minor),
		Inode:      inode,
		Path:       path,
	}, nil
}
