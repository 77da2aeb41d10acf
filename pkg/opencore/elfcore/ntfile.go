package elfcore

import (
	"bytes"
	"encoding/binary"
)

// NtFileEntry is one mapped-file record: begin/end virtual address and
// the mapping's file offset expressed in pages (spec.md §3 NtFileEntry).
type NtFileEntry struct {
	Begin      uint64
	End        uint64
	OffsetPage uint64
}

// EncodeNtFile lays out the NT_FILE note descriptor: word count, word
// page_size, N NtFileEntry records, then N NUL-terminated path strings
// packed end-to-end (spec.md §4.4 "Note segment body order", item 3).
// entries and paths must be the same length and in matching order.
func (l Layout) EncodeNtFile(entries []NtFileEntry, paths []string, pageSize uint64) []byte {
	w := l.WordSize()
	var buf bytes.Buffer

	putWord := func(v uint64) {
		tmp := make([]byte, w)
		if l.Is64 {
			binary.LittleEndian.PutUint64(tmp, v)
		} else {
			binary.LittleEndian.PutUint32(tmp, uint32(v))
		}
		buf.Write(tmp)
	}

	putWord(uint64(len(entries)))
	putWord(pageSize)
	for _, e := range entries {
		putWord(e.Begin)
		putWord(e.End)
		putWord(e.OffsetPage)
	}
	for _, p := range paths {
		buf.WriteString(p)
		buf.WriteByte(0)
	}

	out := buf.Bytes()
	// No 4-byte padding is added here; WriteNote pads the descriptor
	// (padUpTo4Bytes) and writes the padded length as descsz. Build sizes
	// the note segment from the encoded notes and does not call
	// NtFileDescSize.
	return out
}

// NtFileDescSize returns the exact unpadded descsz spec.md §3 specifies:
// sizeof(NtFileEntry)*N + 2*word + fileslen, where fileslen is the total
// length of the NUL-terminated path strings before 4-byte rounding.
func (l Layout) NtFileDescSize(n int, fileslen int) int {
	w := l.WordSize()
	return 3*w*n + 2*w + fileslen
}
