package elfcore

import "encoding/binary"

// AuxvEntry is one (type, value) pair, widened to 64 bits; EncodeAuxv
// narrows to the target word size.
type AuxvEntry struct {
	Type  uint64
	Value uint64
}

// EncodeAuxv lays out entries back-to-back as (type, value) word pairs,
// the raw descriptor bytes of the NT_AUXV note (spec.md §3 AuxvEntry).
func (l Layout) EncodeAuxv(entries []AuxvEntry) []byte {
	w := l.WordSize()
	buf := make([]byte, len(entries)*2*w)
	for i, e := range entries {
		off := i * 2 * w
		if l.Is64 {
			binary.LittleEndian.PutUint64(buf[off:], e.Type)
			binary.LittleEndian.PutUint64(buf[off+8:], e.Value)
		} else {
			binary.LittleEndian.PutUint32(buf[off:], uint32(e.Type))
			binary.LittleEndian.PutUint32(buf[off+4:], uint32(e.Value))
		}
	}
	return buf
}
