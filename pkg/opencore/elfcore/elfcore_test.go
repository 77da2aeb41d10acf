package elfcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteWriterPadding(t *testing.T) {
	var nw NoteWriter
	nw.WriteNote(Note{Name: "CORE", Type: NT_PRSTATUS, Desc: []byte{1, 2, 3}})

	b := nw.Bytes()
	require.Len(t, b, NoteSize(Note{Name: "CORE", Type: NT_PRSTATUS, Desc: []byte{1, 2, 3}}))

	// namesz=8 ("CORE\0" padded to 8), descsz=4 (3 bytes padded to 4)
	assert.Equal(t, uint32(8), leUint32(b[0:4]))
	assert.Equal(t, uint32(4), leUint32(b[4:8]))
	assert.Equal(t, uint32(NT_PRSTATUS), leUint32(b[8:12]))
	assert.Equal(t, "CORE\x00\x00\x00\x00", string(b[12:20]))
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func TestBuildOffsetsChainExactly(t *testing.T) {
	layout := Layout{Is64: true, Machine: EM_X86_64, PageSize: 4096}
	notes := []Note{{Name: "CORE", Type: NT_PRSTATUS, Desc: make([]byte, 336)}}
	segs := []ProgramSegment{
		{VAddr: 0x1000, MemSz: 0x1000, FileSz: 0x1000, Flags: SegmentFlags(true, false, true)},
		{VAddr: 0x2000, MemSz: 0x2000, FileSz: 0x2000, Flags: SegmentFlags(true, true, false)},
		{VAddr: 0x8000, MemSz: 0x1000, FileSz: 0, Flags: SegmentFlags(true, false, false)},
	}

	img := Build(layout, notes, segs)

	require.Equal(t, 4, len(img.Segments)+1) // phnum = N+1
	assert.EqualValues(t, 0, img.Segments[0].Offset%uint64(layout.PageSize))

	for i := 1; i < len(img.Segments); i++ {
		assert.Equal(t,
			img.Segments[i-1].Offset+img.Segments[i-1].FileSz,
			img.Segments[i].Offset,
			"PT_LOAD offsets must chain exactly")
	}
}

func Test32BitPhdrFieldOrderDiffersFrom64Bit(t *testing.T) {
	l32 := Layout{Is64: false, Machine: EM_ARM, PageSize: 4096}
	ph := ProgramHeader{Type: ptLoad, Flags: pfR | pfX, Offset: 0x100, VAddr: 0x8000, FileSz: 0x10, MemSz: 0x10, Align: 4096}
	b := l32.EncodePhdr(ph)
	require.Len(t, b, 32)
	assert.Equal(t, uint32(ptLoad), leUint32(b[0:4]))
	assert.Equal(t, uint32(0x100), leUint32(b[4:8])) // p_offset, not p_flags, at offset 4 on 32-bit
}
