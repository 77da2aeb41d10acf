package elfcore

// Image is a fully-sized, offset-resolved core file description, ready to
// be serialized by WriteHeaders and WriteLoadSegments. Build never writes a byte; it only computes
// sizes and offsets, per spec.md §4.4 "note.filesz is computed before any
// byte is written".
type Image struct {
	Layout   Layout
	Ehdr     []byte
	Phdrs    []byte
	NoteBody []byte // unpadded note segment payload
	NotePad  int    // zero bytes between NoteBody and the first PT_LOAD
	Segments []ProgramSegment
}

// Build computes the full layout for a core file with the given notes
// (already in spec.md §4.4 note order) and segments (already filtered by
// pkg/opencore/vma). Segments are assigned Offset fields in place, in the
// order given — that order is also the PT_LOAD order in the program
// header table, and the NT_FILE note must list entries in the same order.
func Build(layout Layout, notes []Note, segments []ProgramSegment) *Image {
	phnum := len(segments) + 1
	ehdr := layout.EncodeEhdr(phnum)

	noteOffset := uint64(layout.EhdrSize() + phnum*layout.PhdrSize())
	noteBody := EncodeNotes(notes)
	noteFilesz := uint64(len(noteBody))

	firstLoadOffset := RoundUp(noteOffset+noteFilesz, uint64(layout.PageSize))
	notePad := int(firstLoadOffset - (noteOffset + noteFilesz))

	offset := firstLoadOffset
	for i := range segments {
		segments[i].Offset = offset
		offset += segments[i].FileSz
	}

	phdrs := make([]byte, 0, phnum*layout.PhdrSize())
	phdrs = append(phdrs, layout.EncodePhdr(ProgramHeader{
		Type:   ptNote,
		Offset: noteOffset,
		FileSz: noteFilesz,
		MemSz:  noteFilesz,
		Align:  uint64(layout.WordSize()),
	})...)
	for _, seg := range segments {
		phdrs = append(phdrs, layout.EncodePhdr(ProgramHeader{
			Type:   ptLoad,
			Flags:  seg.Flags,
			Offset: seg.Offset,
			VAddr:  seg.VAddr,
			PAddr:  seg.VAddr,
			FileSz: seg.FileSz,
			MemSz:  seg.MemSz,
			Align:  uint64(layout.PageSize),
		})...)
	}

	return &Image{
		Layout:   layout,
		Ehdr:     ehdr,
		Phdrs:    phdrs,
		NoteBody: noteBody,
		NotePad:  notePad,
		Segments: segments,
	}
}
