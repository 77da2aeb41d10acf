package elfcore

import (
	"bytes"
	"encoding/binary"
)

// Note is one (name, type, descriptor) record destined for the PT_NOTE
// segment. Name is "CORE" for kernel-defined note types and "LINUX" for
// the arm64-specific regset notes, per spec.md §4.5.
type Note struct {
	Name string
	Type uint32
	Desc []byte
}

// NoteWriter accumulates encoded notes into a single contiguous buffer,
// the note segment body.
type NoteWriter struct {
	buf bytes.Buffer
}

func padUpTo4Bytes(n int) int {
	return (n + 3) &^ 3
}

// WriteNote appends one note: a 12-byte Nhdr (namesz, descsz, type)
// followed by the NUL-terminated, word-padded name, then the
// word-padded descriptor bytes.
func (nw *NoteWriter) WriteNote(n Note) {
	nameSize := padUpTo4Bytes(len(n.Name) + 1)
	descSize := padUpTo4Bytes(len(n.Desc))

	var hdr [12]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(nameSize))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(descSize))
	binary.LittleEndian.PutUint32(hdr[8:12], n.Type)
	nw.buf.Write(hdr[:])

	nw.buf.WriteString(n.Name)
	for i := len(n.Name); i < nameSize; i++ {
		nw.buf.WriteByte(0)
	}

	if len(n.Desc) > 0 {
		nw.buf.Write(n.Desc)
	}
	for i := len(n.Desc); i < descSize; i++ {
		nw.buf.WriteByte(0)
	}
}

// Bytes returns the accumulated note segment body.
func (nw *NoteWriter) Bytes() []byte { return nw.buf.Bytes() }

// Len returns the accumulated note segment body length.
func (nw *NoteWriter) Len() int { return nw.buf.Len() }

// NoteSize returns the encoded size of a single note without writing it,
// used by the sizing pass (spec.md §4.4 "note.filesz is computed before
// any byte is written").
func NoteSize(n Note) int {
	return 12 + padUpTo4Bytes(len(n.Name)+1) + padUpTo4Bytes(len(n.Desc))
}

// EncodeNotes writes notes in order and returns the resulting buffer.
func EncodeNotes(notes []Note) []byte {
	var nw NoteWriter
	for _, n := range notes {
		nw.WriteNote(n)
	}
	return nw.Bytes()
}
