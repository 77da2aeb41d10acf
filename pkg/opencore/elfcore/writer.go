package elfcore

import "os"

// WriteHeaders writes the ELF header, the program-header table, the note
// segment body, and its page-alignment padding, in that order, starting
// at the file's current position (expected to be 0). After this call the
// file's position is exactly img.Segments[0].Offset, ready for
// WriteLoadSegments.
func (img *Image) WriteHeaders(out *os.File) error {
	if _, err := out.Write(img.Ehdr); err != nil {
		return err
	}
	if _, err := out.Write(img.Phdrs); err != nil {
		return err
	}
	if _, err := out.Write(img.NoteBody); err != nil {
		return err
	}
	if img.NotePad > 0 {
		if _, err := out.Write(make([]byte, img.NotePad)); err != nil {
			return err
		}
	}
	return nil
}
