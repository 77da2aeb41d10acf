package elfcore

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// PageReader fills buf with the bytes at vaddr in the target process's
// address space. A non-nil error means the page could not be read (the
// page is unmapped, swapped out, or the tracer lost access); the caller
// treats that as "emit a zero page here", not as a fatal condition.
type PageReader func(vaddr uint64, buf []byte) error

// WriteLoadSegments streams every PT_LOAD payload in img.Segments, in
// order, onto out starting at the file's current position (which must
// already equal img.Segments[0].Offset — call WriteHeaders first).
//
// Per spec.md §4.4/§7: a failed page read becomes a zero page so segment
// byte positions stay consistent with the program header. A disk-full
// write (ENOSPC or a short write) stops emission immediately with no
// padding and no rewrite. Any other write failure seeks back to the start
// of the failing segment and overwrites it with zeros before emission
// stops, so the file's layout remains internally consistent even though
// it is truncated.
func WriteLoadSegments(out *os.File, img *Image, read PageReader) error {
	pageSize := int64(img.Layout.PageSize)
	for _, seg := range img.Segments {
		if seg.FileSz == 0 {
			continue
		}
		segStart, err := out.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}
		if err := writeSegment(out, seg, pageSize, read); err != nil {
			if errors.Is(err, syscall.ENOSPC) || errors.Is(err, ErrShortWrite) {
				return err
			}
			if _, serr := out.Seek(segStart, io.SeekStart); serr == nil {
				_ = zeroFill(out, seg.FileSz)
			}
			return err
		}
	}
	return nil
}

func writeSegment(out *os.File, seg ProgramSegment, pageSize int64, read PageReader) error {
	vaddr := seg.VAddr
	remaining := seg.FileSz
	buf := make([]byte, pageSize)

	for remaining > 0 {
		n := uint64(pageSize)
		if remaining < n {
			n = remaining
		}
		chunk := buf[:n]
		if err := read(vaddr, chunk); err != nil {
			for i := range chunk {
				chunk[i] = 0
			}
		}
		written, err := out.Write(chunk)
		if err != nil {
			return err
		}
		if uint64(written) != n {
			return ErrShortWrite
		}
		vaddr += n
		remaining -= n
	}
	return nil
}

func zeroFill(out *os.File, n uint64) error {
	buf := make([]byte, 64*1024)
	for n > 0 {
		c := uint64(len(buf))
		if n < c {
			c = n
		}
		if _, err := out.Write(buf[:c]); err != nil {
			return err
		}
		n -= c
	}
	return nil
}
