package elfcore

import "encoding/binary"

// EncodeEhdr builds the ELF header for an ET_CORE file with phnum program
// headers and no section-header table, per spec.md §4.4.
func (l Layout) EncodeEhdr(phnum int) []byte {
	buf := make([]byte, l.EhdrSize())

	buf[0], buf[1], buf[2], buf[3] = elfMag0, elfMag1, elfMag2, elfMag3
	if l.Is64 {
		buf[4] = elfClass64
	} else {
		buf[4] = elfClass32
	}
	buf[5] = elfData2LSB
	buf[6] = elfVersionCurrent
	// buf[7] (EI_OSABI) and buf[8] (EI_ABIVERSION) left 0 (ELFOSABI_NONE).
	// buf[9:16] padding, already zero.

	le := binary.LittleEndian
	le.PutUint16(buf[16:], etCore)
	le.PutUint16(buf[18:], l.Machine)
	le.PutUint32(buf[20:], elfVersionCurrent)

	if l.Is64 {
		// e_entry, e_phoff, e_shoff (8 bytes each starting at 24)
		le.PutUint64(buf[32:], uint64(l.EhdrSize())) // e_phoff
		le.PutUint32(buf[48:], 0)                    // e_flags
		le.PutUint16(buf[52:], uint16(l.EhdrSize())) // e_ehsize
		le.PutUint16(buf[54:], uint16(l.PhdrSize())) // e_phentsize
		le.PutUint16(buf[56:], uint16(phnum))        // e_phnum
		// e_shentsize, e_shnum, e_shstrndx left zero: no section headers.
	} else {
		le.PutUint32(buf[28:], uint32(l.EhdrSize())) // e_phoff
		le.PutUint32(buf[36:], 0)                    // e_flags
		le.PutUint16(buf[40:], uint16(l.EhdrSize())) // e_ehsize
		le.PutUint16(buf[42:], uint16(l.PhdrSize())) // e_phentsize
		le.PutUint16(buf[44:], uint16(phnum))        // e_phnum
	}
	return buf
}

// EncodePhdr lays out one program-header entry per Layout's word size.
func (l Layout) EncodePhdr(p ProgramHeader) []byte {
	buf := make([]byte, l.PhdrSize())
	le := binary.LittleEndian
	if l.Is64 {
		le.PutUint32(buf[0:], p.Type)
		le.PutUint32(buf[4:], p.Flags)
		le.PutUint64(buf[8:], p.Offset)
		le.PutUint64(buf[16:], p.VAddr)
		le.PutUint64(buf[24:], p.PAddr)
		le.PutUint64(buf[32:], p.FileSz)
		le.PutUint64(buf[40:], p.MemSz)
		le.PutUint64(buf[48:], p.Align)
	} else {
		le.PutUint32(buf[0:], p.Type)
		le.PutUint32(buf[4:], uint32(p.Offset))
		le.PutUint32(buf[8:], uint32(p.VAddr))
		le.PutUint32(buf[12:], uint32(p.PAddr))
		le.PutUint32(buf[16:], uint32(p.FileSz))
		le.PutUint32(buf[20:], uint32(p.MemSz))
		le.PutUint32(buf[24:], p.Flags)
		le.PutUint32(buf[28:], uint32(p.Align))
	}
	return buf
}
