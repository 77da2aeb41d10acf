//go:build linux

package arch

import (
	"encoding/binary"

	"github.com/ja7ad/opencore/internal/ptrace"
	"github.com/ja7ad/opencore/pkg/opencore/elfcore"
)

func init() { register("arm", func() Backend { return armBackend{} }) }

// armPtRegsSize is sizeof(struct pt_regs) on arm: uregs[18] (r0-r12, sp,
// lr, pc, cpsr, orig_r0), 4 bytes each.
const armPtRegsSize = 18 * 4

// armPRStatusSize is sizeof(struct elf_prstatus) on arm. Unlike i386's
// naturally-aligned layout, the kernel defines this struct packed — there
// is no 2-byte gap after pr_cursig before pr_sigpend — so the offsets
// below differ from x86.go's by exactly that gap at every field after it.
const armPRStatusSize = 146

const (
	armRegSP = 13
	armRegLR = 14
	armRegPC = 15
)

type armBackend struct{}

func (armBackend) MachineID() uint16 { return elfcore.EM_ARM }
func (armBackend) Is64() bool        { return false }
func (armBackend) PtRegsSize() int   { return armPtRegsSize }
func (armBackend) PRStatusSize() int { return armPRStatusSize }

func (armBackend) CapturePtRegs(tid int) ([]byte, error) {
	buf := make([]byte, armPtRegsSize)
	_, err := ptrace.GetRegSet(tid, ptrace.NTPRStatus, buf)
	return buf, err
}

func (armBackend) EncodePRStatus(in PRStatusInput) []byte {
	buf := make([]byte, armPRStatusSize)
	le := binary.LittleEndian

	le.PutUint16(buf[12:], uint16(in.CurSig))
	le.PutUint32(buf[22:], uint32(in.Pid))
	le.PutUint32(buf[26:], uint32(in.PPid))
	le.PutUint32(buf[30:], uint32(in.PGrp))
	le.PutUint32(buf[34:], uint32(in.Sid))

	regs := in.Regs
	if len(regs) > armPtRegsSize {
		regs = regs[:armPtRegsSize]
	}
	copy(buf[70:70+armPtRegsSize], regs)

	return buf
}

func (armBackend) ExtraNotes(tid int) []elfcore.Note { return nil }

func (armBackend) MinidumpReachable(regs []byte, begin, end uint64) bool {
	for i := 0; i*4+4 <= len(regs); i++ {
		v := uint64(binary.LittleEndian.Uint32(regs[i*4:]))
		if v >= begin && v < end {
			return true
		}
	}
	return false
}
