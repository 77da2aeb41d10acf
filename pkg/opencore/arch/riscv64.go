//go:build linux

package arch

import (
	"encoding/binary"

	"github.com/ja7ad/opencore/internal/ptrace"
	"github.com/ja7ad/opencore/pkg/opencore/elfcore"
)

func init() { register("riscv64", func() Backend { return riscv64Backend{} }) }

// riscv64PtRegsSize is sizeof(struct user_regs_struct) on riscv64: pc
// followed by 31 general-purpose registers, 8 bytes each.
const riscv64PtRegsSize = 32 * 8

// riscv64PRStatusSize is sizeof(struct elf_prstatus) on riscv64, using the
// same 112-byte prefix shape as arm64's (both are LP64 targets with
// 8-byte old_sigset_t and timeval fields).
const riscv64PRStatusSize = 376

const (
	riscv64RegPC = 0
	riscv64RegSP = 2
)

type riscv64Backend struct{}

func (riscv64Backend) MachineID() uint16 { return elfcore.EM_RISCV }
func (riscv64Backend) Is64() bool        { return true }
func (riscv64Backend) PtRegsSize() int   { return riscv64PtRegsSize }
func (riscv64Backend) PRStatusSize() int { return riscv64PRStatusSize }

func (riscv64Backend) CapturePtRegs(tid int) ([]byte, error) {
	buf := make([]byte, riscv64PtRegsSize)
	_, err := ptrace.GetRegSet(tid, ptrace.NTPRStatus, buf)
	return buf, err
}

func (riscv64Backend) EncodePRStatus(in PRStatusInput) []byte {
	buf := make([]byte, riscv64PRStatusSize)
	le := binary.LittleEndian

	le.PutUint16(buf[12:], uint16(in.CurSig))
	le.PutUint32(buf[32:], uint32(in.Pid))
	le.PutUint32(buf[36:], uint32(in.PPid))
	le.PutUint32(buf[40:], uint32(in.PGrp))
	le.PutUint32(buf[44:], uint32(in.Sid))

	regs := in.Regs
	if len(regs) > riscv64PtRegsSize {
		regs = regs[:riscv64PtRegsSize]
	}
	copy(buf[112:112+riscv64PtRegsSize], regs)

	return buf
}

func (riscv64Backend) ExtraNotes(tid int) []elfcore.Note { return nil }

func (riscv64Backend) MinidumpReachable(regs []byte, begin, end uint64) bool {
	for i := 0; i*8+8 <= len(regs); i++ {
		v := binary.LittleEndian.Uint64(regs[i*8:])
		if v >= begin && v < end {
			return true
		}
	}
	return false
}
