//go:build linux

package arch

import (
	"encoding/binary"

	"github.com/ja7ad/opencore/pkg/opencore/elfcore"
	"github.com/ja7ad/opencore/internal/ptrace"
)

func init() { register("amd64", func() Backend { return amd64Backend{} }) }

// amd64PtRegsSize is sizeof(struct user_regs_struct) / pt_regs on x86_64:
// 27 general-purpose registers, 8 bytes each.
const amd64PtRegsSize = 27 * 8

// amd64PRStatusSize is sizeof(struct elf_prstatus) on x86_64.
const amd64PRStatusSize = 336

// register indices within pt_regs, in kernel declaration order.
const (
	amd64RegRIP = 16
	amd64RegRSP = 19
)

type amd64Backend struct{}

func (amd64Backend) MachineID() uint16  { return elfcore.EM_X86_64 }
func (amd64Backend) Is64() bool         { return true }
func (amd64Backend) PtRegsSize() int    { return amd64PtRegsSize }
func (amd64Backend) PRStatusSize() int  { return amd64PRStatusSize }

func (amd64Backend) CapturePtRegs(tid int) ([]byte, error) {
	buf := make([]byte, amd64PtRegsSize)
	_, err := ptrace.GetRegSet(tid, ptrace.NTPRStatus, buf)
	return buf, err
}

func (amd64Backend) EncodePRStatus(in PRStatusInput) []byte {
	buf := make([]byte, amd64PRStatusSize)
	le := binary.LittleEndian

	le.PutUint16(buf[12:], uint16(in.CurSig))
	le.PutUint32(buf[32:], uint32(in.Pid))
	le.PutUint32(buf[36:], uint32(in.PPid))
	le.PutUint32(buf[40:], uint32(in.PGrp))
	le.PutUint32(buf[44:], uint32(in.Sid))

	regs := in.Regs
	if len(regs) > amd64PtRegsSize {
		regs = regs[:amd64PtRegsSize]
	}
	copy(buf[112:112+amd64PtRegsSize], regs)

	return buf
}

func (amd64Backend) ExtraNotes(tid int) []elfcore.Note { return nil }

func (amd64Backend) MinidumpReachable(regs []byte, begin, end uint64) bool {
	for i := 0; i*8+8 <= len(regs); i++ {
		v := binary.LittleEndian.Uint64(regs[i*8:])
		if v >= begin && v < end {
			return true
		}
	}
	return false
}
