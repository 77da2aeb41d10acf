//go:build linux

package arch

import (
	"encoding/binary"

	"github.com/ja7ad/opencore/internal/ptrace"
	"github.com/ja7ad/opencore/pkg/opencore/elfcore"
)

func init() { register("386", func() Backend { return x86Backend{} }) }

// x86PtRegsSize is sizeof(struct pt_regs) on i386: 17 registers, 4 bytes
// each (ebx,ecx,edx,esi,edi,ebp,eax,xds,xes,xfs,xgs,orig_eax,eip,xcs,
// eflags,esp,xss).
const x86PtRegsSize = 17 * 4

const x86PRStatusSize = 144

const (
	x86RegEIP = 12
	x86RegESP = 15
)

type x86Backend struct{}

func (x86Backend) MachineID() uint16 { return elfcore.EM_386 }
func (x86Backend) Is64() bool        { return false }
func (x86Backend) PtRegsSize() int   { return x86PtRegsSize }
func (x86Backend) PRStatusSize() int { return x86PRStatusSize }

func (x86Backend) CapturePtRegs(tid int) ([]byte, error) {
	buf := make([]byte, x86PtRegsSize)
	_, err := ptrace.GetRegSet(tid, ptrace.NTPRStatus, buf)
	return buf, err
}

func (x86Backend) EncodePRStatus(in PRStatusInput) []byte {
	buf := make([]byte, x86PRStatusSize)
	le := binary.LittleEndian

	le.PutUint16(buf[12:], uint16(in.CurSig))
	le.PutUint32(buf[24:], uint32(in.Pid))
	le.PutUint32(buf[28:], uint32(in.PPid))
	le.PutUint32(buf[32:], uint32(in.PGrp))
	le.PutUint32(buf[36:], uint32(in.Sid))

	regs := in.Regs
	if len(regs) > x86PtRegsSize {
		regs = regs[:x86PtRegsSize]
	}
	copy(buf[72:72+x86PtRegsSize], regs)

	return buf
}

func (x86Backend) ExtraNotes(tid int) []elfcore.Note { return nil }

func (x86Backend) MinidumpReachable(regs []byte, begin, end uint64) bool {
	for i := 0; i*4+4 <= len(regs); i++ {
		v := uint64(binary.LittleEndian.Uint32(regs[i*4:]))
		if v >= begin && v < end {
			return true
		}
	}
	return false
}
