//go:build linux

package arch

import (
	"encoding/binary"

	"github.com/ja7ad/opencore/internal/ptrace"
	"github.com/ja7ad/opencore/pkg/opencore/elfcore"
)

func init() { register("arm64", func() Backend { return arm64Backend{} }) }

// arm64PtRegsSize is sizeof(struct user_pt_regs) on arm64: regs[31] + sp +
// pc + pstate, all uint64.
const arm64PtRegsSize = 31*8 + 8 + 8 + 8

// arm64PRStatusSize is sizeof(struct elf_prstatus) on arm64.
const arm64PRStatusSize = 392

const (
	arm64RegSPOffset     = 31 * 8 // within pt_regs
	arm64RegPCOffset     = 31*8 + 8
	arm64RegPStateOffset = 31*8 + 16
)

// vaBits is the default virtual-address-space width used by the PAC mask
// software fallback (spec.md §4.5, preserved from arm64/opencore.cpp).
const vaBits = 39

type arm64Backend struct{}

func (arm64Backend) MachineID() uint16 { return elfcore.EM_AARCH64 }
func (arm64Backend) Is64() bool        { return true }
func (arm64Backend) PtRegsSize() int   { return arm64PtRegsSize }
func (arm64Backend) PRStatusSize() int { return arm64PRStatusSize }

func (arm64Backend) CapturePtRegs(tid int) ([]byte, error) {
	buf := make([]byte, arm64PtRegsSize)
	_, err := ptrace.GetRegSet(tid, ptrace.NTPRStatus, buf)
	return buf, err
}

func (arm64Backend) EncodePRStatus(in PRStatusInput) []byte {
	buf := make([]byte, arm64PRStatusSize)
	le := binary.LittleEndian

	le.PutUint16(buf[12:], uint16(in.CurSig))
	le.PutUint32(buf[32:], uint32(in.Pid))
	le.PutUint32(buf[36:], uint32(in.PPid))
	le.PutUint32(buf[40:], uint32(in.PGrp))
	le.PutUint32(buf[44:], uint32(in.Sid))

	regs := in.Regs
	if len(regs) > arm64PtRegsSize {
		regs = regs[:arm64PtRegsSize]
	}
	copy(buf[112:112+arm64PtRegsSize], regs)

	return buf
}

// ExtraNotes captures, per thread, NT_FPREGSET, NT_ARM_TLS,
// NT_ARM_PAC_MASK, NT_ARM_PAC_ENABLED_KEYS, and NT_ARM_TAGGED_ADDR_CTRL
// via ptrace, falling back to a zeroed (or, for the PAC mask, synthesized)
// descriptor on failure so the core file's note count never depends on
// which regsets this kernel happens to support.
func (arm64Backend) ExtraNotes(tid int) []elfcore.Note {
	notes := make([]elfcore.Note, 0, 4)

	fpregset := make([]byte, 520) // struct user_fpsimd_state: 32*16 vregs + fpsr + fpcr
	_, _ = ptrace.GetRegSet(tid, ptrace.NTFPRegSet, fpregset)
	notes = append(notes, elfcore.Note{Name: "LINUX", Type: elfcore.NT_FPREGSET, Desc: fpregset})

	tls := make([]byte, 8)
	_, _ = ptrace.GetRegSet(tid, ptrace.NTArmTLS, tls)
	notes = append(notes, elfcore.Note{Name: "LINUX", Type: elfcore.NT_ARM_TLS, Desc: tls})

	pacMask := make([]byte, 16)
	if _, err := ptrace.GetRegSet(tid, ptrace.NTArmPACMask, pacMask); err != nil {
		mask := Arm64PACMaskFallback()
		binary.LittleEndian.PutUint64(pacMask[0:], mask)
		binary.LittleEndian.PutUint64(pacMask[8:], mask)
	}
	notes = append(notes, elfcore.Note{Name: "LINUX", Type: elfcore.NT_ARM_PAC_MASK, Desc: pacMask})

	pacKeys := make([]byte, 8)
	_, _ = ptrace.GetRegSet(tid, ptrace.NTArmPACEnabledKeys, pacKeys)
	notes = append(notes, elfcore.Note{Name: "LINUX", Type: elfcore.NT_ARM_PAC_ENABLED_KEYS, Desc: pacKeys})

	taggedCtrl := make([]byte, 8)
	_, _ = ptrace.GetRegSet(tid, ptrace.NTArmTaggedAddrCtrl, taggedCtrl)
	notes = append(notes, elfcore.Note{Name: "LINUX", Type: elfcore.NT_ARM_TAGGED_ADDR_CTRL, Desc: taggedCtrl})

	return notes
}

// Arm64PACMaskFallback computes the software PAC mask used when
// PTRACE_GETREGSET(NT_ARM_PAC_MASK) fails, ported from
// arm64/opencore.cpp CreateCorePrStatus:
//
//	mask = ((~0ULL << VA_BITS) & (~0ULL >> (64 - 1 - 54)))
func Arm64PACMaskFallback() uint64 {
	var all uint64 = ^uint64(0)
	return (all << vaBits) & (all >> (64 - 1 - 54))
}

func (arm64Backend) MinidumpReachable(regs []byte, begin, end uint64) bool {
	if len(regs) < arm64PtRegsSize {
		return false
	}
	check := func(off int) bool {
		v := binary.LittleEndian.Uint64(regs[off:])
		return v >= begin && v < end
	}
	if check(arm64RegSPOffset) || check(arm64RegPCOffset) {
		return true
	}
	for i := 0; i < 31; i++ {
		if check(i * 8) {
			return true
		}
	}
	return false
}
