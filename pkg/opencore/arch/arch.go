//go:build linux

package arch

import (
	"errors"

	"github.com/ja7ad/opencore/pkg/opencore/elfcore"
)

// ErrUnsupported is returned by For when runtime.GOARCH names an
// architecture this package has no backend for (spec.md §7 "Unsupported
// architecture").
var ErrUnsupported = errors.New("arch: unsupported architecture")

// PRStatusInput is everything EncodePRStatus needs to build one
// elf_prstatus record for a single thread.
type PRStatusInput struct {
	Pid, Tid, PPid, PGrp, Sid int32
	CurSig                    int16
	Regs                      []byte // raw pt_regs bytes, PtRegsSize() long
}

// Backend is the per-architecture contract spec.md §4.5 describes.
type Backend interface {
	// MachineID is the ELF e_machine value for this architecture.
	MachineID() uint16

	// Is64 reports whether this is a 64-bit ELF target.
	Is64() bool

	// PtRegsSize is sizeof(pt_regs) for this architecture, the size of
	// the buffer CapturePtRegs and EncodePRStatus's Regs field expect.
	PtRegsSize() int

	// CapturePtRegs issues PTRACE_GETREGSET(tid, NT_PRSTATUS) and returns
	// raw pt_regs bytes. On failure it returns a zero-filled buffer of
	// the correct size and the error, which the caller logs and
	// tolerates (spec.md §7 "Permission denied").
	CapturePtRegs(tid int) ([]byte, error)

	// EncodePRStatus lays out one elf_prstatus record bit-exactly.
	EncodePRStatus(in PRStatusInput) []byte

	// PRStatusSize is sizeof(elf_prstatus) for this architecture.
	PRStatusSize() int

	// ExtraNotes returns any additional per-thread notes this
	// architecture defines beyond PRSTATUS/SIGINFO (arm64's FPREGSET,
	// TLS, PAC mask, PAC enabled keys, tagged-address control — spec.md
	// §4.5 "arm64 specifics"). Other architectures return nil.
	ExtraNotes(tid int) []elfcore.Note

	// MinidumpReachable reports whether any general-purpose register,
	// the program counter, or the stack pointer encoded in regs
	// (PtRegsSize() bytes, as captured by CapturePtRegs) falls within
	// [begin, end) — spec.md §4.3 FILTER_MINIDUMP / §4.5.
	MinidumpReachable(regs []byte, begin, end uint64) bool
}

var registry = map[string]func() Backend{}

func register(goarch string, ctor func() Backend) {
	registry[goarch] = ctor
}

// For returns the Backend for the named GOARCH value ("amd64", "386",
// "arm64", "arm", "riscv64"), or ErrUnsupported.
func For(goarch string) (Backend, error) {
	ctor, ok := registry[goarch]
	if !ok {
		return nil, ErrUnsupported
	}
	return ctor(), nil
}
