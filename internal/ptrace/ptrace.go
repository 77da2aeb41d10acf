//go:build linux

package ptrace

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// NT_* regset types for PTRACE_GETREGSET, values taken from the kernel UAPI
// (linux/elf.h, asm/ptrace.h). golang.org/x/sys/unix does not export the
// arm64-specific ones, so they are defined here the same way the upstream
// C headers guard them: a local fallback constant, not a generated one.
const (
	NTPRStatus           = 1
	NTFPRegSet           = 2
	NTArmTLS             = 0x401
	NTArmPACMask         = 0x406
	NTArmTaggedAddrCtrl  = 0x409
	NTArmPACEnabledKeys  = 0x40a
)

// Attach issues PTRACE_ATTACH against tid and waits for the resulting
// group-stop. Per-thread failures are the caller's to tolerate: a failed
// Attach leaves that thread's ThreadRecord.Attached false and the dump
// proceeds with a zero-filled register set for it.
func Attach(tid int) error {
	if _, _, errno := unix.RawSyscall6(unix.SYS_PTRACE, unix.PTRACE_ATTACH, uintptr(tid), 0, 0, 0, 0); errno != 0 {
		return fmt.Errorf("%w: tid=%d: %v", ErrAttachFailed, tid, errno)
	}
	var status unix.WaitStatus
	if _, err := unix.Wait4(tid, &status, unix.WALL|unix.WUNTRACED, nil); err != nil {
		return fmt.Errorf("%w: tid=%d: %v", ErrWaitFailed, tid, err)
	}
	return nil
}

// Detach issues PTRACE_DETACH against tid, resuming it with no pending
// signal. Called unconditionally for every thread with Attached == true,
// even when the dump failed partway through, so the target process is
// always left runnable.
func Detach(tid int) error {
	_, _, errno := unix.RawSyscall6(unix.SYS_PTRACE, unix.PTRACE_DETACH, uintptr(tid), 0, 0, 0, 0)
	if errno != 0 {
		return fmt.Errorf("ptrace: detach tid=%d: %v", tid, errno)
	}
	return nil
}

// GetRegSet issues PTRACE_GETREGSET(tid, nt) and returns up to len(buf)
// bytes of the returned descriptor. The caller pre-sizes buf to the
// expected struct size for the target architecture (e.g. sizeof(pt_regs)).
func GetRegSet(tid int, nt int, buf []byte) (int, error) {
	iov := unix.Iovec{Base: &buf[0], Len: uint64(len(buf))}
	_, _, errno := unix.RawSyscall6(unix.SYS_PTRACE, unix.PTRACE_GETREGSET, uintptr(tid), uintptr(nt), uintptr(unsafe.Pointer(&iov)), 0, 0)
	if errno != 0 {
		return 0, fmt.Errorf("%w: tid=%d nt=%#x: %v", ErrGetRegSetFailed, tid, nt, errno)
	}
	return int(iov.Len), nil
}
