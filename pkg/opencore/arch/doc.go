//go:build linux

// Package arch supplies the per-ISA pieces the coredump engine cannot
// share across architectures: the elf_prstatus register layout, capturing
// pt_regs from ptrace, any additional per-thread notes an architecture
// defines (arm64's FPREGSET/TLS/PAC/tagged-address-control notes), and
// the register-reachability test minidump mode uses to decide which VMAs
// to keep.
//
// Each backend is a small, self-contained file (amd64.go, arm64.go,
// x86.go, arm.go, riscv64.go); For picks the right one by runtime.GOARCH.
package arch
