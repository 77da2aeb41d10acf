//go:build linux

package opencore

// DumpOption is the explicit-invocation contract spec.md §3/§6 describes:
// which process and thread to dump, and an optional absolute filename
// override. PID and TID of zero mean "current process" / "current OS
// thread" and are resolved by Engine.Dump.
//
// The original also carries an optional captured siginfo_t/ucontext_t;
// this implementation never captures either (SPEC_FULL.md §C item 8), so
// there is no field for them here — register state for the faulting
// thread always comes from the PTRACE_GETREGSET snapshot taken during
// quiescence.
type DumpOption struct {
	PID      int
	TID      int
	Filename string
}
