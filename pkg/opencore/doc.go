//go:build linux

// Package opencore is an in-process ELF core-dump writer for Linux
// userspace programs. It quiesces every thread of the host process (or an
// explicitly named one), reads memory and register state through /proc
// and ptrace, and lays out a standard ET_CORE file — a single PT_NOTE
// segment followed by one PT_LOAD per mapped VMA — readable by gdb/lldb
// without modification.
//
// Overview:
//   - Engine is the process-wide singleton: Enable/Disable install or
//     remove signal handlers for the fatal-signal set, Configure adjusts
//     output directory/filename flags/VMA filter bits/timeout/callback,
//     and Dump performs one dump on demand.
//   - pkg/opencore/arch supplies per-architecture register layout.
//   - pkg/opencore/elfcore supplies the ELF header/note/segment encoder.
//   - pkg/opencore/vma supplies the VMA filter policy.
//   - internal/ptrace, internal/procfs, internal/reexec, and
//     internal/sigctx supply the OS-facing primitives this package wires
//     together.
//
// A dump always runs in a re-exec'd child process (internal/reexec),
// since Go cannot safely fork() without exec() once more than one
// goroutine is running; the re-exec'd child attaches to the original
// process's threads via ptrace exactly as a forked child would have.
//
// Example:
//
//	eng := opencore.Instance()
//	eng.Configure(opencore.WithDir("/var/crash"), opencore.WithTimeout(5*time.Second))
//	if err := eng.Enable(); err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Disable()
package opencore
