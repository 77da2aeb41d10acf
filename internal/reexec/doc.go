// Package reexec lets a program re-invoke its own binary as a fresh
// process and dispatch straight into a registered entry point, instead of
// calling a named subcommand through its normal CLI parsing.
//
// This is the portable replacement for fork()-without-exec in a
// multithreaded Go process: the Go runtime cannot safely fork and keep
// running (only the calling OS thread survives in the child — the
// scheduler, GC, and every other goroutine do not), so anything that
// needs a fresh, single-purpose process body re-execs /proc/self/exe
// instead and lets the kernel build it a clean process from scratch.
//
// Usage mirrors the standard shape: register an initializer under a name
// early in an init or package-level var, check reexec.Init() first thing
// in main(), and use reexec.Command to launch the child with os.Args[0]
// set to the registered name.
package reexec
