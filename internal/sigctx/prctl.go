//go:build linux

package sigctx

import "golang.org/x/sys/unix"

// PR_SET_PTRACER and its PR_SET_PTRACER_ANY argument are Yama-LSM specific
// and not exported by golang.org/x/sys/unix; defined here the same way the
// upstream kernel headers do, as plain untyped constants.
const (
	prSetPtracer    = 0x59616d61 // "Yama"
	prSetPtracerAny = ^uintptr(0)
)

// GetDumpable returns the process's current PR_GET_DUMPABLE value.
func GetDumpable() (int, error) {
	return unix.PrctlRetInt(unix.PR_GET_DUMPABLE, 0, 0, 0, 0)
}

// SetDumpable sets PR_SET_DUMPABLE. Both the get and the set are
// best-effort in the orchestrator: a failure here does not abort the dump,
// only increases the chance the child's PTRACE_ATTACH calls fail too.
func SetDumpable(v int) error {
	return unix.Prctl(unix.PR_SET_DUMPABLE, uintptr(v), 0, 0, 0)
}

// SetPtracerAny sets PR_SET_PTRACER to PR_SET_PTRACER_ANY so any process
// (in particular the re-exec'd dump child, which is not a descendant at
// the moment it attaches) is permitted to ptrace this one.
func SetPtracerAny() error {
	return unix.Prctl(prSetPtracer, prSetPtracerAny, 0, 0, 0)
}

// ClearPtracer resets PR_SET_PTRACER to 0 (no designated tracer beyond the
// normal ancestry rules), the restore half of SetPtracerAny. There is no
// PR_GET_PTRACER, so unlike dumpable state this cannot restore whatever
// value preceded SetPtracerAny; it always resets to the default.
func ClearPtracer() error {
	return unix.Prctl(prSetPtracer, 0, 0, 0, 0)
}
