//go:build linux

package reexec

import (
	"context"
	"os/exec"
)

// Self returns the path to the current process's binary as the kernel
// resolves it, independent of argv[0] or $PATH lookups.
func Self() string {
	return "/proc/self/exe"
}

// Command returns an *exec.Cmd whose Path is the in-memory current binary
// (/proc/self/exe), so it remains safe to launch even if the on-disk
// binary has since been replaced or deleted. args[0] becomes the
// registered initializer name the child's reexec.Init() dispatches on.
func Command(args ...string) *exec.Cmd {
	panicIfNotInitialized()
	cmd := exec.Command(Self())
	cmd.Args = args
	return cmd
}

// CommandContext is Command bound to a context, so the orchestrator's
// configured dump timeout can be enforced by killing the child directly
// in addition to the child's own internal timer-based watchdog.
func CommandContext(ctx context.Context, args ...string) *exec.Cmd {
	panicIfNotInitialized()
	cmd := exec.CommandContext(ctx, Self())
	cmd.Args = args
	return cmd
}
