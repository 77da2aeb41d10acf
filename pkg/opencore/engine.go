//go:build linux

package opencore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/ja7ad/opencore/internal/reexec"
	"github.com/ja7ad/opencore/internal/sigctx"
	"github.com/ja7ad/opencore/pkg/opencore/arch"
)

// Engine is the process-wide coredump front door (spec.md §4.1, §6). All
// state is guarded by one of two locks, mirroring spec.md §5: switchMu
// around enable/disable/configure, handlerMu around the signal-dispatch
// path so a second fault while a dump is in progress blocks rather than
// re-entering.
type Engine struct {
	switchMu  sync.Mutex
	handlerMu sync.Mutex

	cfg     EngineConfig
	handler *sigctx.Handler
	enabled bool
}

var (
	instanceOnce sync.Once
	instance     *Engine
)

// Instance returns the process-wide Engine singleton, created with default
// configuration on first use.
func Instance() *Engine {
	instanceOnce.Do(func() {
		instance = &Engine{cfg: defaultConfig()}
	})
	return instance
}

// Configure applies opts under the switch mutex. Safe to call whether or
// not the engine is currently enabled.
func (e *Engine) Configure(opts ...Option) {
	e.switchMu.Lock()
	defer e.switchMu.Unlock()
	for _, opt := range opts {
		opt(&e.cfg)
	}
}

// Enable installs signal handlers for sigs (spec.md's default fatal set if
// none given). Idempotent: calling it again while already enabled is a
// no-op. Fails with arch.ErrUnsupported on an architecture this package
// has no backend for (spec.md §7 "Unsupported architecture").
func (e *Engine) Enable(sigs ...os.Signal) error {
	e.switchMu.Lock()
	defer e.switchMu.Unlock()

	if e.enabled {
		return nil
	}
	if _, err := arch.For(runtime.GOARCH); err != nil {
		e.cfg.Logger("opencore: enable: %v", err)
		return err
	}

	e.handler = sigctx.Install(sigs, e.onSignal)
	e.enabled = true
	return nil
}

// Disable uninstalls the signal handler set, restoring Go's default
// disposition for every signal it had claimed.
func (e *Engine) Disable() {
	e.switchMu.Lock()
	defer e.switchMu.Unlock()
	e.disableLocked()
}

func (e *Engine) disableLocked() {
	if !e.enabled {
		return
	}
	if e.handler != nil {
		e.handler.Restore()
		e.handler = nil
	}
	e.enabled = false
}

// IsEnabled reports whether the signal front door is currently installed.
func (e *Engine) IsEnabled() bool {
	e.switchMu.Lock()
	defer e.switchMu.Unlock()
	return e.enabled
}

// onSignal is the signal-dispatch path (spec.md §4.1 "Signal handling
// protocol"): disable first so a fault inside the dumper doesn't recurse,
// dump, then re-raise the original signal so the process terminates with
// the correct exit status.
func (e *Engine) onSignal(sig os.Signal) {
	e.handlerMu.Lock()
	defer e.handlerMu.Unlock()

	e.switchMu.Lock()
	e.disableLocked()
	e.switchMu.Unlock()

	if err := e.Dump(DumpOption{}); err != nil {
		e.cfg.Logger("opencore: dump on signal %s: %v", sig, err)
	}

	if s, ok := sig.(syscall.Signal); ok {
		if err := sigctx.Raise(s); err != nil {
			e.cfg.Logger("opencore: re-raise %s: %v", sig, err)
		}
	}
}

// Dump performs one dump (spec.md §4.1 "Dump execution protocol"). It
// always snapshots the current config, composes the output path, flips
// PR_SET_DUMPABLE/PR_SET_PTRACER, runs the re-exec'd child, restores the
// prctl state, and invokes the completion callback with the final path —
// unless the child itself failed to start, in which case the callback is
// not invoked (spec.md §4.1 "Fork failure").
func (e *Engine) Dump(opt DumpOption) error {
	e.switchMu.Lock()
	cfg := e.cfg
	e.switchMu.Unlock()

	pid := opt.PID
	if pid == 0 {
		pid = os.Getpid()
	}
	tid := opt.TID
	if tid == 0 {
		tid = unix.Gettid()
	}

	path := opt.Filename
	if path == "" {
		path = composeFilename(cfg.Dir, cfg.Flags, pid, tid, cfg.Logger)
	}

	oldDumpable, getErr := sigctx.GetDumpable()
	if setErr := sigctx.SetDumpable(1); setErr != nil {
		cfg.Logger("opencore: set dumpable: %v", setErr)
	}
	if err := sigctx.SetPtracerAny(); err != nil {
		cfg.Logger("opencore: set ptracer: %v", err)
	}

	req := childRequest{
		PID:          pid,
		TID:          tid,
		Filename:     path,
		Filter:       uint32(cfg.Filter),
		TimeoutNanos: int64(cfg.Timeout),
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("opencore: marshal dump request: %w", err)
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout+dumpChildGrace)
		defer cancel()
	}

	cmd := reexec.CommandContext(ctx, dumpEntrypoint)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stderr = os.Stderr

	startErr := cmd.Start()
	if startErr != nil {
		cfg.Logger("opencore: fork dump child: %v", startErr)
		restorePrctlState(oldDumpable, getErr, cfg.Logger)
		return fmt.Errorf("%w: %v", ErrDumpNotInvoked, startErr)
	}

	if waitErr := cmd.Wait(); waitErr != nil {
		cfg.Logger("opencore: dump child: %v", waitErr)
	}

	restorePrctlState(oldDumpable, getErr, cfg.Logger)
	cfg.Callback(path)
	return nil
}

// dumpChildGrace bounds how much longer the parent waits for the child
// past the child's own internal watchdog, so a child stuck before it even
// reaches its own timer still gets reaped.
const dumpChildGrace = 2 * time.Second

func restorePrctlState(oldDumpable int, getErr error, logger Logger) {
	if getErr == nil {
		if err := sigctx.SetDumpable(oldDumpable); err != nil {
			logger("opencore: restore dumpable: %v", err)
		}
	}
	if err := sigctx.ClearPtracer(); err != nil {
		logger("opencore: clear ptracer: %v", err)
	}
}
