//go:build linux

package sigctx

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// DefaultSignals is the fatal-signal set spec.md §4.1 names: SIGSEGV,
// SIGABRT, SIGBUS, SIGILL, SIGFPE. SIGTRAP is deliberately excluded here
// and left to callers that opt into it explicitly, per the "optionally
// also SIGTRAP" wording.
var DefaultSignals = []os.Signal{
	syscall.SIGSEGV,
	syscall.SIGABRT,
	syscall.SIGBUS,
	syscall.SIGILL,
	syscall.SIGFPE,
}

// Handler is installed front-door state: the channel os/signal delivers
// to, and the dispatch goroutine driving a caller-supplied callback.
type Handler struct {
	mu      sync.Mutex
	ch      chan os.Signal
	stop    chan struct{}
	signals []os.Signal
}

// Install registers for sigs (DefaultSignals if nil) and starts a
// dispatch goroutine that calls onSignal for each received signal, in
// turn, never concurrently. onSignal is expected to perform the dump and
// then re-raise the signal itself (spec.md §4.1 step 4) — Install does not
// re-raise on the caller's behalf, since the dump must complete first.
//
// os/signal only reliably observes SIGSEGV/SIGBUS/SIGFPE/SIGILL when they
// originate outside Go code; a fault inside Go code is handled by the Go
// runtime itself before this package ever sees it.
func Install(sigs []os.Signal, onSignal func(os.Signal)) *Handler {
	if len(sigs) == 0 {
		sigs = DefaultSignals
	}

	h := &Handler{
		ch:      make(chan os.Signal, 1),
		stop:    make(chan struct{}),
		signals: sigs,
	}
	signal.Notify(h.ch, sigs...)

	go func() {
		for {
			select {
			case s := <-h.ch:
				onSignal(s)
			case <-h.stop:
				return
			}
		}
	}()

	return h
}

// Restore stops signal delivery through this handler and returns the
// process to Go's default handling of its signal set, mirroring
// disable()'s "restore original handlers" contract. A pure-Go process has
// no prior external disposition to remember, so the restore target is
// always Go's own default.
func (h *Handler) Restore() {
	h.mu.Lock()
	defer h.mu.Unlock()
	signal.Stop(h.ch)
	select {
	case <-h.stop:
	default:
		close(h.stop)
	}
}

// Raise re-delivers sig to the current process via kill(2) on its own pid
// (a process-directed signal, not a thread-directed one), after the handler's own disposition has been restored, so the
// signal reaches the default action (spec.md §4.1 step 4).
func Raise(sig os.Signal) error {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return nil
	}
	return syscall.Kill(syscall.Getpid(), s)
}
