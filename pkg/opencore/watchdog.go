//go:build linux

package opencore

import (
	"sync"
	"time"
)

// Watchdog is the idiomatic Go replacement for the original's SIGALRM-based
// timeout: a timer that, if it fires before Stop is called, runs finish
// exactly once. Used inside the re-exec'd dump child (spec.md §4.1 "Arm a
// wall-clock alarm using the configured timeout; on alarm, finalize
// partial state and exit the child").
type Watchdog struct {
	mu     sync.Mutex
	timer  *time.Timer
	finish func()
	fired  bool
}

// StartWatchdog arms a timer for d that calls finish at most once, either
// when it fires or never if Stop is called first.
func StartWatchdog(d time.Duration, finish func()) *Watchdog {
	w := &Watchdog{finish: finish}
	w.timer = time.AfterFunc(d, w.fire)
	return w
}

func (w *Watchdog) fire() {
	w.mu.Lock()
	if w.fired {
		w.mu.Unlock()
		return
	}
	w.fired = true
	w.mu.Unlock()
	w.finish()
}

// Stop cancels the timer. Its return value mirrors time.Timer.Stop: false
// means the timer had already fired (or been stopped) before this call.
func (w *Watchdog) Stop() bool {
	return w.timer.Stop()
}
