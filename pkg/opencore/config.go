//go:build linux

package opencore

import (
	"os"
	"time"

	"github.com/ja7ad/opencore/pkg/opencore/vma"
)

// FilenameFlag selects which tokens feed the composed output filename
// (spec.md §6 "Flag bits").
type FilenameFlag uint32

const (
	FlagCore        FilenameFlag = 1 << iota // literal "core." prefix
	FlagProcessComm                          // /proc/<pid>/comm
	FlagPID                                  // decimal pid
	FlagThreadComm                           // /proc/<pid>/task/<tid>/comm
	FlagTID                                  // decimal tid
	FlagTimestamp                            // unix seconds at compose time
)

// Logger is the injected, no-op-by-default logging hook. spec.md §1 treats
// generic logging as an out-of-scope collaborator; the engine never
// imports a logging package directly so a host binary can wire in
// whichever one it already uses.
type Logger func(format string, args ...any)

func noopLogger(string, ...any) {}

// EngineConfig is the process-wide, runtime-mutable configuration spec.md
// §3 describes. It is never read or written except through Engine, which
// serializes access with its switch mutex.
type EngineConfig struct {
	Dir      string
	Flags    FilenameFlag
	Filter   vma.FilterFlag
	Timeout  time.Duration
	Callback func(path string)
	Logger   Logger
}

func defaultConfig() EngineConfig {
	return EngineConfig{
		Dir:      os.TempDir(),
		Flags:    FlagCore | FlagTID,
		Filter:   vma.FilterNone,
		Timeout:  30 * time.Second,
		Callback: func(string) {},
		Logger:   noopLogger,
	}
}

// Option mutates an EngineConfig; see WithDir, WithFlags, WithFilter,
// WithTimeout, WithCallback, WithLogger. Applied by Engine.Configure under
// the switch mutex, mirroring spec.md §6's set_dir/set_flag/set_filter/
// set_timeout/set_callback setters.
type Option func(*EngineConfig)

// WithDir sets the output directory for composed filenames.
func WithDir(dir string) Option {
	return func(c *EngineConfig) { c.Dir = dir }
}

// WithFlags sets the filename composition flag bits (spec.md §6).
func WithFlags(f FilenameFlag) Option {
	return func(c *EngineConfig) { c.Flags = f }
}

// WithFilter sets the VMA filter policy bits (spec.md §4.3).
func WithFilter(f vma.FilterFlag) Option {
	return func(c *EngineConfig) { c.Filter = f }
}

// WithTimeout sets the per-dump wall-clock budget enforced by Watchdog.
func WithTimeout(d time.Duration) Option {
	return func(c *EngineConfig) { c.Timeout = d }
}

// WithCallback sets the completion callback invoked with the final path
// after the dump child has been reaped (spec.md §6).
func WithCallback(fn func(path string)) Option {
	return func(c *EngineConfig) {
		if fn != nil {
			c.Callback = fn
		}
	}
}

// WithLogger sets the injected logging hook.
func WithLogger(fn Logger) Option {
	return func(c *EngineConfig) {
		if fn != nil {
			c.Logger = fn
		}
	}
}
