//go:build linux

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ja7ad/opencore/internal/reexec"
	"github.com/ja7ad/opencore/pkg/opencore"
	"github.com/ja7ad/opencore/pkg/types"
)

// opencorectl is a thin demonstration CLI around pkg/opencore: enable the
// fatal-signal front door, trigger an explicit dump, or crash on purpose
// to exercise the signal path end to end.

var configPath string

func main() {
	if reexec.Init() {
		return
	}

	root := &cobra.Command{
		Use:   "opencorectl",
		Short: "ELF core-dump engine control and demo CLI",
		Long: `opencorectl drives the in-process coredump engine (pkg/opencore):
install fatal-signal handlers, trigger an explicit dump, or deliberately
crash the process to exercise the signal-handling path end to end.

* GitHub: https://github.com/ja7ad/opencore`,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML file overriding engine defaults (dir, flags, filter, timeout_seconds)")

	root.AddCommand(newEnableCmd(), newDumpCmd(), newCrashCmd())

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func configuredEngine() (*opencore.Engine, error) {
	eng := opencore.Instance()
	eng.Configure(opencore.WithLogger(func(format string, args ...any) { log.Printf(format, args...) }))

	if configPath == "" {
		return eng, nil
	}
	fc, err := loadFileConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}
	eng.Configure(fc.options()...)
	return eng, nil
}

func newEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "install fatal-signal handlers and block until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := configuredEngine()
			if err != nil {
				return err
			}
			if err := eng.Enable(); err != nil {
				return fmt.Errorf("enable: %w", err)
			}
			defer eng.Disable()

			fmt.Println("opencore engine enabled; waiting for a fatal signal or Ctrl-C")
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}
}

func newDumpCmd() *cobra.Command {
	var pid int
	var filename string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "perform one explicit dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := configuredEngine()
			if err != nil {
				return err
			}
			eng.Configure(opencore.WithCallback(func(path string) {
				size := "unknown size"
				if info, statErr := os.Stat(path); statErr == nil {
					size = types.Bytes(info.Size()).Humanized()
				}
				fmt.Printf("core file written to %s (%s)\n", path, size)
			}))
			return eng.Dump(opencore.DumpOption{PID: pid, Filename: filename})
		},
	}
	cmd.Flags().IntVar(&pid, "pid", 0, "target pid (0 = current process)")
	cmd.Flags().StringVar(&filename, "out", "", "absolute output path override")
	return cmd
}

func newCrashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crash",
		Short: "enable the engine, then raise SIGSEGV against itself",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := configuredEngine()
			if err != nil {
				return err
			}
			if err := eng.Enable(); err != nil {
				return fmt.Errorf("enable: %w", err)
			}
			fmt.Println("raising SIGSEGV")
			return syscall.Kill(syscall.Getpid(), syscall.SIGSEGV)
		},
	}
}
