// Package cli implements the flipwatch command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"flipwatch/internal/config"
	terr "flipwatch/internal/errors"
)

const (
	flagMemory     = "memory-to-monitor"
	flagUseAll     = "use-all"
	flagDelay      = "delay-between-checks"
	flagParallel   = "parallel"
	flagVerbose    = "verbose"
	flagLockMemory = "lock-memory"
	flagConfig     = "config"
)

// Version is stamped at build time with -ldflags "-X flipwatch/internal/cli.Version=...".
var Version = "dev"

var (
	// ErrMemoryTargetRequired is returned when neither memory selector is given.
	ErrMemoryTargetRequired = errors.New("one of --" + flagMemory + " or --" + flagUseAll + " is required")

	// ErrMemoryTargetConflict is returned when both memory selectors are given.
	ErrMemoryTargetConflict = errors.New("--" + flagMemory + " and --" + flagUseAll + " cannot be used together")
)

// Runner receives the assembled configuration and a logger built from it.
type Runner func(ctx context.Context, cfg config.MonitorConfig, logger *slog.Logger) error

type options struct {
	configPath string
	memory     sizeFlag
	useAll     useAllFlag
	delay      delayFlag
	parallel   bool
	verbose    bool
	lockMemory bool
}

// NewRootCommand builds the flipwatch root command around run.
func NewRootCommand(run Runner) *cobra.Command {
	opts := &options{delay: delayFlag{value: config.DefaultDelay}}

	cmd := &cobra.Command{
		Use:   "flipwatch",
		Short: "Monitors memory for bit-flips (won't work on ECC memory).",
		Long: `Monitors memory for bit-flips (won't work on ECC memory).
The chance of detection scales with the physical size of your DRAM modules
and the percentage of them you allocate to this program.`,
		Version:       Version,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				if terr.IsCritical(err) {
					return err
				}
				return &UsageError{Err: err}
			}
			return run(cmd.Context(), cfg, NewLogger(cmd.OutOrStdout(), cfg.Verbose()))
		},
	}

	fs := cmd.Flags()
	fs.VarP(&opts.memory, flagMemory, "m",
		"the size of the memory to monitor for bit flips, understands e.g. 200, 5kB, 2GB and 3Mb; "+
			"a number without suffix is a number of bytes")
	opts.useAll.register(fs)
	fs.VarP(&opts.delay, flagDelay, "d", "the delay in between each integrity check, e.g. 30s, 5m or 1h30m")
	fs.BoolVar(&opts.parallel, flagParallel, false, "run the integrity check in parallel")
	fs.BoolVarP(&opts.verbose, flagVerbose, "v", false, "print extra information")
	fs.BoolVar(&opts.lockMemory, flagLockMemory, false, "lock the monitored memory in RAM so it cannot be swapped out")
	fs.StringVarP(&opts.configPath, flagConfig, "c", "",
		"YAML file with default option values (env "+config.EnvConfigFile+")")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	return cmd
}

// resolve merges the optional config file with the flags set on the command
// line and assembles the result. Command-line flags win.
func (o *options) resolve(cmd *cobra.Command) (config.MonitorConfig, error) {
	fields := config.Fields{Delay: config.DefaultDelay}

	path := o.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}
	if path != "" {
		file, err := config.LoadFile(path)
		if err != nil {
			return config.MonitorConfig{}, err
		}
		if err := file.Apply(&fields); err != nil {
			return config.MonitorConfig{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	fs := cmd.Flags()
	if fs.Changed(flagMemory) && fs.Changed(flagUseAll) {
		return config.MonitorConfig{}, ErrMemoryTargetConflict
	}
	if fs.Changed(flagMemory) {
		fields.MemoryToMonitor, fields.UseAll = o.memory.value, nil
	}
	if fs.Changed(flagUseAll) {
		if selector := o.useAll.selector(); selector != nil {
			fields.MemoryToMonitor, fields.UseAll = nil, selector
		}
	}
	if fs.Changed(flagDelay) {
		fields.Delay = o.delay.value
	}
	if fs.Changed(flagParallel) {
		fields.Parallel = o.parallel
	}
	if fs.Changed(flagVerbose) {
		fields.Verbose = o.verbose
	}
	if fs.Changed(flagLockMemory) {
		fields.LockMemory = o.lockMemory
	}

	if fields.MemoryToMonitor == nil && fields.UseAll == nil {
		return config.MonitorConfig{}, ErrMemoryTargetRequired
	}

	return config.Assemble(fields)
}

// usageArgs reports positional argument errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// NewLogger returns the JSON logger used by every component, at debug level when verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// UsageError marks a command line or config file the user has to fix.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ExitCode maps a command error to a process exit status: 2 for usage
// errors, 70 (EX_SOFTWARE) for internal faults and 1 for runtime failures.
func ExitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &usage):
		return 2
	case terr.IsCritical(err):
		return 70
	default:
		return 1
	}
}
