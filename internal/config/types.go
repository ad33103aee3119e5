package config

import (
	"errors"
	"fmt"
	"time"

	terr "flipwatch/internal/errors"
	"flipwatch/internal/units"
)

// ErrInvalidConfiguration marks a configuration that breaks the assembler's
// precondition of exactly one memory target.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// MemoryTarget selects how much memory the detector watches. It is either
// ExplicitSize or UseAll.
type MemoryTarget interface {
	isMemoryTarget()
	fmt.Stringer
}

// ExplicitSize watches a fixed number of bytes.
type ExplicitSize struct {
	Size units.ByteCount
}

func (ExplicitSize) isMemoryTarget() {}

func (e ExplicitSize) String() string {
	return e.Size.String()
}

func (UseAll) isMemoryTarget() {}

// Fields are the parsed command-line values handed to Assemble.
type Fields struct {
	MemoryToMonitor *units.ByteCount
	UseAll          *UseAll
	Delay           time.Duration
	Parallel        bool
	Verbose         bool
	LockMemory      bool
}

// MonitorConfig is the immutable configuration consumed by the detector.
type MonitorConfig struct {
	memory     MemoryTarget
	delay      time.Duration
	parallel   bool
	verbose    bool
	lockMemory bool
}

// Memory returns the memory target, never nil for an assembled config.
func (c MonitorConfig) Memory() MemoryTarget { return c.memory }

// Delay returns the pause between integrity checks. Zero means check continuously.
func (c MonitorConfig) Delay() time.Duration { return c.delay }

// Parallel reports whether checks should be spread across goroutines.
func (c MonitorConfig) Parallel() bool { return c.parallel }

// Verbose reports whether extra information should be printed.
func (c MonitorConfig) Verbose() bool { return c.verbose }

// LockMemory reports whether the watched buffer should be pinned in RAM.
func (c MonitorConfig) LockMemory() bool { return c.lockMemory }

// Assemble builds a MonitorConfig. The caller guarantees that exactly one of
// MemoryToMonitor and UseAll is set; breaking that contract yields a critical
// error wrapping ErrInvalidConfiguration.
func Assemble(fields Fields) (MonitorConfig, error) {
	var target MemoryTarget
	switch {
	case fields.MemoryToMonitor != nil && fields.UseAll != nil:
		return MonitorConfig{}, invalid("memory-to-monitor and use-all are mutually exclusive", "both")
	case fields.MemoryToMonitor != nil:
		if *fields.MemoryToMonitor == 0 {
			return MonitorConfig{}, invalid("memory-to-monitor must be positive", "0")
		}
		target = ExplicitSize{Size: *fields.MemoryToMonitor}
	case fields.UseAll != nil:
		target = *fields.UseAll
	default:
		return MonitorConfig{}, invalid("one of memory-to-monitor or use-all is required", "neither")
	}

	if fields.Delay < 0 {
		return MonitorConfig{}, invalid("delay must not be negative", fields.Delay.String())
	}

	return MonitorConfig{
		memory:     target,
		delay:      fields.Delay,
		parallel:   fields.Parallel,
		verbose:    fields.Verbose,
		lockMemory: fields.LockMemory,
	}, nil
}

func invalid(reason, actual string) error {
	return terr.New(
		terr.CategoryCritical,
		fmt.Errorf("%w: %s", ErrInvalidConfiguration, reason),
		terr.ErrorContext{Operation: "assemble_config", Expected: "exactly one memory target", Actual: actual},
	)
}
