package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	terr "flipwatch/internal/errors"
)

// DetectorService defines the integrity-check loop behavior.
type DetectorService interface {
	Prepare(ctx context.Context) error
	Run(ctx context.Context) error
}

// Dependencies groups the external services required by the daemon.
type Dependencies struct {
	Detector DetectorService
	Logger   *slog.Logger
}

// Daemon coordinates the detector lifecycle.
type Daemon struct {
	detector DetectorService
	logger   *slog.Logger
}

// NewDaemon constructs a Daemon with validated dependencies.
func NewDaemon(deps Dependencies) *Daemon {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return &Daemon{
		detector: deps.Detector,
		logger:   deps.Logger,
	}
}

// Run prepares the detector and blocks until the context is cancelled.
// Cancellation is a clean shutdown and returns nil.
func (d *Daemon) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			err = fmt.Errorf("daemon panic: %v", r)
			d.logger.Error("daemon panic recovered",
				slog.Any("panic", r),
				slog.String("stack", string(stack)))
		}
	}()

	if ctx == nil {
		return errors.New("context must not be nil")
	}
	if d.detector == nil {
		return errors.New("detector must not be nil")
	}

	// Allocation happens before the loop so failures surface immediately
	if err := d.detector.Prepare(ctx); err != nil {
		d.logger.Error("detector prepare failed", terr.LogArgs(err)...)
		return err
	}

	if err := d.detector.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			d.logger.Info("detector stopped")
			return nil
		}
		d.logger.Error("detector loop failed", terr.LogArgs(err)...)
		return err
	}
	return nil
}
