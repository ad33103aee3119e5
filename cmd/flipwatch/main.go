package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flipwatch/internal/app"
	"flipwatch/internal/cli"
	"flipwatch/internal/config"
	"flipwatch/internal/detector"
	"flipwatch/internal/sysinfo"
	"flipwatch/internal/syslimit"
)

func main() {
	ctx, cancel := signalContext()
	defer cancel()

	cmd := cli.NewRootCommand(run)
	if err := cmd.ExecuteContext(ctx); err != nil {
		code := cli.ExitCode(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if code == 2 {
			fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		}
		cancel()
		os.Exit(code)
	}
}

func run(ctx context.Context, cfg config.MonitorConfig, logger *slog.Logger) error {
	logger.Info("configuration loaded",
		slog.String("memory", cfg.Memory().String()),
		slog.Duration("delay", cfg.Delay()),
		slog.Bool("parallel", cfg.Parallel()),
		slog.Bool("lock_memory", cfg.LockMemory()))

	det := detector.New(cfg, detector.Options{
		Logger: logger,
		Probe:  sysinfo.Probe{},
		Locker: syslimit.NewMemoryLocker(logger),
	})

	daemon := app.NewDaemon(app.Dependencies{
		Detector: det,
		Logger:   logger,
	})

	return daemon.Run(ctx)
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		cancel()
		time.Sleep(50 * time.Millisecond)
	}
}
