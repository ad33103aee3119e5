// Package detector watches a zeroed memory buffer for bits that flip on their own.
package detector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/bits"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"flipwatch/internal/config"
	"flipwatch/internal/units"
)

// MemoryLocker pins a buffer in RAM.
type MemoryLocker interface {
	Lock(buf []byte) error
	Unlock(buf []byte) error
}

// Options groups the collaborators of a Detector.
type Options struct {
	Logger *slog.Logger
	Probe  MemoryProbe
	Locker MemoryLocker
}

// Flip describes one corrupted word found during a check.
type Flip struct {
	Word  int
	Value uint64
	Bits  int
}

// Report summarises a single integrity check.
type Report struct {
	Flips    []Flip
	Duration time.Duration
}

// Stats are cumulative counters over the detector's lifetime.
type Stats struct {
	Checks      uint64
	FlippedBits uint64
}

// Detector owns the watched buffer.
type Detector struct {
	cfg    config.MonitorConfig
	logger *slog.Logger
	probe  MemoryProbe
	locker MemoryLocker

	words  []uint64
	locked bool

	checks      atomic.Uint64
	flippedBits atomic.Uint64
}

// New constructs a Detector for cfg.
func New(cfg config.MonitorConfig, opts Options) *Detector {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Detector{
		cfg:    cfg,
		logger: opts.Logger,
		probe:  opts.Probe,
		locker: opts.Locker,
	}
}

// Prepare resolves the memory target and allocates the zeroed buffer. The
// buffer holds size/8 words, at least one.
func (d *Detector) Prepare(ctx context.Context) error {
	if d.words != nil {
		return nil
	}

	ValidateTarget(ctx, d.logger, d.cfg.Memory(), d.probe)

	size, err := ResolveSize(ctx, d.cfg.Memory(), d.probe)
	if err != nil {
		return err
	}

	count := size.Uint64() / 8
	if count == 0 {
		count = 1
	}
	if count > uint64(maxWords) {
		return fmt.Errorf("cannot allocate %s: %w", size, units.ErrOverflow)
	}
	d.words = make([]uint64, int(count))
	// Fresh pages all map the shared zero page until written.
	commit(d.words)

	if d.cfg.LockMemory() && d.locker != nil {
		if err := d.locker.Lock(d.bytes()); err != nil {
			d.logger.Warn("memory lock failed, pages may be swapped out",
				slog.String("error", err.Error()))
		} else {
			d.locked = true
		}
	}

	d.logger.Info("detector memory allocated",
		slog.String("target", d.cfg.Memory().String()),
		slog.Uint64("bytes", count*8),
		slog.Bool("locked", d.locked))
	return nil
}

// Close releases the memory lock, if any.
func (d *Detector) Close() error {
	if !d.locked {
		return nil
	}
	d.locked = false
	return d.locker.Unlock(d.bytes())
}

// Run checks the buffer every Delay until ctx is cancelled. A zero delay
// checks continuously.
func (d *Detector) Run(ctx context.Context) error {
	if err := d.Prepare(ctx); err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			d.logger.Warn("memory unlock failed", slog.String("error", err.Error()))
		}
	}()

	d.logger.Info("bit flip monitoring started",
		slog.Duration("delay", d.cfg.Delay()),
		slog.Bool("parallel", d.cfg.Parallel()))

	var timer *time.Timer
	if delay := d.cfg.Delay(); delay > 0 {
		timer = time.NewTimer(delay)
		defer timer.Stop()
	}

	for {
		if timer != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		report := d.Check()
		d.logReport(report)

		if timer != nil {
			timer.Reset(d.cfg.Delay())
		}
	}
}

// Check scans the buffer once, records and resets every non-zero word.
func (d *Detector) Check() Report {
	start := time.Now()

	var flips []Flip
	if d.cfg.Parallel() {
		flips = d.scanParallel(runtime.GOMAXPROCS(0))
	} else {
		flips = scan(d.words, 0)
	}

	var flipped uint64
	for _, f := range flips {
		flipped += uint64(f.Bits)
	}
	d.checks.Add(1)
	d.flippedBits.Add(flipped)

	return Report{Flips: flips, Duration: time.Since(start)}
}

// Stats returns the cumulative counters.
func (d *Detector) Stats() Stats {
	return Stats{
		Checks:      d.checks.Load(),
		FlippedBits: d.flippedBits.Load(),
	}
}

func (d *Detector) scanParallel(workers int) []Flip {
	if workers < 1 {
		workers = 1
	}
	chunk := (len(d.words) + workers - 1) / workers
	if chunk == 0 {
		return nil
	}

	results := make([][]Flip, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		lo := i * chunk
		if lo >= len(d.words) {
			break
		}
		hi := min(lo+chunk, len(d.words))

		wg.Add(1)
		go func(i, lo, hi int) {
			defer wg.Done()
			results[i] = scan(d.words[lo:hi], lo)
		}(i, lo, hi)
	}
	wg.Wait()

	var flips []Flip
	for _, r := range results {
		flips = append(flips, r...)
	}
	return flips
}

func scan(words []uint64, offset int) []Flip {
	var flips []Flip
	for i, w := range words {
		if w == 0 {
			continue
		}
		flips = append(flips, Flip{Word: offset + i, Value: w, Bits: bits.OnesCount64(w)})
		words[i] = 0
	}
	return flips
}

func (d *Detector) logReport(r Report) {
	for _, f := range r.Flips {
		d.logger.Warn("bit flip detected",
			slog.Int("word", f.Word),
			slog.String("value", fmt.Sprintf("%#018x", f.Value)),
			slog.Int("bits", f.Bits))
	}

	stats := d.Stats()
	d.logger.Debug("integrity check finished",
		slog.Uint64("check", stats.Checks),
		slog.Int("flips", len(r.Flips)),
		slog.Uint64("total_flipped_bits", stats.FlippedBits),
		slog.Duration("took", r.Duration))
}

func commit(words []uint64) {
	for i := range words {
		words[i] = 0
	}
}

func (d *Detector) bytes() []byte {
	if len(d.words) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&d.words[0])), len(d.words)*8)
}

const maxWords = int(^uint(0)>>1) / 8

// IsStopped reports whether err only signals a cancelled run.
func IsStopped(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
