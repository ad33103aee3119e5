//go:build linux

package syslimit

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/unix"
)

const unlimited = ^uint64(0) // RLIM_INFINITY

// Lock raises RLIMIT_MEMLOCK as far as the hard limit allows and mlocks buf.
func (ml *MemoryLocker) Lock(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	if err := ml.raiseLimit(uint64(len(buf))); err != nil {
		ml.logger.Warn("raising memlock limit failed",
			slog.String("error", err.Error()))
	}

	if err := unix.Mlock(buf); err != nil {
		return fmt.Errorf("mlock %d bytes: %w", len(buf), err)
	}

	ml.logger.Debug("memory locked", slog.Int("bytes", len(buf)))
	return nil
}

// Unlock releases a buffer locked by Lock.
func (ml *MemoryLocker) Unlock(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return unix.Munlock(buf)
}

func (ml *MemoryLocker) raiseLimit(need uint64) error {
	var current unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_MEMLOCK, &current); err != nil {
		return err
	}

	want := memlockTarget(current, need)
	// Skip if already sufficient
	if want == current.Cur {
		return nil
	}

	ml.logger.Debug("raising memlock limit",
		slog.Uint64("current", current.Cur),
		slog.Uint64("target", want),
		slog.Uint64("hard", current.Max))

	return unix.Setrlimit(unix.RLIMIT_MEMLOCK, &unix.Rlimit{
		Cur: want,
		Max: current.Max,
	})
}

// memlockTarget returns the soft limit needed to lock need more bytes,
// capped at the hard limit.
func memlockTarget(current unix.Rlimit, need uint64) uint64 {
	if current.Cur == unlimited {
		return current.Cur
	}
	want := unlimited
	if current.Cur <= unlimited-need {
		want = current.Cur + need
	}
	if current.Max != unlimited && want > current.Max {
		want = current.Max
	}
	if want < current.Cur {
		want = current.Cur
	}
	return want
}
