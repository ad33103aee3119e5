package syslimit

import (
	"errors"
	"log/slog"
)

// ErrUnsupported is returned where memory locking is not implemented.
var ErrUnsupported = errors.New("memory locking is not supported on this platform")

// MemoryLocker pins buffers in RAM so the pages under watch never move to swap.
// Locking is best effort: callers log failures and carry on.
type MemoryLocker struct {
	logger *slog.Logger
}

// NewMemoryLocker creates a new MemoryLocker instance.
func NewMemoryLocker(logger *slog.Logger) *MemoryLocker {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryLocker{logger: logger}
}
