package detector

import (
	"context"
	"log/slog"

	"flipwatch/internal/config"
	"flipwatch/internal/units"
)

// ValidateTarget warns when an explicit size exceeds the memory currently
// available. It never fails: the kernel may still satisfy the request.
func ValidateTarget(ctx context.Context, logger *slog.Logger, target config.MemoryTarget, probe MemoryProbe) bool {
	explicit, ok := target.(config.ExplicitSize)
	if !ok || probe == nil {
		return true
	}

	available, err := probe.UsableBytes(ctx, false)
	if err != nil {
		if logger != nil {
			logger.Debug("available memory check skipped", slog.String("error", err.Error()))
		}
		return true
	}

	if uint64(explicit.Size) <= available {
		return true
	}

	if logger != nil {
		logger.Warn("requested memory exceeds available memory",
			slog.String("requested", explicit.Size.String()),
			slog.String("available", units.ByteCount(available).String()))
	}
	return false
}
