package detector

import (
	"context"
	"fmt"

	"flipwatch/internal/config"
	"flipwatch/internal/units"
)

// MemoryProbe reports how many bytes the detector may claim.
type MemoryProbe interface {
	UsableBytes(ctx context.Context, freeOnly bool) (uint64, error)
}

// ResolveSize turns a memory target into a byte count, asking the probe when
// the target is UseAll.
func ResolveSize(ctx context.Context, target config.MemoryTarget, probe MemoryProbe) (units.ByteCount, error) {
	switch t := target.(type) {
	case config.ExplicitSize:
		return t.Size, nil
	case config.UseAll:
		if probe == nil {
			return 0, fmt.Errorf("no memory probe for %s", t)
		}
		n, err := probe.UsableBytes(ctx, t.FreeOnly())
		if err != nil {
			return 0, fmt.Errorf("detect usable memory: %w", err)
		}
		if n == 0 {
			return 0, fmt.Errorf("detect usable memory: %w", units.ErrTooSmall)
		}
		return units.ByteCount(n), nil
	default:
		return 0, fmt.Errorf("unsupported memory target %T", target)
	}
}
