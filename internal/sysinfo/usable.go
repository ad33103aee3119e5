package sysinfo

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"
)

// Probe reports how many bytes the detector may claim.
type Probe struct {
	// MeminfoPath overrides /proc/meminfo on Linux. Empty uses the default.
	MeminfoPath string
	// Virtual overrides the gopsutil query, for tests.
	Virtual func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

// UsableBytes returns free memory when freeOnly is set, otherwise memory that
// is available once reclaimable caches are dropped. Linux answers from
// meminfo; other platforms, and Linux when meminfo fails, ask gopsutil.
func (p Probe) UsableBytes(ctx context.Context, freeOnly bool) (uint64, error) {
	if runtime.GOOS == "linux" {
		field := FieldMemAvailable
		if freeOnly {
			field = FieldMemFree
		}
		path := p.MeminfoPath
		if path == "" {
			path = MeminfoPath
		}
		if kb, err := ReadMeminfoKB(path, field); err == nil {
			return kb * 1024, nil
		}
	}

	virtual := p.Virtual
	if virtual == nil {
		virtual = mem.VirtualMemoryWithContext
	}
	stat, err := virtual(ctx)
	if err != nil {
		return 0, fmt.Errorf("query virtual memory: %w", err)
	}

	usable := stat.Available
	if freeOnly {
		usable = stat.Free
	}
	if usable == 0 {
		return 0, fmt.Errorf("no usable memory reported")
	}
	return usable, nil
}

// UsableBytes queries the default probe.
func UsableBytes(ctx context.Context, freeOnly bool) (uint64, error) {
	return Probe{}.UsableBytes(ctx, freeOnly)
}
