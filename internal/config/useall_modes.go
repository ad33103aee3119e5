//go:build !windows && !freebsd

package config

import (
	"fmt"
	"strings"
)

// SupportsAllocationMode is true where the platform tells free memory apart
// from memory that becomes available once idle pages are reclaimed.
const SupportsAllocationMode = true

// AllocationMode chooses what "use all memory" means.
type AllocationMode int

const (
	// AllocationAvailable also claims memory the kernel can reclaim from caches.
	AllocationAvailable AllocationMode = iota
	// AllocationFree claims only currently unused memory.
	AllocationFree
)

// AllocationModes lists the accepted mode names in help order.
var AllocationModes = []string{"available", "free"}

// ParseAllocationMode accepts "available" or "free", case-insensitively.
func ParseAllocationMode(s string) (AllocationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available":
		return AllocationAvailable, nil
	case "free":
		return AllocationFree, nil
	default:
		return AllocationAvailable, fmt.Errorf("invalid allocation mode %q, expected one of %s",
			s, strings.Join(AllocationModes, ", "))
	}
}

func (m AllocationMode) String() string {
	if m == AllocationFree {
		return "free"
	}
	return "available"
}

// UseAll claims as much memory as the chosen mode allows.
type UseAll struct {
	Mode AllocationMode
}

// FreeOnly reports whether only currently unused memory may be claimed.
func (u UseAll) FreeOnly() bool {
	return u.Mode == AllocationFree
}

func (u UseAll) String() string {
	return "all " + u.Mode.String()
}

// ParseUseAll builds a UseAll from its textual mode.
func ParseUseAll(s string) (UseAll, error) {
	mode, err := ParseAllocationMode(s)
	if err != nil {
		return UseAll{}, err
	}
	return UseAll{Mode: mode}, nil
}
