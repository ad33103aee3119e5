//go:build windows || freebsd

package config

import (
	"fmt"
	"strconv"
)

// SupportsAllocationMode is false: this platform cannot tell free memory
// apart from available memory, so "use all" takes whatever the OS reports.
const SupportsAllocationMode = false

// UseAll claims as much memory as the operating system reports available.
type UseAll struct{}

// FreeOnly is always false here.
func (UseAll) FreeOnly() bool {
	return false
}

func (UseAll) String() string {
	return "all"
}

// ParseUseAll accepts a boolean; false is rejected because it selects nothing.
func ParseUseAll(s string) (UseAll, error) {
	enabled, err := strconv.ParseBool(s)
	if err != nil {
		return UseAll{}, fmt.Errorf("invalid use-all value %q: %w", s, err)
	}
	if !enabled {
		return UseAll{}, fmt.Errorf("use-all must be true when given")
	}
	return UseAll{}, nil
}
