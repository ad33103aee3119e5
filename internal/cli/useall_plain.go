//go:build windows || freebsd

package cli

import (
	"github.com/spf13/pflag"

	"flipwatch/internal/config"
)

const useAllUsage = "allocate as much memory as possible to the detector"

// useAllFlag is a bare switch: this platform cannot tell free from available memory.
type useAllFlag struct {
	enabled bool
}

func (f *useAllFlag) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.enabled, flagUseAll, false, useAllUsage)
}

func (f *useAllFlag) selector() *config.UseAll {
	if !f.enabled {
		return nil
	}
	return &config.UseAll{}
}
