//go:build !windows && !freebsd

package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"flipwatch/internal/config"
)

var _ pflag.Value = (*useAllFlag)(nil)

const useAllUsage = "allocate as much memory as possible to the detector (" +
	"\"free\" takes all currently unused memory, \"available\" also evicts " +
	"things that sit in memory but have not been used in a while)"

// useAllFlag takes the allocation mode as its argument.
type useAllFlag struct {
	mode *config.AllocationMode
}

func (f *useAllFlag) Set(s string) error {
	mode, err := config.ParseAllocationMode(s)
	if err != nil {
		return err
	}
	f.mode = &mode
	return nil
}

func (f *useAllFlag) String() string {
	if f.mode == nil {
		return ""
	}
	return f.mode.String()
}

func (f *useAllFlag) Type() string { return strings.Join(config.AllocationModes, "|") }

func (f *useAllFlag) register(fs *pflag.FlagSet) {
	fs.Var(f, flagUseAll, useAllUsage)
}

func (f *useAllFlag) selector() *config.UseAll {
	if f.mode == nil {
		return nil
	}
	return &config.UseAll{Mode: *f.mode}
}
