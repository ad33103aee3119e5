package cli

import (
	"time"

	"github.com/spf13/pflag"

	"flipwatch/internal/units"
)

var (
	_ pflag.Value = (*sizeFlag)(nil)
	_ pflag.Value = (*delayFlag)(nil)
)

// sizeFlag parses its argument with units.ParseSize when the flag is set.
type sizeFlag struct {
	value *units.ByteCount
}

func (f *sizeFlag) Set(s string) error {
	n, err := units.ParseSize(s)
	if err != nil {
		return err
	}
	f.value = &n
	return nil
}

func (f *sizeFlag) String() string {
	if f.value == nil {
		return ""
	}
	return f.value.String()
}

func (f *sizeFlag) Type() string { return "size" }

// delayFlag parses its argument with units.ParseDelay when the flag is set.
type delayFlag struct {
	value time.Duration
}

func (f *delayFlag) Set(s string) error {
	d, err := units.ParseDelay(s)
	if err != nil {
		return err
	}
	f.value = d
	return nil
}

func (f *delayFlag) String() string { return f.value.String() }

func (f *delayFlag) Type() string { return "duration" }
