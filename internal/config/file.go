package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	terr "flipwatch/internal/errors"
	"flipwatch/internal/units"
)

// File is the on-disk YAML form of the command-line options. Absent keys
// leave the corresponding field untouched.
type File struct {
	MemoryToMonitor *string `yaml:"memory_to_monitor"`
	UseAll          *string `yaml:"use_all"`
	Delay           *string `yaml:"delay_between_checks"`
	Parallel        *bool   `yaml:"parallel"`
	Verbose         *bool   `yaml:"verbose"`
	LockMemory      *bool   `yaml:"lock_memory"`
}

// LoadFile reads and decodes a YAML config file. Unknown keys are rejected.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return DecodeFile(data)
}

// DecodeFile decodes YAML config content.
func DecodeFile(data []byte) (File, error) {
	var f File
	if len(bytes.TrimSpace(data)) == 0 {
		return f, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decode config: %w", err)
	}
	return f, nil
}

// Apply parses every present value into fields. All invalid values are
// reported together; fields is left unchanged when any value is invalid.
func (f File) Apply(fields *Fields) error {
	next := *fields
	var errs terr.MultiError

	if f.MemoryToMonitor != nil && f.UseAll != nil {
		errs.Add(terr.New(terr.CategoryRecoverable,
			fmt.Errorf("memory_to_monitor and use_all are mutually exclusive"),
			terr.ErrorContext{Operation: "apply_config", Field: "memory_to_monitor"}))
	}

	if f.MemoryToMonitor != nil {
		size, err := units.ParseSize(*f.MemoryToMonitor)
		if err != nil {
			errs.Add(terr.FieldError(err, "memory_to_monitor", *f.MemoryToMonitor))
		} else {
			next.MemoryToMonitor, next.UseAll = &size, nil
		}
	}

	if f.UseAll != nil {
		useAll, err := ParseUseAll(*f.UseAll)
		if err != nil {
			errs.Add(terr.FieldError(err, "use_all", *f.UseAll))
		} else {
			next.MemoryToMonitor, next.UseAll = nil, &useAll
		}
	}

	if f.Delay != nil {
		delay, err := units.ParseDelay(*f.Delay)
		if err != nil {
			errs.Add(terr.FieldError(err, "delay_between_checks", *f.Delay))
		} else {
			next.Delay = delay
		}
	}

	if f.Parallel != nil {
		next.Parallel = *f.Parallel
	}
	if f.Verbose != nil {
		next.Verbose = *f.Verbose
	}
	if f.LockMemory != nil {
		next.LockMemory = *f.LockMemory
	}

	if err := errs.ErrorOrNil(); err != nil {
		return err
	}
	*fields = next
	return nil
}
