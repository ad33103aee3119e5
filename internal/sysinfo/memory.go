package sysinfo

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MeminfoPath is the Linux memory statistics file.
const MeminfoPath = "/proc/meminfo"

// Meminfo field names used by the probe.
const (
	FieldMemTotal     = "MemTotal"
	FieldMemFree      = "MemFree"
	FieldMemAvailable = "MemAvailable"
)

// ReadMeminfoKB reads one field from the specified meminfo path and returns it in kilobytes.
func ReadMeminfoKB(path, field string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return parseMeminfoKB(string(data), field)
}

func parseMeminfoKB(content, field string) (uint64, error) {
	prefix := field + ":"
	for _, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(line, prefix) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, fmt.Errorf("invalid %s line: %s", field, line)
		}

		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse %s value: %w", field, err)
		}

		if kb == 0 {
			return 0, fmt.Errorf("%s is zero", field)
		}

		return kb, nil
	}

	return 0, fmt.Errorf("%s not found in meminfo", field)
}
