package sysinfo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMeminfo = `MemTotal:       16318412 kB
MemFree:         1203448 kB
MemAvailable:    9876544 kB
Buffers:          412332 kB
`

func writeMeminfo(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meminfo")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadMeminfoKB(t *testing.T) {
	path := writeMeminfo(t, sampleMeminfo)

	tests := []struct {
		field string
		want  uint64
	}{
		{FieldMemTotal, 16318412},
		{FieldMemFree, 1203448},
		{FieldMemAvailable, 9876544},
	}
	for _, tt := range tests {
		got, err := ReadMeminfoKB(path, tt.field)
		require.NoError(t, err, tt.field)
		assert.Equal(t, tt.want, got, tt.field)
	}
}

func TestReadMeminfoKBErrors(t *testing.T) {
	_, err := ReadMeminfoKB(filepath.Join(t.TempDir(), "absent"), FieldMemTotal)
	assert.ErrorIs(t, err, os.ErrNotExist)

	tests := map[string]string{
		"missing field": "MemTotal: 1 kB\n",
		"short line":    "MemAvailable:\n",
		"not a number":  "MemAvailable: lots kB\n",
		"zero":          "MemAvailable: 0 kB\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseMeminfoKB(content, FieldMemAvailable)
			assert.Error(t, err)
		})
	}
}

func TestProbeUsesMeminfoOnLinux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("meminfo is linux only")
	}
	p := Probe{
		MeminfoPath: writeMeminfo(t, sampleMeminfo),
		Virtual: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return nil, errors.New("must not be called")
		},
	}

	available, err := p.UsableBytes(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, uint64(9876544*1024), available)

	free, err := p.UsableBytes(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, uint64(1203448*1024), free)
}

func TestProbeFallsBackToGopsutil(t *testing.T) {
	p := Probe{
		MeminfoPath: filepath.Join(t.TempDir(), "absent"),
		Virtual: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Available: 4096, Free: 1024}, nil
		},
	}

	available, err := p.UsableBytes(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, uint64(4096), available)

	free, err := p.UsableBytes(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, uint64(1024), free)
}

func TestProbeReportsQueryFailure(t *testing.T) {
	p := Probe{
		MeminfoPath: filepath.Join(t.TempDir(), "absent"),
		Virtual: func(context.Context) (*mem.VirtualMemoryStat, error) {
			return nil, errors.New("boom")
		},
	}
	_, err := p.UsableBytes(context.Background(), false)
	assert.ErrorContains(t, err, "boom")

	p.Virtual = func(context.Context) (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{}, nil
	}
	_, err = p.UsableBytes(context.Background(), true)
	assert.Error(t, err)
}
