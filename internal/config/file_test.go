package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flipwatch/internal/units"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipwatch.yaml")
	content := "memory_to_monitor: 2GB\ndelay_between_checks: 1m 30s\nparallel: true\nlock_memory: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)

	fields := Fields{Delay: DefaultDelay}
	require.NoError(t, f.Apply(&fields))

	require.NotNil(t, fields.MemoryToMonitor)
	assert.Equal(t, units.ByteCount(2_000_000_000), *fields.MemoryToMonitor)
	assert.Nil(t, fields.UseAll)
	assert.Equal(t, 90*time.Second, fields.Delay)
	assert.True(t, fields.Parallel)
	assert.False(t, fields.Verbose)
	assert.True(t, fields.LockMemory)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeFileEmpty(t *testing.T) {
	f, err := DecodeFile([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, File{}, f)
}

func TestDecodeFileRejectsUnknownKeys(t *testing.T) {
	_, err := DecodeFile([]byte("memory: 2GB\n"))
	assert.Error(t, err)
}

func TestDecodeFilePlainInteger(t *testing.T) {
	f, err := DecodeFile([]byte("memory_to_monitor: 4096\n"))
	require.NoError(t, err)

	fields := Fields{}
	require.NoError(t, f.Apply(&fields))
	assert.Equal(t, units.ByteCount(4096), *fields.MemoryToMonitor)
}

func TestApplyReportsEveryInvalidField(t *testing.T) {
	f, err := DecodeFile([]byte("memory_to_monitor: 10XB\ndelay_between_checks: soon\n"))
	require.NoError(t, err)

	fields := Fields{Delay: DefaultDelay}
	err = f.Apply(&fields)
	require.Error(t, err)

	assert.ErrorIs(t, err, units.ErrUnknownSiPrefix)
	assert.ErrorIs(t, err, units.ErrInvalidDuration)
	assert.Contains(t, err.Error(), `memory_to_monitor "10XB"`)
	assert.Contains(t, err.Error(), `delay_between_checks "soon"`)
	assert.Equal(t, DefaultDelay, fields.Delay, "fields must be untouched on error")
}

func TestApplyReplacesSelector(t *testing.T) {
	fields := Fields{UseAll: &UseAll{}}

	mem := "1kB"
	require.NoError(t, File{MemoryToMonitor: &mem}.Apply(&fields))

	assert.Nil(t, fields.UseAll)
	require.NotNil(t, fields.MemoryToMonitor)
	assert.Equal(t, units.ByteCount(1000), *fields.MemoryToMonitor)
}

func TestDecodeFileCommentsOnly(t *testing.T) {
	f, err := DecodeFile([]byte("# nothing configured yet\n"))
	require.NoError(t, err)
	assert.Equal(t, File{}, f)
}
