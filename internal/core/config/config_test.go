package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAML(t *testing.T) {
	in := strings.NewReader("reserved_count: 128\njob_workers: 4\nlog_level: debug\n")
	c, err := LoadYAML(in)
	require.NoError(t, err)
	assert.Equal(t, 128, c.ReservedCount)
	assert.Equal(t, 4, c.JobWorkers)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadJSONAppliesDefaultsForMissingKeys(t *testing.T) {
	in := strings.NewReader(`{"job_workers": 2}`)
	c, err := LoadJSON(in)
	require.NoError(t, err)
	assert.Equal(t, Default().ReservedCount, c.ReservedCount)
	assert.Equal(t, 2, c.JobWorkers)
	assert.Equal(t, Default().LogLevel, c.LogLevel)
}

func TestFromFileDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reserved_count: 9\n"), 0o644))

	c, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9, c.ReservedCount)

	_, err = FromFile(filepath.Join(dir, "world.toml"))
	assert.Error(t, err)
}
