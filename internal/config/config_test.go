package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.Workers = 8
	c.Revision = "legacy"
	c.Layout.Groups = map[int]int{0: 20, 9: 5}
	require.NoError(t, Save(path, c))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\nlayout:\n  groups:\n    3: 7\n"), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, 12, c.Layout.DefaultSize)
	assert.Equal(t, map[int]int{3: 7}, c.Layout.Groups)
	assert.Equal(t, ":8080", c.Server.Addr)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"revision": "revision: sideways\n",
		"workers":  "workers: 0\n",
		"group":    "layout:\n  groups:\n    1: 0\n",
		"yaml":     "workers: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BEATLIGHTS_LOG_LEVEL", "debug")
	t.Setenv("BEATLIGHTS_LOG_PRETTY", "false")
	t.Setenv("BEATLIGHTS_ADDR", ":9999")
	t.Setenv("BEATLIGHTS_WORKERS", "3")
	t.Setenv("BEATLIGHTS_REVISION", "current")
	t.Setenv("BEATLIGHTS_GROUP_SIZE", "not-a-number")

	c, err := LoadWithEnv("")
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)
	assert.False(t, c.Log.Pretty)
	assert.Equal(t, ":9999", c.Server.Addr)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, "current", c.Revision)
	assert.Equal(t, 12, c.Layout.DefaultSize)
}
