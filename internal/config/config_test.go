package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "/mnt/persistence", cfg.FastMount)
	assert.Equal(t, "persistence", cfg.FallbackDir)
	assert.Equal(t, 1.0, cfg.Dynamics.ActivationThreshold)
	assert.Equal(t, 0.1, cfg.Dynamics.DecayRate)
	assert.Empty(t, cfg.StoreRoot)
	assert.Empty(t, cfg.IndexPath)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glyphos.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store_root: /data/glyphs
index_path: /data/catalog.db
dynamics:
  decay_rate: 0.25
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/glyphs", cfg.StoreRoot)
	assert.Equal(t, "/data/catalog.db", cfg.IndexPath)
	assert.Equal(t, 0.25, cfg.Dynamics.DecayRate)
	// Untouched fields keep their defaults.
	assert.Equal(t, 1.0, cfg.Dynamics.ActivationThreshold)
	assert.Equal(t, "/mnt/persistence", cfg.FastMount)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store_root: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestResolveStoreRoot_ExplicitOverrideWins(t *testing.T) {
	fast := t.TempDir() // exists, but override must still win
	cfg := Config{StoreRoot: "/explicit", FastMount: fast, FallbackDir: "fallback"}
	assert.Equal(t, "/explicit", cfg.ResolveStoreRoot())
}

func TestResolveStoreRoot_FastMountWhenPresent(t *testing.T) {
	fast := t.TempDir()
	cfg := Config{FastMount: fast, FallbackDir: "fallback"}
	assert.Equal(t, fast, cfg.ResolveStoreRoot())
}

func TestResolveStoreRoot_FallbackWhenFastMountAbsent(t *testing.T) {
	cfg := Config{
		FastMount:   filepath.Join(t.TempDir(), "not-mounted"),
		FallbackDir: "fallback",
	}
	assert.Equal(t, "fallback", cfg.ResolveStoreRoot())
}

func TestResolveStoreRoot_ForceEnvSelectsAbsentFastMount(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "not-mounted-yet")
	t.Setenv(ForceFastMountEnv, "1")

	cfg := Config{FastMount: missing, FallbackDir: "fallback"}
	assert.Equal(t, missing, cfg.ResolveStoreRoot())
}
