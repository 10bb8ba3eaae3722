package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runeguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 32.0, cfg.Sim.TileSize)
	assert.Equal(t, 10000, cfg.Path.MaxExpansions)
	assert.Equal(t, 8, cfg.Boss.HistoryCapacity)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesPreset(t *testing.T) {
	path := writeFile(t, `
preset: 3d
guard:
  speed: 3.2
path:
  max_expansions: 500
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Preset3D, cfg.Preset)
	assert.Equal(t, 1.0, cfg.Sim.TileSize)
	assert.Equal(t, 3.2, cfg.Guard.Speed)
	assert.Equal(t, 2.5, cfg.Guard.SearchDuration)
	assert.Equal(t, 4.0, cfg.Boss.VisionMin)
	assert.Equal(t, 500, cfg.Path.MaxExpansions)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RUNEGUARD_GUARD_VISION_DISTANCE", "9")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9.0, cfg.Guard.VisionDistance)
}

func TestLoadRejectsBadInput(t *testing.T) {
	_, err := Load(writeFile(t, "preset: 4d\n"))
	assert.ErrorContains(t, err, "unknown preset")

	_, err = Load(writeFile(t, "sim:\n  tile_size: 0\n"))
	assert.ErrorContains(t, err, "tile_size")

	_, err = Load(writeFile(t, "guard: [unterminated\n"))
	assert.Error(t, err)
}

func TestVisionCap(t *testing.T) {
	two := Default().Boss
	assert.Equal(t, 11.0, two.VisionCap(30, 22))

	three, err := Preset(Preset3D)
	require.NoError(t, err)
	assert.Equal(t, 30.0, three.Boss.VisionCap(30, 22))
}

func TestTickSeconds(t *testing.T) {
	assert.InDelta(t, 1.0/60, Default().Sim.TickSeconds(), 1e-12)
}
