package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/particles/rules"
	"github.com/olivierh59500/particles/sim"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultMatchesSim(t *testing.T) {
	assert.Equal(t, sim.DefaultConfig(), Default().SimConfig())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "particles.toml", `
[simulation]
count = 250
rmax = 0.08
colors = 4
placement = "perlin"

[view]
width = 640
`)
	f, err := Load(path)
	require.NoError(t, err)

	cfg := f.SimConfig()
	assert.Equal(t, 250, cfg.Count)
	assert.Equal(t, 0.08, cfg.RMax)
	assert.Equal(t, 4, cfg.Colors)
	assert.Equal(t, sim.PlacementPerlin, cfg.Placement)
	// omitted keys keep defaults
	assert.Equal(t, 0.01, cfg.DT)
	assert.Equal(t, 0.06, cfg.FrictionHalfLife)
	assert.Equal(t, 1.0, cfg.ForceFactor)
	assert.Equal(t, 640, f.View.Width)
	assert.Equal(t, 800, f.View.Height)
}

func TestLoadTOMLUnknownKey(t *testing.T) {
	path := writeFile(t, "particles.toml", `
[simulation]
cuont = 10
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadINI(t *testing.T) {
	path := writeFile(t, "particles.ini", `
[simulation]
count = 64
dt = 0.02
friction-half-life = 0.1
force-factor = 2.5
seed = 12345

[view]
tps = 30
`)
	f, err := Load(path)
	require.NoError(t, err)

	cfg := f.SimConfig()
	assert.Equal(t, 64, cfg.Count)
	assert.Equal(t, 0.02, cfg.DT)
	assert.Equal(t, 0.1, cfg.FrictionHalfLife)
	assert.Equal(t, 2.5, cfg.ForceFactor)
	assert.Equal(t, int64(12345), cfg.Seed)
	assert.Equal(t, 6, cfg.Colors)
	assert.Equal(t, 30, f.View.TPS)
}

func TestLoadINIUnknownKey(t *testing.T) {
	path := writeFile(t, "particles.ini", `
[simulation]
gravity = 9.8
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadUnsupported(t *testing.T) {
	path := writeFile(t, "particles.yaml", "count: 3\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestSimOptionsLoadsRules(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules.json")
	require.NoError(t, rules.Matrix{{0.5, -0.5}, {0, 1}}.Save(rulesPath))

	f := Default()
	f.Simulation.Colors = 2
	f.Simulation.Count = 10
	f.Simulation.Seed = 1
	f.Simulation.Rules = rulesPath

	opts, err := f.SimOptions()
	require.NoError(t, err)
	require.Len(t, opts, 1)

	s, err := sim.New(f.SimConfig(), opts...)
	require.NoError(t, err)
	assert.Equal(t, rules.Matrix{{0.5, -0.5}, {0, 1}}, s.Rules())
}

func TestSimOptionsNoRules(t *testing.T) {
	opts, err := Default().SimOptions()
	require.NoError(t, err)
	assert.Empty(t, opts)
}
