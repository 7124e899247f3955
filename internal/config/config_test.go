package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	s, err := Parse([]byte(`
chunkManager:
  renderDistance: 0
  threadCount: 3
terrainGenerator:
  kind: flat
  flatHeight: 12
`))
	require.NoError(t, err)
	assert.Equal(t, 0, s.ChunkManager.RenderDistance)
	assert.Equal(t, 3, s.ChunkManager.ThreadCount)
	assert.Equal(t, 2, s.ChunkManager.MaxLoad, "unset keys keep defaults")
	assert.Equal(t, TerrainFlat, s.Terrain.Kind)
	assert.Equal(t, 12, s.Terrain.FlatHeight)
	assert.Len(t, s.Terrain.Continentalness.Spline, 8)
}

func TestParseEmpty(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"zero threads":      "chunkManager: {threadCount: 0}",
		"huge cap":          "chunkManager: {maxMesh: 257}",
		"negative distance": "chunkManager: {renderDistance: -1}",
		"unknown key":       "chunkManager: {renderDistanc: 3}",
		"bad kind":          "terrainGenerator: {kind: islands}",
		"sea above world":   "terrainGenerator: {seaLevel: 400}",
		"short spline":      "terrainGenerator: {cave: {zoom: 2, depth: 1, step: 1, spline: [[0, 1]]}}",
		"bad point":         "terrainGenerator: {cave: {zoom: 2, depth: 1, step: 1, spline: [[0, 1], [2]]}}",
		"zoom":              "terrainGenerator: {continentalness: {zoom: 0.5, depth: 1, step: 1, spline: [[0, 1], [1, 2]]}}",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunkManager: {maxLoad: 7}\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, s.ChunkManager.MaxLoad)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("chunkManager: {maxLoad: 0}\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "maxLoad")
}
