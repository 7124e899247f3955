package terrain

import (
	"sync"
	"testing"

	"voxengine/internal/config"
	"voxengine/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNoise(t *testing.T, mutate func(*config.TerrainSettings)) *NoiseGenerator {
	t.Helper()
	s := config.DefaultTerrain()
	if mutate != nil {
		mutate(&s)
	}
	g, err := NewNoiseGenerator(s)
	require.NoError(t, err)
	return g
}

func TestFromSettings(t *testing.T) {
	s := config.DefaultTerrain()
	g, err := FromSettings(s)
	require.NoError(t, err)
	assert.IsType(t, &NoiseGenerator{}, g)

	s.Kind = config.TerrainFlat
	g, err = FromSettings(s)
	require.NoError(t, err)
	assert.Equal(t, Flat{Height: s.FlatHeight}, g)

	s.Kind = "islands"
	_, err = FromSettings(s)
	assert.Error(t, err)
}

func TestNoiseDeterministic(t *testing.T) {
	a := newTestNoise(t, nil)
	b := newTestNoise(t, func(s *config.TerrainSettings) { s.HeightCache = 0 })

	for x := -40; x < 40; x += 3 {
		for z := -40; z < 40; z += 7 {
			h := a.TerrainHeight(x, z)
			assert.Equal(t, h, b.TerrainHeight(x, z))
			assert.Equal(t, h, a.TerrainHeight(x, z), "cached value")
			assert.True(t, world.InHeight(h))
			for y := 0; y < world.ChunkSizeY; y += 5 {
				pos := world.BlockPos{x, y, z}
				assert.Equal(t, a.Block(pos, h), b.Block(pos, h))
			}
		}
	}
}

func TestNoiseSeedChangesTerrain(t *testing.T) {
	a := newTestNoise(t, nil)
	b := newTestNoise(t, func(s *config.TerrainSettings) { s.Seed = 99 })
	differs := false
	for x := 0; x < 512 && !differs; x += 8 {
		differs = a.TerrainHeight(x, x) != b.TerrainHeight(x, x)
	}
	assert.True(t, differs)
}

func TestNoiseBlockRules(t *testing.T) {
	g := newTestNoise(t, func(s *config.TerrainSettings) {
		s.CaveDiameter = -1 // no caves
		s.SeaLevel = 20
	})

	// dry column
	h := 30
	at := func(y int) world.BlockType { return g.Block(world.BlockPos{0, y, 0}, h).Type }
	assert.Equal(t, world.BlockTypeAir, at(31))
	assert.Equal(t, world.BlockTypeGrass, at(30))
	assert.Equal(t, world.BlockTypeDirt, at(29))
	assert.Equal(t, world.BlockTypeDirt, at(27))
	assert.Equal(t, world.BlockTypeStone, at(26))

	// submerged column
	h = 12
	assert.Equal(t, world.BlockTypeWater, at(20))
	assert.Equal(t, world.BlockTypeWater, at(13))
	assert.Equal(t, world.BlockTypeDirt, at(12))
	assert.Equal(t, world.BlockTypeAir, at(21))
}

func TestNoiseHeightBelowWorld(t *testing.T) {
	g := newTestNoise(t, func(s *config.TerrainSettings) {
		s.CaveDiameter = -1
		s.SeaLevel = 20
		s.Continentalness.Spline = [][]float64{{-1, -5}, {1, -5}}
	})

	h := g.TerrainHeight(7, -3)
	assert.Equal(t, -5, h)
	at := func(y int) world.BlockType { return g.Block(world.BlockPos{7, y, -3}, h).Type }
	assert.Equal(t, world.BlockTypeWater, at(0), "no ground at the bottom of a sunken column")
	assert.Equal(t, world.BlockTypeWater, at(20))
	assert.Equal(t, world.BlockTypeAir, at(21))
}

func TestNoiseCavesNeverAtBottom(t *testing.T) {
	g := newTestNoise(t, func(s *config.TerrainSettings) { s.CaveDiameter = 10 })
	assert.False(t, g.IsCave(world.BlockPos{3, 0, 3}))
	assert.True(t, g.IsCave(world.BlockPos{3, 1, 3}))
	assert.Equal(t, world.BlockTypeStone, g.Block(world.BlockPos{3, 0, 3}, 30).Type)
}

func TestNoiseConcurrentUse(t *testing.T) {
	g := newTestNoise(t, func(s *config.TerrainSettings) { s.HeightCache = 16 })
	ref := newTestNoise(t, nil)
	want := make(map[int]int)
	for x := 0; x < 64; x++ {
		want[x] = ref.TerrainHeight(x, -x)
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for x := 0; x < 64; x++ {
				assert.Equal(t, want[x], g.TerrainHeight(x, -x))
			}
		}()
	}
	wg.Wait()
}

func TestFlat(t *testing.T) {
	f := NewFlat(5)
	assert.Equal(t, 5, f.TerrainHeight(-100, 42))
	assert.Equal(t, world.BlockTypeStone, f.Block(world.BlockPos{0, 0, 0}, 5).Type)
	assert.Equal(t, world.BlockTypeDirt, f.Block(world.BlockPos{0, 4, 0}, 5).Type)
	assert.Equal(t, world.BlockTypeGrass, f.Block(world.BlockPos{0, 5, 0}, 5).Type)
	assert.Equal(t, world.Air, f.Block(world.BlockPos{0, 6, 0}, 5))
	assert.False(t, f.IsCave(world.BlockPos{0, 3, 0}))
}
