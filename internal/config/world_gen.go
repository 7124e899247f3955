package config

import (
	"voxengine/internal/world"

	"github.com/pkg/errors"
)

// Terrain generator kinds.
const (
	TerrainNoise = "noise"
	TerrainFlat  = "flat"
)

// NoiseSettings shapes one octave noise field. Spline maps the raw noise
// value (x) to the output (y) and must hold at least two [x, y] pairs.
type NoiseSettings struct {
	Zoom   float64     `yaml:"zoom"`
	Depth  int         `yaml:"depth"`
	Step   float64     `yaml:"step"`
	Spline [][]float64 `yaml:"spline"`
}

// TerrainSettings holds world generation configuration
type TerrainSettings struct {
	Kind            string        `yaml:"kind"`
	Seed            int64         `yaml:"seed"`
	SeaLevel        int           `yaml:"seaLevel"`
	FlatHeight      int           `yaml:"flatHeight"`
	CaveDiameter    float64       `yaml:"caveDiameter"`
	HeightCache     int           `yaml:"heightCache"` // LRU entries, 0 disables
	Continentalness NoiseSettings `yaml:"continentalness"`
	Cave            NoiseSettings `yaml:"cave"`
}

// DefaultTerrain returns the built-in generator settings.
func DefaultTerrain() TerrainSettings {
	return TerrainSettings{
		Kind:         TerrainNoise,
		Seed:         4,
		SeaLevel:     20,
		FlatHeight:   10,
		CaveDiameter: 0.08,
		HeightCache:  4096,
		Continentalness: NoiseSettings{
			Zoom:  400,
			Depth: 5,
			Step:  2,
			Spline: [][]float64{
				{-1.0, 40},
				{-0.8, 12},
				{-0.2, 12},
				{0.0, 19},
				{0.1, 22},
				{0.25, 24},
				{0.45, 34},
				{1.0, 40},
			},
		},
		Cave: NoiseSettings{
			Zoom:   32,
			Depth:  2,
			Step:   2,
			Spline: [][]float64{{-1, -1}, {1, 1}},
		},
	}
}

// Validate checks the generator settings.
func (t TerrainSettings) Validate() error {
	switch t.Kind {
	case TerrainNoise, TerrainFlat:
	default:
		return errors.Errorf("unknown kind %q", t.Kind)
	}
	if t.Seed < 0 {
		return errors.New("seed can't be negative")
	}
	if t.SeaLevel < 0 || t.SeaLevel > world.ChunkSizeY {
		return errors.Errorf("seaLevel %d outside [0,%d]", t.SeaLevel, world.ChunkSizeY)
	}
	if t.FlatHeight < 0 || t.FlatHeight >= world.ChunkSizeY {
		return errors.Errorf("flatHeight %d outside [0,%d)", t.FlatHeight, world.ChunkSizeY)
	}
	if t.HeightCache < 0 {
		return errors.New("heightCache can't be negative")
	}
	if err := t.Continentalness.Validate(); err != nil {
		return errors.Wrap(err, "continentalness")
	}
	if err := t.Cave.Validate(); err != nil {
		return errors.Wrap(err, "cave")
	}
	return nil
}

// Validate checks one noise field.
func (n NoiseSettings) Validate() error {
	if n.Zoom < 1 {
		return errors.New("zoom can't be smaller than 1")
	}
	if n.Depth < 1 {
		return errors.New("depth can't be smaller than 1")
	}
	if n.Step < 1 {
		return errors.New("step can't be smaller than 1")
	}
	if len(n.Spline) < 2 {
		return errors.New("spline needs at least 2 points")
	}
	for i, p := range n.Spline {
		if len(p) != 2 {
			return errors.Errorf("spline point %d has %d values, want 2", i, len(p))
		}
	}
	return nil
}
