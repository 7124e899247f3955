// Package terrain holds the world.TerrainGenerator implementations.
package terrain

import (
	"voxengine/internal/config"
	"voxengine/internal/world"

	"github.com/pkg/errors"
)

var (
	_ world.TerrainGenerator = (*NoiseGenerator)(nil)
	_ world.TerrainGenerator = Flat{}
)

// FromSettings builds the generator selected by s.Kind.
func FromSettings(s config.TerrainSettings) (world.TerrainGenerator, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s.Kind {
	case config.TerrainFlat:
		return NewFlat(s.FlatHeight), nil
	case config.TerrainNoise:
		return NewNoiseGenerator(s)
	default:
		return nil, errors.Errorf("unknown terrain kind %q", s.Kind)
	}
}
