package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Bounds for every chunk manager integer setting.
const (
	settingMin = 1
	settingMax = 256
)

// ChunkManagerSettings holds chunk streaming configuration
type ChunkManagerSettings struct {
	RenderDistance int `yaml:"renderDistance"` // in chunks, Chebyshev
	ThreadCount    int `yaml:"threadCount"`
	MaxLoad        int `yaml:"maxLoad"`
	MaxGenerate    int `yaml:"maxGenerate"`
	MaxMesh        int `yaml:"maxMesh"`

	// UnloadedTransparent makes rays and transparency checks pass through
	// chunks that are not loaded yet. Off by default.
	UnloadedTransparent bool `yaml:"unloadedTransparent"`
}

// Settings is the engine configuration file.
type Settings struct {
	ChunkManager ChunkManagerSettings `yaml:"chunkManager"`
	Terrain      TerrainSettings      `yaml:"terrainGenerator"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		ChunkManager: ChunkManagerSettings{
			RenderDistance: 8,
			ThreadCount:    8,
			MaxLoad:        2,
			MaxGenerate:    2,
			MaxMesh:        2,
		},
		Terrain: DefaultTerrain(),
	}
}

// Load reads and validates a YAML settings file. Keys missing from the file
// keep their default values.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errors.Wrap(err, "settings")
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "settings: %s", path)
	}
	return s, nil
}

// Parse decodes and validates YAML settings.
func Parse(data []byte) (Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, errors.Wrap(err, "decode")
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks every section.
func (s Settings) Validate() error {
	if err := s.ChunkManager.Validate(); err != nil {
		return errors.Wrap(err, "chunkManager")
	}
	if err := s.Terrain.Validate(); err != nil {
		return errors.Wrap(err, "terrainGenerator")
	}
	return nil
}

// Validate checks the chunk manager limits. Render distance may be zero,
// which keeps only the camera's own chunk resident.
func (c ChunkManagerSettings) Validate() error {
	if c.RenderDistance < 0 || c.RenderDistance > settingMax {
		return errors.Errorf("renderDistance %d outside [0,%d]", c.RenderDistance, settingMax)
	}
	fields := []struct {
		name  string
		value int
	}{
		{"threadCount", c.ThreadCount},
		{"maxLoad", c.MaxLoad},
		{"maxGenerate", c.MaxGenerate},
		{"maxMesh", c.MaxMesh},
	}
	for _, f := range fields {
		if f.value < settingMin || f.value > settingMax {
			return errors.Errorf("%s %d outside [%d,%d]", f.name, f.value, settingMin, settingMax)
		}
	}
	return nil
}
