package streaming

import (
	"voxengine/internal/config"
	"voxengine/internal/world"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Options configures a Manager.
type Options struct {
	RenderDistance int
	ThreadCount    int
	MaxLoad        int
	MaxGenerate    int
	MaxMesh        int

	// UnloadedTransparent makes IsBlockTransparent report true for blocks
	// whose chunk is not resident.
	UnloadedTransparent bool

	Generator world.TerrainGenerator
	Uploader  Uploader    // NopUploader when nil
	Logger    *zap.Logger // no-op when nil
}

// OptionsFromConfig copies the chunk manager settings. Generator, Uploader
// and Logger are left for the caller.
func OptionsFromConfig(s config.ChunkManagerSettings) Options {
	return Options{
		RenderDistance:      s.RenderDistance,
		ThreadCount:         s.ThreadCount,
		MaxLoad:             s.MaxLoad,
		MaxGenerate:         s.MaxGenerate,
		MaxMesh:             s.MaxMesh,
		UnloadedTransparent: s.UnloadedTransparent,
	}
}

func (o Options) settings() config.ChunkManagerSettings {
	return config.ChunkManagerSettings{
		RenderDistance:      o.RenderDistance,
		ThreadCount:         o.ThreadCount,
		MaxLoad:             o.MaxLoad,
		MaxGenerate:         o.MaxGenerate,
		MaxMesh:             o.MaxMesh,
		UnloadedTransparent: o.UnloadedTransparent,
	}
}

func (o Options) validate() error {
	if err := o.settings().Validate(); err != nil {
		return errors.Wrap(err, "chunk manager options")
	}
	if o.Generator == nil {
		return errors.New("chunk manager options: generator is required")
	}
	return nil
}
