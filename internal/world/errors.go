package world

import "github.com/pkg/errors"

var (
	// ErrNotLoaded is returned for block positions whose chunk is not resident
	// or not yet generated.
	ErrNotLoaded = errors.New("chunk not loaded")

	// ErrOutOfBounds is returned for block positions outside [0, ChunkSizeY).
	ErrOutOfBounds = errors.New("block position out of world bounds")
)
