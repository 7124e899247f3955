package streaming

import (
	"voxengine/internal/physics"
	"voxengine/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// resident returns the chunk holding pos and pos in chunk-local space.
// Chunks that are not generated yet do not count as resident.
func (m *Manager) resident(pos world.BlockPos) (*world.Chunk, world.BlockPos, error) {
	if !world.InHeight(pos.Y()) {
		return nil, pos, world.ErrOutOfBounds
	}
	e := m.entry(world.ChunkCoordOf(pos))
	if e == nil || e.chunk.State() < world.StateGenerated {
		return nil, pos, world.ErrNotLoaded
	}
	return e.chunk, world.LocalCoord(pos), nil
}

// GetBlock returns the block at a world position. It fails with
// world.ErrOutOfBounds outside the vertical range and world.ErrNotLoaded
// when the chunk is missing or not generated.
func (m *Manager) GetBlock(pos world.BlockPos) (world.Block, error) {
	c, local, err := m.resident(pos)
	if err != nil {
		return world.Air, err
	}
	return c.Block(local.X(), local.Y(), local.Z()), nil
}

// SetBlock writes b at a world position and reports whether the stored value
// changed. A change marks the chunk dirty, plus the neighbour across any
// chunk edge the block touches.
func (m *Manager) SetBlock(pos world.BlockPos, b world.Block) (bool, error) {
	c, local, err := m.resident(pos)
	if err != nil {
		return false, err
	}
	if !c.SetBlock(local.X(), local.Y(), local.Z(), b) {
		return false, nil
	}

	coord := c.Coord()
	switch local.X() {
	case 0:
		m.markDirty(coord.Add(-1, 0))
	case world.ChunkSizeX - 1:
		m.markDirty(coord.Add(1, 0))
	}
	switch local.Z() {
	case 0:
		m.markDirty(coord.Add(0, -1))
	case world.ChunkSizeZ - 1:
		m.markDirty(coord.Add(0, 1))
	}
	m.visibilityDirty.Store(true)
	return true, nil
}

func (m *Manager) markDirty(coord world.ChunkCoord) {
	if e := m.entry(coord); e != nil {
		e.chunk.MarkDirty()
	}
}

// IsBlockTransparent reports whether rays pass through the block at pos.
// Positions above or below the world are transparent. Positions in chunks
// that are not resident follow Options.UnloadedTransparent.
func (m *Manager) IsBlockTransparent(pos world.BlockPos) bool {
	b, err := m.GetBlock(pos)
	switch {
	case err == nil:
		return b.Transparent()
	case errors.Is(err, world.ErrOutOfBounds):
		return true
	default:
		return m.opts.UnloadedTransparent
	}
}

// BlockTypeAt returns the type of the block containing a float position.
func (m *Manager) BlockTypeAt(pos mgl32.Vec3) (world.BlockType, error) {
	b, err := m.GetBlock(world.WorldCoord(pos))
	if err != nil {
		return world.BlockTypeAir, err
	}
	return b.Type, nil
}

// CastRayIncluding returns the first solid block along the ray.
func (m *Manager) CastRayIncluding(origin, dir mgl32.Vec3) (world.BlockPos, bool) {
	return physics.CastRayIncluding(m, origin, dir)
}

// CastRayExcluding returns the last open block before the first solid one,
// the cell a new block would be placed in.
func (m *Manager) CastRayExcluding(origin, dir mgl32.Vec3) (world.BlockPos, bool) {
	return physics.CastRayExcluding(m, origin, dir)
}
