package terrain

import (
	"voxengine/internal/world"
)

// Flat generates a level world: stone, a dirt band, grass at Height and
// air above. It has no caves.
type Flat struct {
	Height int
}

func NewFlat(height int) Flat {
	return Flat{Height: height}
}

func (f Flat) TerrainHeight(x, z int) int {
	return f.Height
}

func (f Flat) Block(pos world.BlockPos, terrainHeight int) world.Block {
	y := pos.Y()
	switch {
	case y > terrainHeight:
		return world.Air
	case y == terrainHeight:
		return world.NewBlock(world.BlockTypeGrass)
	case y > terrainHeight-4:
		return world.NewBlock(world.BlockTypeDirt)
	default:
		return world.NewBlock(world.BlockTypeStone)
	}
}

func (f Flat) IsCave(pos world.BlockPos) bool {
	return false
}
