package world

// TerrainGenerator computes world content. Implementations are called from
// several worker goroutines at once and must not share mutable state.
type TerrainGenerator interface {
	// TerrainHeight returns the surface height of the column at (x, z).
	TerrainHeight(x, z int) int
	// Block returns the block at pos given its column's surface height.
	Block(pos BlockPos, terrainHeight int) Block
	// IsCave reports whether pos is carved out by a cave.
	IsCave(pos BlockPos) bool
}
