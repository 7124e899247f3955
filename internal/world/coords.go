package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Chunk dimensions. X and Z must stay powers of two: world to chunk
	// mapping is done with shifts and masks.
	ChunkSizeX = 16
	ChunkSizeY = 48
	ChunkSizeZ = 16

	ChunkVolume = ChunkSizeX * ChunkSizeY * ChunkSizeZ

	chunkShiftX = 4
	chunkShiftZ = 4
)

// compile-time check that the shifts match the sizes
var (
	_ [ChunkSizeX - 1<<chunkShiftX]struct{}
	_ [1<<chunkShiftX - ChunkSizeX]struct{}
	_ [ChunkSizeZ - 1<<chunkShiftZ]struct{}
	_ [1<<chunkShiftZ - ChunkSizeZ]struct{}
)

// ChunkCoord identifies a chunk column on the horizontal plane.
type ChunkCoord struct {
	X, Z int
}

// Add returns the coordinate offset by (dx, dz).
func (c ChunkCoord) Add(dx, dz int) ChunkCoord {
	return ChunkCoord{X: c.X + dx, Z: c.Z + dz}
}

// Distance returns the Chebyshev distance between two chunk coordinates.
func (c ChunkCoord) Distance(o ChunkCoord) int {
	dx := c.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dz := c.Z - o.Z
	if dz < 0 {
		dz = -dz
	}
	return max(dx, dz)
}

// Origin returns the world block position of the chunk's (0,0,0) corner.
func (c ChunkCoord) Origin() BlockPos {
	return BlockPos{c.X * ChunkSizeX, 0, c.Z * ChunkSizeZ}
}

// BlockPos is an integer world or chunk-local block coordinate.
type BlockPos [3]int

func (p BlockPos) X() int { return p[0] }
func (p BlockPos) Y() int { return p[1] }
func (p BlockPos) Z() int { return p[2] }

// Add returns p + o.
func (p BlockPos) Add(o BlockPos) BlockPos {
	return BlockPos{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}

// Vec3 converts the position to float space.
func (p BlockPos) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(p[0]), float32(p[1]), float32(p[2])}
}

// ChunkCoordOf returns the chunk containing the world block position.
// Arithmetic shift floors negative coordinates.
func ChunkCoordOf(p BlockPos) ChunkCoord {
	return ChunkCoord{X: p[0] >> chunkShiftX, Z: p[2] >> chunkShiftZ}
}

// LocalCoord returns the position of a world block inside its chunk.
func LocalCoord(p BlockPos) BlockPos {
	return BlockPos{p[0] & (ChunkSizeX - 1), p[1], p[2] & (ChunkSizeZ - 1)}
}

// WorldCoord returns the block containing a floating point position.
func WorldCoord(pos mgl32.Vec3) BlockPos {
	return BlockPos{
		int(math.Floor(float64(pos.X()))),
		int(math.Floor(float64(pos.Y()))),
		int(math.Floor(float64(pos.Z()))),
	}
}

// Index3D converts local chunk coordinates to the dense block index.
func Index3D(x, y, z int) int {
	return z*(ChunkSizeY*ChunkSizeX) + y*ChunkSizeX + x
}

// InHeight reports whether y lies inside the world's vertical range.
func InHeight(y int) bool {
	return y >= 0 && y < ChunkSizeY
}

// ForEachRing calls fn for every chunk coordinate within radius of center,
// ordered by increasing Chebyshev distance (ring 0 first).
func ForEachRing(center ChunkCoord, radius int, fn func(ChunkCoord)) {
	fn(center)
	for r := 1; r <= radius; r++ {
		x0, x1 := center.X-r, center.X+r
		z0, z1 := center.Z-r, center.Z+r

		for x := x0; x <= x1; x++ {
			fn(ChunkCoord{X: x, Z: z0})
		}
		for z := z0 + 1; z <= z1-1; z++ {
			fn(ChunkCoord{X: x1, Z: z})
		}
		for x := x1; x >= x0; x-- {
			fn(ChunkCoord{X: x, Z: z1})
		}
		for z := z1 - 1; z >= z0+1; z-- {
			fn(ChunkCoord{X: x0, Z: z})
		}
	}
}
