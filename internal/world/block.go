package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeDirt
	BlockTypeGrass
	BlockTypeStone
	BlockTypeWater
)

func (t BlockType) String() string {
	switch t {
	case BlockTypeAir:
		return "air"
	case BlockTypeDirt:
		return "dirt"
	case BlockTypeGrass:
		return "grass"
	case BlockTypeStone:
		return "stone"
	case BlockTypeWater:
		return "water"
	default:
		return "unknown"
	}
}

// Block is the value stored densely in a chunk. Enabled is false only for air.
type Block struct {
	Type    BlockType
	Enabled bool
}

// Air is the zero block.
var Air = Block{}

// NewBlock returns a block of the given type with Enabled derived from it.
func NewBlock(t BlockType) Block {
	return Block{Type: t, Enabled: t != BlockTypeAir}
}

// Transparent reports whether light and rays pass through the block.
func (b Block) Transparent() bool {
	return b.Type == BlockTypeAir || b.Type == BlockTypeWater
}

// BlockFace identifies a face of a block
type BlockFace int

const (
	FaceTop BlockFace = iota
	FaceSouth
	FaceNorth
	FaceWest
	FaceEast
	FaceBottom
)

// Faces lists every face in mesh emission order.
var Faces = [6]BlockFace{FaceTop, FaceSouth, FaceNorth, FaceWest, FaceEast, FaceBottom}

var faceOffsets = [6]BlockPos{
	FaceTop:    {0, 1, 0},
	FaceSouth:  {0, 0, -1},
	FaceNorth:  {0, 0, 1},
	FaceWest:   {-1, 0, 0},
	FaceEast:   {1, 0, 0},
	FaceBottom: {0, -1, 0},
}

var faceNormals = [6]mgl32.Vec3{
	FaceTop:    {0, 1, 0},
	FaceSouth:  {0, 0, -1},
	FaceNorth:  {0, 0, 1},
	FaceWest:   {-1, 0, 0},
	FaceEast:   {1, 0, 0},
	FaceBottom: {0, -1, 0},
}

// Offset returns the unit step from a block to its neighbour across the face.
func (f BlockFace) Offset() BlockPos {
	return faceOffsets[f]
}

// Normal returns the face normal scaled by its flat shading factor.
func (f BlockFace) Normal() mgl32.Vec3 {
	return faceNormals[f].Mul(f.Shade())
}

// Shade returns the flat lighting factor baked into the face normal.
func (f BlockFace) Shade() float32 {
	switch f {
	case FaceTop, FaceBottom:
		return 0.9
	case FaceNorth, FaceSouth:
		return 0.7
	default:
		return 0.8
	}
}
