package meshing

import (
	"voxengine/internal/profiling"
	"voxengine/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// BlockSource resolves blocks outside the chunk being meshed.
type BlockSource interface {
	GetBlock(pos world.BlockPos) (world.Block, error)
}

// unit cube corners
var corners = [8]mgl32.Vec3{
	{0, 0, 0}, // back bottom left
	{1, 0, 0}, // back bottom right
	{0, 1, 0}, // back top left
	{1, 1, 0}, // back top right
	{0, 0, 1}, // front bottom left
	{1, 0, 1}, // front bottom right
	{0, 1, 1}, // front top left
	{1, 1, 1}, // front top right
}

// two counter-clockwise triangles per face, as corner indices
var faceCorners = [6][6]int{
	world.FaceTop:    {2, 6, 7, 2, 7, 3},
	world.FaceSouth:  {0, 2, 1, 1, 2, 3},
	world.FaceNorth:  {4, 5, 6, 5, 7, 6},
	world.FaceWest:   {0, 4, 6, 0, 6, 2},
	world.FaceEast:   {1, 7, 5, 1, 3, 7},
	world.FaceBottom: {1, 4, 0, 1, 5, 4},
}

// BuildChunkMesh emits the visible faces of every enabled block in c.
// Water faces go to the water list, everything else to the opaque list.
// Neighbours across the chunk edge come from src; a neighbour whose chunk is
// not loaded counts as visible so streaming edges never show holes.
func BuildChunkMesh(c *world.Chunk, src BlockSource) world.MeshData {
	defer profiling.Track("meshing.BuildChunkMesh")()

	mesh := world.MeshData{Bounds: world.EmptyAABB()}
	origin := c.OriginBlock()

	for x := 0; x < world.ChunkSizeX; x++ {
		for y := 0; y < world.ChunkSizeY; y++ {
			for z := 0; z < world.ChunkSizeZ; z++ {
				b := c.Block(x, y, z)
				if !b.Enabled {
					continue
				}
				local := world.BlockPos{x, y, z}
				for _, face := range world.Faces {
					nb, err := neighbour(c, src, origin, local.Add(face.Offset()))
					if !shouldDrawFace(b, nb, err) {
						continue
					}
					if b.Type == world.BlockTypeWater {
						mesh.Water = appendFace(mesh.Water, &mesh.Bounds, local, face, b.Type)
					} else {
						mesh.Opaque = appendFace(mesh.Opaque, &mesh.Bounds, local, face, b.Type)
					}
				}
			}
		}
	}
	return mesh
}

func neighbour(c *world.Chunk, src BlockSource, origin, n world.BlockPos) (world.Block, error) {
	if n.Y() >= world.ChunkSizeY {
		return world.Air, nil
	}
	if n.Y() < 0 {
		return world.Air, world.ErrOutOfBounds
	}
	if n.X() >= 0 && n.X() < world.ChunkSizeX && n.Z() >= 0 && n.Z() < world.ChunkSizeZ {
		return c.Block(n.X(), n.Y(), n.Z()), nil
	}
	if src == nil {
		return world.Air, world.ErrNotLoaded
	}
	return src.GetBlock(origin.Add(n))
}

func shouldDrawFace(b, nb world.Block, err error) bool {
	if err != nil {
		// below the world is never seen; a missing chunk is drawn until it loads
		return !errors.Is(err, world.ErrOutOfBounds)
	}
	if b.Type == world.BlockTypeWater {
		return nb.Type == world.BlockTypeAir
	}
	return !b.Transparent() && nb.Transparent()
}

func appendFace(dst []world.Vertex, bounds *world.AABB, local world.BlockPos, face world.BlockFace, kind world.BlockType) []world.Vertex {
	base := local.Vec3()
	normal := face.Normal()
	for _, ci := range faceCorners[face] {
		p := base.Add(corners[ci])
		bounds.Extend(p)
		dst = append(dst, world.Vertex{Pos: p, Normal: normal, Kind: float32(kind)})
	}
	return dst
}
