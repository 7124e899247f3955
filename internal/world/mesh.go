package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one corner of an emitted face, in chunk-local space.
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
	Kind   float32
}

// VertexFloats is the number of float32 values per Vertex.
const VertexFloats = 7

// MeshData is the CPU side of a chunk mesh.
type MeshData struct {
	Opaque []Vertex
	Water  []Vertex
	Bounds AABB
}

// VertexCount returns the total number of vertices in both lists.
func (m *MeshData) VertexCount() int {
	return len(m.Opaque) + len(m.Water)
}

// GPUBuffer holds the GL objects for one vertex list.
type GPUBuffer struct {
	VAO   uint32
	VBO   uint32
	Count int32
}

// GPUMesh holds the GPU handles of a chunk. Only touched on the main thread.
type GPUMesh struct {
	Opaque GPUBuffer
	Water  GPUBuffer
}
