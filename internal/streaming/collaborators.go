package streaming

import (
	"voxengine/internal/world"
)

// Frustum decides whether a camera-relative box can be seen.
type Frustum interface {
	IsBoxVisible(box world.AABB) bool
}

// Uploader moves CPU meshes to the GPU. Both methods are only called from
// the goroutine that drives Update and Close.
type Uploader interface {
	// Upload creates or refreshes the GPU buffers in gpu from mesh.
	Upload(mesh *world.MeshData, gpu *world.GPUMesh) error
	// Release frees the buffers held by gpu.
	Release(gpu *world.GPUMesh)
}

// NopUploader records vertex counts without touching a GPU. It is used
// headless and in tests.
type NopUploader struct{}

func (NopUploader) Upload(mesh *world.MeshData, gpu *world.GPUMesh) error {
	gpu.Opaque.Count = int32(len(mesh.Opaque))
	gpu.Water.Count = int32(len(mesh.Water))
	return nil
}

func (NopUploader) Release(gpu *world.GPUMesh) {
	*gpu = world.GPUMesh{}
}
