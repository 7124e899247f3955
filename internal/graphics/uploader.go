package graphics

import (
	"unsafe"

	"voxengine/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

const vertexStride = int32(unsafe.Sizeof(world.Vertex{}))

// GLUploader creates one VAO/VBO pair per vertex list. It must be used on
// the goroutine owning the GL context.
type GLUploader struct{}

func (GLUploader) Upload(mesh *world.MeshData, gpu *world.GPUMesh) error {
	uploadBuffer(&gpu.Opaque, mesh.Opaque)
	uploadBuffer(&gpu.Water, mesh.Water)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return errors.Errorf("gl error 0x%x", code)
	}
	return nil
}

func (GLUploader) Release(gpu *world.GPUMesh) {
	deleteBuffer(&gpu.Opaque)
	deleteBuffer(&gpu.Water)
}

func uploadBuffer(buf *world.GPUBuffer, verts []world.Vertex) {
	if len(verts) == 0 {
		deleteBuffer(buf)
		return
	}
	if buf.VAO == 0 {
		gl.GenVertexArrays(1, &buf.VAO)
		gl.GenBuffers(1, &buf.VBO)
		gl.BindVertexArray(buf.VAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, buf.VBO)
		// position, normal (length carries the face shade), block kind
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
		gl.EnableVertexAttribArray(2)
		gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, vertexStride, 6*4)
	} else {
		gl.BindVertexArray(buf.VAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, buf.VBO)
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*int(vertexStride), gl.Ptr(&verts[0]), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
	buf.Count = int32(len(verts))
}

func deleteBuffer(buf *world.GPUBuffer) {
	if buf.VAO != 0 {
		gl.DeleteVertexArrays(1, &buf.VAO)
	}
	if buf.VBO != 0 {
		gl.DeleteBuffers(1, &buf.VBO)
	}
	*buf = world.GPUBuffer{}
}
