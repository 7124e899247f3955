package graphics

import (
	"voxengine/internal/profiling"
	"voxengine/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const chunkVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in float aKind;

uniform mat4 proj;
uniform mat4 view;
uniform mat4 model;

out vec3 vNormal;
flat out int vKind;
out float vDepth;

void main() {
	vec4 pos = view * model * vec4(aPos, 1.0);
	vNormal = aNormal;
	vKind = int(aKind + 0.5);
	vDepth = length(pos.xyz);
	gl_Position = proj * pos;
}
`

const chunkFragmentShader = `#version 410 core
in vec3 vNormal;
flat in int vKind;
in float vDepth;

uniform vec3 fogColor;
uniform float fogDistance;

out vec4 FragColor;

vec4 kindColor(int kind) {
	if (kind == 1) return vec4(0.45, 0.30, 0.18, 1.0); // dirt
	if (kind == 2) return vec4(0.32, 0.62, 0.22, 1.0); // grass
	if (kind == 3) return vec4(0.50, 0.50, 0.52, 1.0); // stone
	if (kind == 4) return vec4(0.15, 0.35, 0.80, 0.6); // water
	return vec4(1.0, 0.0, 1.0, 1.0);
}

void main() {
	vec4 color = kindColor(vKind);
	color.rgb *= length(vNormal);
	float fog = clamp((vDepth - fogDistance * 0.6) / (fogDistance * 0.4), 0.0, 1.0);
	FragColor = vec4(mix(color.rgb, fogColor, fog), color.a);
}
`

// ChunkRenderer draws uploaded chunk meshes: all opaque geometry first, then
// water with blending.
type ChunkRenderer struct {
	shader *Shader
}

func NewChunkRenderer() (*ChunkRenderer, error) {
	s, err := NewShader(chunkVertexShader, chunkFragmentShader)
	if err != nil {
		return nil, err
	}
	return &ChunkRenderer{shader: s}, nil
}

// RenderParams is the per-frame input of ChunkRenderer.Render.
type RenderParams struct {
	Chunks      []*world.Chunk // back to front
	CameraPos   mgl32.Vec3
	Proj        mgl32.Mat4
	View        mgl32.Mat4
	FogColor    mgl32.Vec3
	FogDistance float32
}

func (r *ChunkRenderer) Render(p RenderParams) {
	defer profiling.Track("renderer.renderChunks")()

	r.shader.Use()
	r.shader.SetMat4("proj", p.Proj)
	r.shader.SetMat4("view", p.View)
	r.shader.SetVec3("fogColor", p.FogColor)
	r.shader.SetFloat("fogDistance", p.FogDistance)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)
	for i := len(p.Chunks) - 1; i >= 0; i-- { // near to far for early depth rejects
		c := p.Chunks[i]
		r.draw(c.GPU().Opaque, c.Origin().Sub(p.CameraPos))
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.DepthMask(false)
	for _, c := range p.Chunks {
		r.draw(c.GPU().Water, c.Origin().Sub(p.CameraPos))
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

func (r *ChunkRenderer) draw(buf world.GPUBuffer, offset mgl32.Vec3) {
	if buf.Count == 0 {
		return
	}
	r.shader.SetMat4("model", mgl32.Translate3D(offset.X(), offset.Y(), offset.Z()))
	gl.BindVertexArray(buf.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, buf.Count)
}

func (r *ChunkRenderer) Dispose() {
	if r.shader != nil {
		r.shader.Delete()
	}
}
