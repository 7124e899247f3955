package graphics

import (
	"voxengine/internal/profiling"
	"voxengine/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const highlightVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 proj;
uniform mat4 view;
uniform mat4 model;

void main() {
	gl_Position = proj * view * model * vec4(aPos, 1.0);
}
`

const highlightFragmentShader = `#version 410 core
uniform vec3 color;

out vec4 FragColor;

void main() {
	FragColor = vec4(color, 1.0);
}
`

const crosshairVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;

uniform float aspectRatio;

void main() {
	gl_Position = vec4(aPos.x / aspectRatio, aPos.y, 0.0, 1.0);
}
`

const crosshairFragmentShader = `#version 410 core
out vec4 FragColor;

void main() {
	FragColor = vec4(1.0, 1.0, 1.0, 1.0);
}
`

// 12 edges of the unit cube anchored at its min corner.
var cubeEdges = []float32{
	0, 0, 0, 1, 0, 0,
	1, 0, 0, 1, 0, 1,
	1, 0, 1, 0, 0, 1,
	0, 0, 1, 0, 0, 0,

	0, 1, 0, 1, 1, 0,
	1, 1, 0, 1, 1, 1,
	1, 1, 1, 0, 1, 1,
	0, 1, 1, 0, 1, 0,

	0, 0, 0, 0, 1, 0,
	1, 0, 0, 1, 1, 0,
	1, 0, 1, 1, 1, 1,
	0, 0, 1, 0, 1, 1,
}

var crosshairLines = []float32{
	-0.02, 0.0,
	0.02, 0.0,
	0.0, -0.02,
	0.0, 0.02,
}

// Overlay draws the outline of the targeted block and the screen crosshair.
type Overlay struct {
	highlight *Shader
	crosshair *Shader

	cubeVAO, cubeVBO   uint32
	crossVAO, crossVBO uint32
}

func NewOverlay() (*Overlay, error) {
	hl, err := NewShader(highlightVertexShader, highlightFragmentShader)
	if err != nil {
		return nil, err
	}
	ch, err := NewShader(crosshairVertexShader, crosshairFragmentShader)
	if err != nil {
		hl.Delete()
		return nil, err
	}
	o := &Overlay{highlight: hl, crosshair: ch}
	o.cubeVAO, o.cubeVBO = lineBuffer(cubeEdges, 3)
	o.crossVAO, o.crossVBO = lineBuffer(crosshairLines, 2)
	return o, nil
}

func lineBuffer(vertices []float32, size int32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, size, gl.FLOAT, false, size*4, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// RenderHighlight outlines the block at pos. The view matrix carries
// rotation only, so the block is placed relative to cameraPos.
func (o *Overlay) RenderHighlight(pos world.BlockPos, cameraPos mgl32.Vec3, proj, view mgl32.Mat4) {
	defer profiling.Track("renderer.renderHighlightedBlock")()

	off := pos.Vec3().Sub(cameraPos)
	model := mgl32.Translate3D(off.X()-0.005, off.Y()-0.005, off.Z()-0.005).
		Mul4(mgl32.Scale3D(1.01, 1.01, 1.01))

	o.highlight.Use()
	o.highlight.SetMat4("proj", proj)
	o.highlight.SetMat4("view", view)
	o.highlight.SetMat4("model", model)
	o.highlight.SetVec3("color", mgl32.Vec3{0, 0, 0})

	gl.BindVertexArray(o.cubeVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(cubeEdges)/3))
	gl.BindVertexArray(0)
}

func (o *Overlay) RenderCrosshair(aspectRatio float32) {
	defer profiling.Track("renderer.renderCrosshair")()

	gl.Disable(gl.DEPTH_TEST)
	o.crosshair.Use()
	o.crosshair.SetFloat("aspectRatio", aspectRatio)
	gl.BindVertexArray(o.crossVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(crosshairLines)/2))
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

func (o *Overlay) Dispose() {
	for _, vao := range []uint32{o.cubeVAO, o.crossVAO} {
		if vao != 0 {
			gl.DeleteVertexArrays(1, &vao)
		}
	}
	for _, vbo := range []uint32{o.cubeVBO, o.crossVBO} {
		if vbo != 0 {
			gl.DeleteBuffers(1, &vbo)
		}
	}
	o.highlight.Delete()
	o.crosshair.Delete()
}
