package camera

import (
	"math"

	"voxengine/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// frustumMargin inflates boxes before testing, in blocks.
const frustumMargin float32 = 1.0

type plane struct {
	a, b, c, d float32
}

// Frustum holds the six clip planes of a projection*view matrix.
type Frustum struct {
	planes [6]plane
}

// NewFrustum extracts the planes of clip. Boxes passed to IsBoxVisible must
// be in the space clip maps from.
func NewFrustum(clip mgl32.Mat4) *Frustum {
	// mgl32 matrices are column-major
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	f := &Frustum{}
	f.planes[0] = normalizePlane(plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03}) // left
	f.planes[1] = normalizePlane(plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03}) // right
	f.planes[2] = normalizePlane(plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13}) // bottom
	f.planes[3] = normalizePlane(plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13}) // top
	f.planes[4] = normalizePlane(plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23}) // near
	f.planes[5] = normalizePlane(plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23}) // far
	return f
}

func normalizePlane(p plane) plane {
	l := float32(math.Sqrt(float64(p.a*p.a + p.b*p.b + p.c*p.c)))
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

// IsBoxVisible reports whether box intersects the frustum. Only the positive
// vertex of each plane is tested, so a few boxes near corners pass that are
// actually outside.
func (f *Frustum) IsBoxVisible(box world.AABB) bool {
	if box.Empty() {
		return false
	}
	m := mgl32.Vec3{frustumMargin, frustumMargin, frustumMargin}
	box = world.AABB{Min: box.Min.Sub(m), Max: box.Max.Add(m)}
	for _, p := range f.planes {
		v := box.PositiveVertex(mgl32.Vec3{p.a, p.b, p.c})
		if p.a*v.X()+p.b*v.Y()+p.c*v.Z()+p.d < 0 {
			return false
		}
	}
	return true
}
