package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// EmptyAABB returns an inverted box that any Extend call will replace.
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// Extend grows the box to contain p.
func (b *AABB) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Empty reports whether the box contains no point.
func (b AABB) Empty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

// Translate returns the box moved by v.
func (b AABB) Translate(v mgl32.Vec3) AABB {
	return AABB{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// PositiveVertex returns the corner furthest along the normal.
func (b AABB) PositiveVertex(normal mgl32.Vec3) mgl32.Vec3 {
	p := b.Min
	if normal.X() >= 0 {
		p[0] = b.Max.X()
	}
	if normal.Y() >= 0 {
		p[1] = b.Max.Y()
	}
	if normal.Z() >= 0 {
		p[2] = b.Max.Z()
	}
	return p
}
