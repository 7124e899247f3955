// Package camera holds the fly camera and the view frustum used for culling.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free-flying camera. Its view matrix carries rotation only:
// geometry is translated by -Position before drawing so large world
// coordinates never reach the GPU.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float64 // degrees, -90 looks down -Z
	Pitch    float64 // degrees

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	Speed       float32 // blocks per second
	Sensitivity float64

	firstMouse   bool
	lastX, lastY float64
}

func NewCamera(width, height int, position mgl32.Vec3) *Camera {
	return &Camera{
		Position:    position,
		Yaw:         -90,
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		Speed:       12,
		Sensitivity: 0.1,
		firstMouse:  true,
	}
}

// SetViewport updates the aspect ratio after a framebuffer resize.
func (c *Camera) SetViewport(width, height int) {
	if height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	}
}

func (c *Camera) Front() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(c.Yaw))
	p := mgl32.DegToRad(float32(c.Pitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(p)))
	fy := float32(math.Sin(float64(p)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(p)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.Front().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// ViewMatrix looks along Front from the origin.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(mgl32.Vec3{}, c.Front(), mgl32.Vec3{0, 1, 0})
}

// Frustum returns the culling frustum for camera-relative boxes.
func (c *Camera) Frustum() *Frustum {
	return NewFrustum(c.ProjectionMatrix().Mul4(c.ViewMatrix()))
}

// Look applies a cursor position, clamping pitch to avoid flipping.
func (c *Camera) Look(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX, c.lastY = xpos, ypos
		c.firstMouse = false
		return
	}
	dx := (xpos - c.lastX) * c.Sensitivity
	dy := (c.lastY - ypos) * c.Sensitivity
	c.lastX, c.lastY = xpos, ypos

	c.Yaw += dx
	c.Pitch = max(-89.0, min(89.0, c.Pitch+dy))
}

// Move flies the camera. forward, right and up are input axes in [-1,1];
// forward follows the view direction including pitch.
func (c *Camera) Move(forward, right, up, dt float32) {
	step := c.Speed * dt
	delta := c.Front().Mul(forward).
		Add(c.Right().Mul(right)).
		Add(mgl32.Vec3{0, up, 0})
	if delta.Len() == 0 {
		return
	}
	c.Position = c.Position.Add(delta.Normalize().Mul(step))
}
