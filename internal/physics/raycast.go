package physics

import (
	"voxengine/internal/profiling"
	"voxengine/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// RayStep is the distance between samples along a ray.
	RayStep = 0.05
	// RaySteps is the number of samples taken by the CastRay helpers.
	RaySteps = 160

	MaxReachDistance = RayStep * RaySteps
)

// TransparencyQuery reports whether rays pass through a block.
type TransparencyQuery interface {
	IsBlockTransparent(pos world.BlockPos) bool
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      world.BlockPos
	AdjacentPosition world.BlockPos // last open block before the hit
	HasAdjacent      bool           // false when the ray started inside a solid block
	Distance         float32
	Hit              bool
}

// Raycast samples the ray every RayStep from minDist to maxDist and stops at
// the first block that is not transparent.
func Raycast(q TransparencyQuery, start, direction mgl32.Vec3, minDist, maxDist float32) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	var result RaycastResult
	if direction.Len() == 0 {
		return result
	}
	direction = direction.Normalize()

	var last world.BlockPos
	sampled := false
	steps := int(maxDist / RayStep)
	for i := 0; i <= steps; i++ {
		dist := float32(i) * RayStep
		if dist < minDist {
			continue
		}
		pos := world.WorldCoord(start.Add(direction.Mul(dist)))
		if sampled && pos == last {
			continue
		}
		if !q.IsBlockTransparent(pos) {
			result.Hit = true
			result.HitPosition = pos
			result.AdjacentPosition = last
			result.HasAdjacent = sampled
			result.Distance = dist
			return result
		}
		last = pos
		sampled = true
	}
	return result
}

// CastRayIncluding returns the first solid block within reach.
func CastRayIncluding(q TransparencyQuery, origin, dir mgl32.Vec3) (world.BlockPos, bool) {
	r := Raycast(q, origin, dir, 0, MaxReachDistance)
	return r.HitPosition, r.Hit
}

// CastRayExcluding returns the open block in front of the first solid block
// within reach.
func CastRayExcluding(q TransparencyQuery, origin, dir mgl32.Vec3) (world.BlockPos, bool) {
	r := Raycast(q, origin, dir, 0, MaxReachDistance)
	return r.AdjacentPosition, r.Hit && r.HasAdjacent
}
