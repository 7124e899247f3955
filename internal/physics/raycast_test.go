package physics_test

import (
	"testing"

	"voxengine/internal/physics"
	"voxengine/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solidSet treats listed positions as solid and everything else as air.
type solidSet map[world.BlockPos]bool

func (s solidSet) IsBlockTransparent(pos world.BlockPos) bool {
	return !s[pos]
}

func TestRaycast(t *testing.T) {
	w := solidSet{{5, 0, 0}: true}
	start := mgl32.Vec3{0.5, 0.5, 0.5}
	dir := mgl32.Vec3{1, 0, 0}

	result := physics.Raycast(w, start, dir, 0.1, 10)
	require.True(t, result.Hit)
	assert.Equal(t, world.BlockPos{5, 0, 0}, result.HitPosition)
	assert.Equal(t, world.BlockPos{4, 0, 0}, result.AdjacentPosition)
	assert.InDelta(t, 4.5, result.Distance, 0.01)

	// short of the block
	assert.False(t, physics.Raycast(w, start, dir, 0.1, 4).Hit)
	// wrong direction
	assert.False(t, physics.Raycast(w, start, mgl32.Vec3{0, 1, 0}, 0.1, 10).Hit)
	// zero direction
	assert.False(t, physics.Raycast(w, start, mgl32.Vec3{}, 0, 10).Hit)
}

func TestRaycastDiagonal(t *testing.T) {
	w := solidSet{{2, 2, 2}: true}
	result := physics.Raycast(w, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 1, 1}, 0, 10)
	require.True(t, result.Hit)
	assert.Equal(t, world.BlockPos{2, 2, 2}, result.HitPosition)
}

func TestRaycastNegativeCoordinates(t *testing.T) {
	w := solidSet{{-3, 4, -1}: true}
	result := physics.Raycast(w, mgl32.Vec3{-0.5, 4.5, -0.5}, mgl32.Vec3{-1, 0, 0}, 0, 10)
	require.True(t, result.Hit)
	assert.Equal(t, world.BlockPos{-3, 4, -1}, result.HitPosition)
	assert.Equal(t, world.BlockPos{-2, 4, -1}, result.AdjacentPosition)
}

func TestCastRay(t *testing.T) {
	ground := solidSet{}
	for x := -2; x <= 2; x++ {
		for z := -2; z <= 2; z++ {
			ground[world.BlockPos{x, 0, z}] = true
		}
	}
	eye := mgl32.Vec3{0.5, 2.6, 0.5}
	down := mgl32.Vec3{0, -1, 0}

	hit, ok := physics.CastRayIncluding(ground, eye, down)
	require.True(t, ok)
	assert.Equal(t, world.BlockPos{0, 0, 0}, hit)

	place, ok := physics.CastRayExcluding(ground, eye, down)
	require.True(t, ok)
	assert.Equal(t, world.BlockPos{0, 1, 0}, place)

	_, ok = physics.CastRayIncluding(ground, eye, mgl32.Vec3{0, 1, 0})
	assert.False(t, ok)
}

func TestCastRayReach(t *testing.T) {
	far := solidSet{{10, 0, 0}: true}
	_, ok := physics.CastRayIncluding(far, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0})
	assert.False(t, ok, "beyond reach")

	near := solidSet{{7, 0, 0}: true}
	_, ok = physics.CastRayIncluding(near, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0})
	assert.True(t, ok)
}

func TestCastRayExcludingFromInsideSolid(t *testing.T) {
	w := solidSet{{0, 0, 0}: true}
	_, ok := physics.CastRayExcluding(w, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0})
	assert.False(t, ok)
	hit, ok := physics.CastRayIncluding(w, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0})
	assert.True(t, ok)
	assert.Equal(t, world.BlockPos{0, 0, 0}, hit)
}

func BenchmarkRaycast(b *testing.B) {
	w := solidSet{{7, 3, 7}: true}
	start := mgl32.Vec3{0.5, 3.5, 0.5}
	dir := mgl32.Vec3{1, 0, 1}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = physics.Raycast(w, start, dir, 0, physics.MaxReachDistance)
	}
}
