package world

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunk(t *testing.T) {
	c := NewChunk(ChunkCoord{2, -1})
	assert.Equal(t, StateLoaded, c.State())
	assert.False(t, c.IsBusy())
	assert.False(t, c.IsDirty())
	assert.False(t, c.ReadyToUpload())
	assert.Equal(t, mgl32.Vec3{32, 0, -16}, c.Origin())
	assert.Equal(t, Air, c.Block(3, 3, 3))
	assert.True(t, c.Bounds().Empty())
}

func TestAdvanceStateNeverRegresses(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	assert.True(t, c.AdvanceState(StateGenerated))
	assert.True(t, c.AdvanceState(StateUploaded))
	assert.False(t, c.AdvanceState(StateMeshed))
	assert.False(t, c.AdvanceState(StateUploaded))
	assert.Equal(t, StateUploaded, c.State())
}

func TestSetBlockReportsChange(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	stone := NewBlock(BlockTypeStone)

	assert.True(t, c.SetBlock(1, 2, 3, stone))
	assert.True(t, c.TakeDirty())
	assert.False(t, c.SetBlock(1, 2, 3, stone), "same value is a no-op")
	assert.False(t, c.IsDirty())
	assert.Equal(t, stone, c.Block(1, 2, 3))

	assert.False(t, c.SetBlock(ChunkSizeX, 0, 0, stone))
	assert.Equal(t, Air, c.Block(-1, 0, 0))
}

func TestBusyIsExclusive(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	require.True(t, c.TryAcquire())
	assert.False(t, c.TryAcquire())
	c.Release()
	assert.True(t, c.TryAcquire())
}

func TestEnterTaskPanicsOnDoubleAcquire(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	c.EnterTask()
	assert.Panics(t, func() { c.EnterTask() })
}

func TestConcurrentWritesDoNotTear(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	stone := NewBlock(BlockTypeStone)
	water := NewBlock(BlockTypeWater)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); c.SetBlock(4, 4, 4, stone) }()
		go func() { defer wg.Done(); c.SetBlock(4, 4, 4, water) }()
	}
	wg.Wait()

	got := c.Block(4, 4, 4)
	assert.Contains(t, []Block{stone, water}, got)
	assert.True(t, got.Enabled)
}

func TestUploadMeshClearsReady(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	c.SetMesh(MeshData{Opaque: make([]Vertex, 6), Bounds: AABB{Max: mgl32.Vec3{1, 1, 1}}})
	require.True(t, c.ReadyToUpload())

	err := c.UploadMesh(func(*MeshData, *GPUMesh) error { return errors.New("no context") })
	require.Error(t, err)
	assert.True(t, c.ReadyToUpload(), "failed upload keeps the mesh pending")

	require.NoError(t, c.UploadMesh(func(m *MeshData, g *GPUMesh) error {
		g.Opaque.Count = int32(len(m.Opaque))
		return nil
	}))
	assert.False(t, c.ReadyToUpload())
	assert.Equal(t, int32(6), c.GPU().Opaque.Count)

	c.ReleaseGPU(func(*GPUMesh) {})
	assert.Equal(t, GPUMesh{}, c.GPU())
}

func TestBlockTransparency(t *testing.T) {
	assert.True(t, Air.Transparent())
	assert.False(t, Air.Enabled)
	assert.True(t, NewBlock(BlockTypeWater).Transparent())
	assert.True(t, NewBlock(BlockTypeWater).Enabled)
	assert.False(t, NewBlock(BlockTypeGrass).Transparent())
}

func TestAABB(t *testing.T) {
	b := EmptyAABB()
	assert.True(t, b.Empty())
	b.Extend(mgl32.Vec3{1, 2, 3})
	b.Extend(mgl32.Vec3{-1, 0, 5})
	assert.False(t, b.Empty())
	assert.Equal(t, mgl32.Vec3{-1, 0, 3}, b.Min)
	assert.Equal(t, mgl32.Vec3{1, 2, 5}, b.Max)
	assert.Equal(t, mgl32.Vec3{1, 0, 5}, b.PositiveVertex(mgl32.Vec3{1, -1, 1}))
	assert.Equal(t, mgl32.Vec3{0, 1, 4}, b.Center())
}
