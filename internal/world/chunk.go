package world

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkState is the lifecycle stage of a chunk. States only move forward.
type ChunkState int32

const (
	StateUnloaded ChunkState = iota
	StateLoaded
	StateGenerated
	StateMeshed
	StateUploaded
)

func (s ChunkState) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateGenerated:
		return "generated"
	case StateMeshed:
		return "meshed"
	case StateUploaded:
		return "uploaded"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Chunk is a ChunkSizeX x ChunkSizeY x ChunkSizeZ column of blocks together
// with its CPU mesh and GPU handles.
//
// busy marks that a worker task owns the chunk's mutable data. It is set by
// the scheduler before a task is submitted and cleared by the task itself.
type Chunk struct {
	coord ChunkCoord

	state  atomic.Int32
	busy   atomic.Bool
	dirty  atomic.Bool
	ready  atomic.Bool
	owners atomic.Int32
	epoch  atomic.Uint64

	blockMu sync.Mutex
	blocks  []Block

	meshMu sync.Mutex
	mesh   MeshData
	gpu    GPUMesh
}

// NewChunk creates an all-air chunk in the Loaded state.
func NewChunk(coord ChunkCoord) *Chunk {
	c := &Chunk{
		coord:  coord,
		blocks: make([]Block, ChunkVolume),
		mesh:   MeshData{Bounds: EmptyAABB()},
	}
	c.state.Store(int32(StateLoaded))
	return c
}

// Coord returns the chunk coordinate.
func (c *Chunk) Coord() ChunkCoord {
	return c.coord
}

// OriginBlock returns the world position of the chunk's local (0,0,0).
func (c *Chunk) OriginBlock() BlockPos {
	return c.coord.Origin()
}

// Origin returns the world-space translation of the chunk mesh.
func (c *Chunk) Origin() mgl32.Vec3 {
	return c.coord.Origin().Vec3()
}

// State returns the current lifecycle stage.
func (c *Chunk) State() ChunkState {
	return ChunkState(c.state.Load())
}

// AdvanceState moves the chunk to s if s is ahead of the current state.
// It reports whether the state changed.
func (c *Chunk) AdvanceState(s ChunkState) bool {
	for {
		cur := c.state.Load()
		if int32(s) <= cur {
			return false
		}
		if c.state.CompareAndSwap(cur, int32(s)) {
			return true
		}
	}
}

// TryAcquire sets busy, failing when another task already holds it.
func (c *Chunk) TryAcquire() bool {
	return c.busy.CompareAndSwap(false, true)
}

// Release clears busy.
func (c *Chunk) Release() {
	c.busy.Store(false)
}

// IsBusy reports whether a task or an unload holds the chunk.
func (c *Chunk) IsBusy() bool {
	return c.busy.Load()
}

// EnterTask records that a task started executing on the chunk. Two tasks
// running on one chunk at the same time is a scheduler bug.
func (c *Chunk) EnterTask() {
	if n := c.owners.Add(1); n != 1 {
		panic(fmt.Sprintf("chunk %v: %d tasks hold busy", c.coord, n))
	}
}

// ExitTask pairs with EnterTask.
func (c *Chunk) ExitTask() {
	c.owners.Add(-1)
}

// MarkDirty flags the chunk for re-meshing.
func (c *Chunk) MarkDirty() {
	c.dirty.Store(true)
}

// IsDirty reports whether the chunk waits for a re-mesh.
func (c *Chunk) IsDirty() bool {
	return c.dirty.Load()
}

// TakeDirty clears the dirty flag and returns its previous value.
func (c *Chunk) TakeDirty() bool {
	return c.dirty.Swap(false)
}

// ReadyToUpload reports whether a mesh was built since the last upload.
func (c *Chunk) ReadyToUpload() bool {
	return c.ready.Load()
}

// Epoch returns the generator epoch the chunk was generated with.
func (c *Chunk) Epoch() uint64 {
	return c.epoch.Load()
}

// SetEpoch records the generator epoch used to fill the chunk.
func (c *Chunk) SetEpoch(e uint64) {
	c.epoch.Store(e)
}

func inChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkSizeX && y >= 0 && y < ChunkSizeY && z >= 0 && z < ChunkSizeZ
}

// Block returns the block at local coordinates. Out of range reads return air.
func (c *Chunk) Block(x, y, z int) Block {
	if !inChunk(x, y, z) {
		return Air
	}
	idx := Index3D(x, y, z)
	c.blockMu.Lock()
	b := c.blocks[idx]
	c.blockMu.Unlock()
	return b
}

// SetBlock stores b at local coordinates and reports whether the value
// changed. A change marks the chunk dirty.
func (c *Chunk) SetBlock(x, y, z int, b Block) bool {
	if !inChunk(x, y, z) {
		return false
	}
	idx := Index3D(x, y, z)
	c.blockMu.Lock()
	changed := c.blocks[idx] != b
	if changed {
		c.blocks[idx] = b
	}
	c.blockMu.Unlock()

	if changed {
		c.dirty.Store(true)
	}
	return changed
}

// SetMesh replaces the CPU mesh and flags it for upload.
func (c *Chunk) SetMesh(m MeshData) {
	c.meshMu.Lock()
	c.mesh = m
	c.ready.Store(true)
	c.meshMu.Unlock()
}

// Mesh returns a copy of the CPU mesh. The vertex slices are shared.
func (c *Chunk) Mesh() MeshData {
	c.meshMu.Lock()
	defer c.meshMu.Unlock()
	return c.mesh
}

// Bounds returns the chunk-local AABB of the current mesh.
func (c *Chunk) Bounds() AABB {
	c.meshMu.Lock()
	defer c.meshMu.Unlock()
	return c.mesh.Bounds
}

// WorldBounds returns the mesh AABB in world space.
func (c *Chunk) WorldBounds() AABB {
	return c.Bounds().Translate(c.Origin())
}

// UploadMesh hands the CPU mesh and GPU handles to fn under the mesh lock.
// The ready flag is cleared when fn succeeds. Main thread only.
func (c *Chunk) UploadMesh(fn func(mesh *MeshData, gpu *GPUMesh) error) error {
	c.meshMu.Lock()
	defer c.meshMu.Unlock()
	if err := fn(&c.mesh, &c.gpu); err != nil {
		return err
	}
	c.ready.Store(false)
	return nil
}

// ReleaseGPU hands the GPU handles to fn and resets them. Main thread only.
func (c *Chunk) ReleaseGPU(fn func(gpu *GPUMesh)) {
	c.meshMu.Lock()
	fn(&c.gpu)
	c.gpu = GPUMesh{}
	c.meshMu.Unlock()
}

// GPU returns the current GPU handles.
func (c *Chunk) GPU() GPUMesh {
	c.meshMu.Lock()
	defer c.meshMu.Unlock()
	return c.gpu
}
