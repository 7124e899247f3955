package streaming

import (
	"context"

	"voxengine/internal/meshing"
	"voxengine/internal/profiling"
	"voxengine/internal/world"

	"go.uber.org/zap"
)

type taskKind int

const (
	generateTask taskKind = iota
	meshTask
)

func (k taskKind) String() string {
	if k == generateTask {
		return "generate"
	}
	return "mesh"
}

// task is queued work for one chunk. The generator is captured when the task
// is created so a swap never affects work already queued.
type task struct {
	ref  chunkRef
	kind taskKind
	gen  *generatorHandle
}

// submit queues a task for e. The caller must hold e's busy flag; it is
// released here when the pool refuses the task.
func (m *Manager) submit(e *chunkEntry, kind taskKind) bool {
	t := task{ref: e.ref(), kind: kind, gen: m.generator.Load()}
	ok := m.pool.SubmitJob(func(ctx context.Context) {
		m.runTask(ctx, t)
	})
	if !ok {
		e.chunk.Release()
	}
	return ok
}

func (m *Manager) runTask(ctx context.Context, t task) {
	e := m.resolve(t.ref)
	if e == nil {
		m.log.Debug("dropping task for unloaded chunk",
			zap.Stringer("kind", t.kind), zap.Int("x", t.ref.coord.X), zap.Int("z", t.ref.coord.Z))
		return
	}
	c := e.chunk
	c.EnterTask()
	defer func() {
		c.ExitTask()
		c.Release()
		m.visibilityDirty.Store(true)
	}()
	if ctx.Err() != nil {
		return
	}

	switch t.kind {
	case generateTask:
		m.generate(c, t.gen)
	case meshTask:
		m.mesh(c)
	}
}

// generate fills c column by column, asking the generator for each
// column's height once.
func (m *Manager) generate(c *world.Chunk, h *generatorHandle) {
	defer profiling.Track("streaming.generate")()

	origin := c.OriginBlock()
	for x := 0; x < world.ChunkSizeX; x++ {
		for z := 0; z < world.ChunkSizeZ; z++ {
			wx, wz := origin.X()+x, origin.Z()+z
			height := h.gen.TerrainHeight(wx, wz)
			for y := 0; y < world.ChunkSizeY; y++ {
				c.SetBlock(x, y, z, h.gen.Block(world.BlockPos{wx, y, wz}, height))
			}
		}
	}
	c.SetEpoch(h.epoch)
	c.AdvanceState(world.StateGenerated)

	// Neighbours meshed while this chunk was missing drew their shared faces.
	coord := c.Coord()
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		nb := m.entry(coord.Add(d[0], d[1]))
		if nb != nil && nb.chunk.State() >= world.StateGenerated {
			nb.chunk.MarkDirty()
		}
	}
}

// mesh rebuilds the CPU mesh. Dirty is cleared before reading blocks so a
// write racing with the pass raises it again.
func (m *Manager) mesh(c *world.Chunk) {
	c.TakeDirty()
	c.SetMesh(meshing.BuildChunkMesh(c, m))
	c.AdvanceState(world.StateMeshed)
}
