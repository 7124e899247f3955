// Package streaming keeps the chunks around the camera resident, generated,
// meshed and uploaded.
//
// Update, Close and the render list are driven from a single goroutine (the
// one owning the GL context). Block access and generator swaps may be called
// from anywhere.
package streaming

import (
	"sync"
	"sync/atomic"

	"voxengine/internal/meshing"
	"voxengine/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// chunkEntry is a map slot. gen is unique per inserted chunk so a task can
// tell whether the chunk it was queued for still exists.
type chunkEntry struct {
	chunk *world.Chunk
	gen   uint64
}

// chunkRef is the weak form of a chunkEntry held by queued tasks.
type chunkRef struct {
	coord world.ChunkCoord
	gen   uint64
}

func (e *chunkEntry) ref() chunkRef {
	return chunkRef{coord: e.chunk.Coord(), gen: e.gen}
}

// generatorHandle pairs a generator with the epoch it was installed under.
type generatorHandle struct {
	gen   world.TerrainGenerator
	epoch uint64
}

// Manager streams chunks around the camera.
type Manager struct {
	opts     Options
	log      *zap.Logger
	uploader Uploader

	mu      sync.RWMutex
	chunks  map[world.ChunkCoord]*chunkEntry
	nextGen uint64

	generator atomic.Pointer[generatorHandle]
	pool      *meshing.WorkerPool
	running   atomic.Bool

	// set by anything that can change list membership
	visibilityDirty atomic.Bool

	// Main goroutine only.
	started     bool
	cameraPos   mgl32.Vec3
	cameraChunk world.ChunkCoord
	boundsMin   world.ChunkCoord
	boundsMax   world.ChunkCoord

	loadList     []world.ChunkCoord
	generateList []*chunkEntry
	meshList     []*chunkEntry
	unloadList   []*chunkEntry
	uploadList   []*chunkEntry
	visibleList  []*chunkEntry
	renderList   []*world.Chunk
}

// New validates opts and starts the worker pool.
func New(opts Options) (*Manager, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Uploader == nil {
		opts.Uploader = NopUploader{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	m := &Manager{
		opts:     opts,
		log:      opts.Logger.Named("chunks"),
		uploader: opts.Uploader,
		chunks:   make(map[world.ChunkCoord]*chunkEntry),
		pool:     meshing.NewWorkerPool(opts.ThreadCount),
	}
	m.generator.Store(&generatorHandle{gen: opts.Generator})
	m.running.Store(true)
	m.visibilityDirty.Store(true)

	m.log.Info("chunk manager started",
		zap.Int("renderDistance", opts.RenderDistance),
		zap.Int("threads", opts.ThreadCount),
		zap.Int("maxLoad", opts.MaxLoad),
		zap.Int("maxGenerate", opts.MaxGenerate),
		zap.Int("maxMesh", opts.MaxMesh),
	)
	return m, nil
}

// Close stops the workers, waits for running tasks and releases every
// chunk's GPU buffers. Call it from the goroutine that drives Update.
func (m *Manager) Close() {
	if !m.running.CompareAndSwap(true, false) {
		return
	}
	m.pool.Shutdown()

	m.mu.Lock()
	n := len(m.chunks)
	for coord, e := range m.chunks {
		e.chunk.ReleaseGPU(m.uploader.Release)
		delete(m.chunks, coord)
	}
	m.mu.Unlock()

	m.loadList = nil
	m.generateList = nil
	m.meshList = nil
	m.unloadList = nil
	m.uploadList = nil
	m.visibleList = nil
	m.renderList = nil
	m.log.Info("chunk manager stopped", zap.Int("released", n))
}

// RenderDistance returns the configured render distance in chunks.
func (m *Manager) RenderDistance() int {
	return m.opts.RenderDistance
}

// CameraChunk returns the chunk the camera was in at the last Update.
func (m *Manager) CameraChunk() world.ChunkCoord {
	return m.cameraChunk
}

// RenderList returns the uploaded, frustum-visible chunks of the last
// Update ordered back to front. The slice is reused by the next Update.
func (m *Manager) RenderList() []*world.Chunk {
	return m.renderList
}

// Chunk returns the resident chunk at coord, or nil.
func (m *Manager) Chunk(coord world.ChunkCoord) *world.Chunk {
	if e := m.entry(coord); e != nil {
		return e.chunk
	}
	return nil
}

func (m *Manager) entry(coord world.ChunkCoord) *chunkEntry {
	m.mu.RLock()
	e := m.chunks[coord]
	m.mu.RUnlock()
	return e
}

// resolve returns the entry a task was queued for, or nil when that chunk
// has been unloaded since.
func (m *Manager) resolve(ref chunkRef) *chunkEntry {
	e := m.entry(ref.coord)
	if e == nil || e.gen != ref.gen {
		return nil
	}
	return e
}

// Stats is a snapshot of the manager's bookkeeping.
type Stats struct {
	Chunks      int
	Load        int
	Generate    int
	Mesh        int
	Unload      int
	Upload      int
	Visible     int
	Render      int
	Busy        int
	QueuedTasks int
}

// Idle reports whether no streaming work is pending.
func (s Stats) Idle() bool {
	return s.Load == 0 && s.Generate == 0 && s.Mesh == 0 && s.Unload == 0 &&
		s.Upload == 0 && s.Busy == 0 && s.QueuedTasks == 0
}

// Stats returns the current counters. Call it from the goroutine that
// drives Update.
func (m *Manager) Stats() Stats {
	s := Stats{
		Load:        len(m.loadList),
		Generate:    len(m.generateList),
		Mesh:        len(m.meshList),
		Unload:      len(m.unloadList),
		Upload:      len(m.uploadList),
		Visible:     len(m.visibleList),
		Render:      len(m.renderList),
		QueuedTasks: m.pool.GetQueueLength(),
	}
	m.mu.RLock()
	s.Chunks = len(m.chunks)
	for _, e := range m.chunks {
		if e.chunk.IsBusy() {
			s.Busy++
		}
	}
	m.mu.RUnlock()
	return s
}
