package streaming

import (
	"sort"

	"voxengine/internal/profiling"
	"voxengine/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Update runs one frame of streaming work: load, generate, mesh, unload and
// upload with per-frame caps, then rebuilds the lists and the render list.
// A nil frustum treats every chunk as visible.
func (m *Manager) Update(cameraPos mgl32.Vec3, frustum Frustum) {
	if !m.running.Load() {
		return
	}
	defer profiling.Track("streaming.Update")()

	m.cameraPos = cameraPos
	if !m.started {
		m.trackCamera(cameraPos)
		m.started = true
	}

	m.loadChunks()
	m.scheduleGenerate()
	m.scheduleMesh()
	m.unloadChunks()
	m.uploadChunks()
	if m.visibilityDirty.Swap(false) {
		m.updateVisibility()
	}
	m.buildRenderList(frustum)
	m.trackCamera(cameraPos)
}

// inBounds reports whether coord lies in the current render window.
func (m *Manager) inBounds(coord world.ChunkCoord) bool {
	return coord.X >= m.boundsMin.X && coord.X <= m.boundsMax.X &&
		coord.Z >= m.boundsMin.Z && coord.Z <= m.boundsMax.Z
}

// stale reports whether c was generated under a replaced generator epoch.
func (m *Manager) stale(c *world.Chunk) bool {
	return c.State() >= world.StateGenerated && c.Epoch() != m.generator.Load().epoch
}

func (m *Manager) loadChunks() {
	n := 0
	for n < m.opts.MaxLoad && len(m.loadList) > 0 {
		coord := m.loadList[0]
		m.loadList = m.loadList[1:]
		if !m.inBounds(coord) {
			continue
		}
		if m.loadChunk(coord) {
			n++
		}
	}
	if n > 0 {
		m.visibilityDirty.Store(true)
	}
}

// loadChunk inserts a fresh chunk at coord unless one already exists.
func (m *Manager) loadChunk(coord world.ChunkCoord) bool {
	m.mu.Lock()
	if _, ok := m.chunks[coord]; ok {
		m.mu.Unlock()
		return false
	}
	m.nextGen++
	m.chunks[coord] = &chunkEntry{chunk: world.NewChunk(coord), gen: m.nextGen}
	m.mu.Unlock()

	m.log.Debug("chunk loaded", zap.Int("x", coord.X), zap.Int("z", coord.Z))
	return true
}

func (m *Manager) scheduleGenerate() {
	m.generateList = m.schedule(m.generateList, m.opts.MaxGenerate, generateTask, func(c *world.Chunk) bool {
		return c.State() == world.StateLoaded
	})
}

func (m *Manager) scheduleMesh() {
	m.meshList = m.schedule(m.meshList, m.opts.MaxMesh, meshTask, func(c *world.Chunk) bool {
		s := c.State()
		return s == world.StateGenerated || (s > world.StateGenerated && c.IsDirty())
	})
}

// schedule submits up to limit tasks for entries that still qualify and
// returns the entries left for later frames.
func (m *Manager) schedule(list []*chunkEntry, limit int, kind taskKind, qualifies func(*world.Chunk) bool) []*chunkEntry {
	n := 0
	rest := list[:0]
	for _, e := range list {
		if n >= limit {
			rest = append(rest, e)
			continue
		}
		if m.resolve(e.ref()) == nil || !qualifies(e.chunk) {
			continue
		}
		if !e.chunk.TryAcquire() {
			rest = append(rest, e)
			continue
		}
		if m.submit(e, kind) {
			n++
		}
	}
	clear(list[len(rest):])
	return rest
}

func (m *Manager) unloadChunks() {
	rest := m.unloadList[:0]
	removed := 0
	for _, e := range m.unloadList {
		switch m.unloadChunk(e) {
		case unloadBusy:
			rest = append(rest, e)
		case unloadDone:
			removed++
		}
	}
	clear(m.unloadList[len(rest):])
	m.unloadList = rest
	if removed > 0 {
		m.visibilityDirty.Store(true)
	}
}

type unloadResult int

const (
	unloadSkipped unloadResult = iota
	unloadBusy
	unloadDone
)

// unloadChunk removes e from the map if it is still out of range (or stale)
// and no task owns it.
func (m *Manager) unloadChunk(e *chunkEntry) unloadResult {
	c := e.chunk
	if m.inBounds(c.Coord()) && !m.stale(c) {
		return unloadSkipped
	}

	m.mu.Lock()
	if cur := m.chunks[c.Coord()]; cur != e {
		m.mu.Unlock()
		return unloadSkipped
	}
	// Holding busy forever marks the chunk dead for any late observer.
	if !c.TryAcquire() {
		m.mu.Unlock()
		return unloadBusy
	}
	delete(m.chunks, c.Coord())
	m.mu.Unlock()

	c.ReleaseGPU(m.uploader.Release)
	m.log.Debug("chunk unloaded",
		zap.Int("x", c.Coord().X), zap.Int("z", c.Coord().Z), zap.Stringer("state", c.State()))
	return unloadDone
}

func (m *Manager) uploadChunks() {
	defer profiling.Track("streaming.upload")()

	rest := m.uploadList[:0]
	for _, e := range m.uploadList {
		c := e.chunk
		if m.resolve(e.ref()) == nil {
			continue
		}
		if c.IsBusy() {
			rest = append(rest, e)
			continue
		}
		if !c.ReadyToUpload() {
			continue
		}
		err := c.UploadMesh(m.uploader.Upload)
		if err != nil {
			m.log.Warn("chunk upload failed",
				zap.Int("x", c.Coord().X), zap.Int("z", c.Coord().Z), zap.Error(err))
			rest = append(rest, e)
			continue
		}
		c.AdvanceState(world.StateUploaded)
		m.visibilityDirty.Store(true)
	}
	clear(m.uploadList[len(rest):])
	m.uploadList = rest
}

// updateVisibility reclassifies every chunk in the render window, nearest
// ring first, and collects tracked chunks that fell out of it.
func (m *Manager) updateVisibility() {
	defer profiling.Track("streaming.updateVisibility")()

	m.loadList = m.loadList[:0]
	m.generateList = resetEntries(m.generateList)
	m.meshList = resetEntries(m.meshList)
	m.uploadList = resetEntries(m.uploadList)
	m.visibleList = resetEntries(m.visibleList)
	m.unloadList = resetEntries(m.unloadList)

	epoch := m.generator.Load().epoch

	m.mu.RLock()
	defer m.mu.RUnlock()

	world.ForEachRing(m.cameraChunk, m.opts.RenderDistance, func(coord world.ChunkCoord) {
		e, ok := m.chunks[coord]
		if !ok {
			m.loadList = append(m.loadList, coord)
			return
		}
		c := e.chunk
		state := c.State()
		if state == world.StateUploaded {
			m.visibleList = append(m.visibleList, e)
		}
		if c.IsBusy() {
			return
		}
		switch {
		case state == world.StateLoaded:
			m.generateList = append(m.generateList, e)
		case c.Epoch() != epoch:
			m.unloadList = append(m.unloadList, e)
		case state == world.StateGenerated || c.IsDirty():
			m.meshList = append(m.meshList, e)
		case c.ReadyToUpload():
			m.uploadList = append(m.uploadList, e)
		}
	})

	for coord, e := range m.chunks {
		if !m.inBounds(coord) {
			m.unloadList = append(m.unloadList, e)
		}
	}
}

func resetEntries(list []*chunkEntry) []*chunkEntry {
	clear(list)
	return list[:0]
}

// buildRenderList keeps the uploaded chunks with geometry whose
// camera-relative bounds pass the frustum, sorted far to near.
func (m *Manager) buildRenderList(frustum Frustum) {
	clear(m.renderList)
	m.renderList = m.renderList[:0]

	type ranked struct {
		chunk *world.Chunk
		dist  float32
	}
	candidates := make([]ranked, 0, len(m.visibleList))
	offset := m.cameraPos.Mul(-1)
	for _, e := range m.visibleList {
		c := e.chunk
		if c.State() != world.StateUploaded {
			continue
		}
		bounds := c.WorldBounds()
		if bounds.Empty() {
			continue
		}
		box := bounds.Translate(offset)
		if frustum != nil && !frustum.IsBoxVisible(box) {
			continue
		}
		candidates = append(candidates, ranked{chunk: c, dist: box.Center().Dot(box.Center())})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist > candidates[j].dist })
	for _, r := range candidates {
		m.renderList = append(m.renderList, r.chunk)
	}
}

// trackCamera moves the render window when the camera changes chunk.
func (m *Manager) trackCamera(cameraPos mgl32.Vec3) {
	coord := world.ChunkCoordOf(world.WorldCoord(cameraPos))
	if m.started && coord == m.cameraChunk {
		return
	}
	r := m.opts.RenderDistance
	m.cameraChunk = coord
	m.boundsMin = coord.Add(-r, -r)
	m.boundsMax = coord.Add(r, r)
	m.visibilityDirty.Store(true)
	m.log.Debug("camera chunk changed", zap.Int("x", coord.X), zap.Int("z", coord.Z))
}
