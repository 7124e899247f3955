package streaming

import (
	"voxengine/internal/world"

	"go.uber.org/zap"
)

// Generator returns the current terrain generator.
func (m *Manager) Generator() world.TerrainGenerator {
	return m.generator.Load().gen
}

// SetGenerator replaces the generator used by tasks created from now on.
// Chunks already generated, and tasks already queued, are left alone.
func (m *Manager) SetGenerator(g world.TerrainGenerator) {
	if g == nil {
		return
	}
	for {
		cur := m.generator.Load()
		if m.generator.CompareAndSwap(cur, &generatorHandle{gen: g, epoch: cur.epoch}) {
			return
		}
	}
}

// Regenerate replaces the generator and rebuilds the world with it. Chunks
// generated by earlier generators are unloaded once idle and loaded again.
func (m *Manager) Regenerate(g world.TerrainGenerator) {
	if g == nil {
		return
	}
	for {
		cur := m.generator.Load()
		next := &generatorHandle{gen: g, epoch: cur.epoch + 1}
		if m.generator.CompareAndSwap(cur, next) {
			m.visibilityDirty.Store(true)
			m.log.Info("regenerating world", zap.Uint64("epoch", next.epoch))
			return
		}
	}
}
