package overlap

import (
	"github.com/grailbio/base/log"

	"github.com/sanox-oy/obj-overlap-cleaner/carve"
	"github.com/sanox-oy/obj-overlap-cleaner/mesh"
)

// Engine runs the pairwise overlap enumeration of one HQ model against the
// shared NQ pool.
type Engine struct{}

// NewEngine returns an overlap Engine. The engine carries no state of its
// own; it exists so future cross-HQ bookkeeping (e.g. shared statistics) has
// somewhere to live without changing every call site.
func NewEngine() *Engine {
	return &Engine{}
}

// ProcessHQ cross-products hq against every NQ model in pool: for each NQ
// model whose AABB intersects hq's, it stages the per-mesh overlap index
// lists under a read lock, then releases it and — only if any staging list
// is non-empty — takes the write lock to append them. It returns the HQ passthrough
// reference (textures copied verbatim, downscale factor 1) the write stage
// will later emit for hq.
func (e *Engine) ProcessHQ(hq *mesh.Model, pool []*SharedModel) (*carve.ModelReference, error) {
	for _, sm := range pool {
		if err := e.stageOne(hq, sm); err != nil {
			return nil, err
		}
	}
	log.Debug.Printf("overlap: processed hq model %s against %d nq models", hq.SourceFile, len(pool))
	return carve.ReferenceFromModel(hq, 1), nil
}

func (e *Engine) stageOne(hq *mesh.Model, sm *SharedModel) error {
	sm.mu.RLock()
	n := sm.Model

	if _, ok := n.AABB().Intersection(hq.AABB()); !ok {
		sm.mu.RUnlock()
		return nil
	}

	staging := make([][]uint32, len(n.Meshes))
	hasOverlap := false
	for mi, nMesh := range n.Meshes {
		for _, hMesh := range hq.Meshes {
			idxs, err := nMesh.CalcOverlap(hMesh)
			if err != nil {
				sm.mu.RUnlock()
				return err
			}
			if len(idxs) > 0 {
				staging[mi] = append(staging[mi], idxs...)
				hasOverlap = true
			}
		}
	}
	sm.mu.RUnlock()

	if !hasOverlap {
		return nil
	}

	sm.mu.Lock()
	for mi, idxs := range staging {
		if len(idxs) > 0 {
			n.Meshes[mi].AppendOverlap(idxs)
		}
	}
	sm.mu.Unlock()
	return nil
}
