// Package overlap implements the pairwise NQ-vs-HQ overlap detection stage:
// a shared, lock-guarded pool of NQ models that HQ workers read concurrently
// and annotate with covered-vertex indices.
package overlap

import (
	"sync"

	"github.com/sanox-oy/obj-overlap-cleaner/mesh"
)

// SharedModel guards one NQ Model with a reader/writer lock for the
// duration of the overlap stage: HQ workers take a read lock to inspect
// immutable mesh data and a write lock only to append overlap indices.
// Ownership is single-writer before Stage 1 and after the stage drains;
// sharing is limited to this window.
type SharedModel struct {
	mu    sync.RWMutex
	Model *mesh.Model
}

// NewSharedPool wraps each NQ model for concurrent access during the
// overlap stage.
func NewSharedPool(models []*mesh.Model) []*SharedModel {
	pool := make([]*SharedModel, len(models))
	for i, m := range models {
		pool[i] = &SharedModel{Model: m}
	}
	return pool
}

// Drain reclaims exclusive ownership of every model in the pool, returning
// them as a plain slice for Stage 3.
func Drain(pool []*SharedModel) []*mesh.Model {
	out := make([]*mesh.Model, len(pool))
	for i, sm := range pool {
		out[i] = sm.Model
	}
	return out
}
