package mesh

import "github.com/grailbio/base/errors"

// MeshContainer owns exactly one TriMesh and one Material, plus the derived
// state the overlap and carve stages attach to it. NQ containers carry
// meanEdgeLen; HQ containers carry a SpatialIndex; a container never carries
// both.
type MeshContainer struct {
	Tri      TriMesh
	Material Material

	aabb        AABB
	meanEdgeLen *float32
	index       *SpatialIndex

	overlappingVertexIdxs []uint32
	toBeDeleted           bool
	indicesToDelete       map[uint32]struct{}
}

// NewMeshContainer validates tri, computes its AABB, and builds whichever of
// meanEdgeLen/SpatialIndex the caller asks for. NQ construction uses
// (wantEdgeLen=true, wantIndex=false); HQ construction uses
// (wantEdgeLen=false, wantIndex=true).
func NewMeshContainer(tri TriMesh, mat Material, wantEdgeLen, wantIndex bool) (*MeshContainer, error) {
	if err := tri.Validate(); err != nil {
		return nil, errors.E(err, "building mesh container")
	}

	mc := &MeshContainer{
		Tri:      tri,
		Material: mat,
		aabb:     AABBFromPositions(tri.Positions),
	}

	if wantEdgeLen {
		l := meanEdgeLength(&tri)
		mc.meanEdgeLen = &l
	}
	if wantIndex {
		mc.index = BuildSpatialIndex(&tri)
	}

	return mc, nil
}

func meanEdgeLength(m *TriMesh) float32 {
	var sum float32
	var count int
	for t := 0; t+2 < len(m.Indices); t += 3 {
		p0 := m.Positions[m.Indices[t]]
		p1 := m.Positions[m.Indices[t+1]]
		p2 := m.Positions[m.Indices[t+2]]
		sum += p0.Sub(p1).Len()
		sum += p1.Sub(p2).Len()
		sum += p2.Sub(p0).Len()
		count += 3
	}
	if count == 0 {
		return 0
	}
	return sum / float32(count)
}

// AABB returns the container's immutable bounding box.
func (mc *MeshContainer) AABB() AABB {
	return mc.aabb
}

// Modified reports whether this container has been marked for full deletion
// or carries at least one recorded overlap.
func (mc *MeshContainer) Modified() bool {
	return mc.toBeDeleted || len(mc.overlappingVertexIdxs) > 0
}

// ToBeDeleted reports whether the mark phase classified the whole mesh as
// covered.
func (mc *MeshContainer) ToBeDeleted() bool {
	return mc.toBeDeleted
}

// AppendOverlap records additional vertex indices found to be covered by
// some HQ surface. Safe to call with a nil/empty slice.
func (mc *MeshContainer) AppendOverlap(idxs []uint32) {
	mc.overlappingVertexIdxs = append(mc.overlappingVertexIdxs, idxs...)
}
