package mesh

import "github.com/grailbio/base/errors"

// Model is an ordered group of MeshContainers sharing a source file path
// and an aggregate AABB.
type Model struct {
	SourceFile string
	Meshes     []*MeshContainer

	aabb AABB
}

// LoadModel wraps raw per-triangle-mesh/material pairs (as returned by an
// OBJ/MTL loader) into MeshContainers under a shared source file path. NQ
// callers pass (wantEdgeLen=true, wantIndex=false); HQ callers pass
// (wantEdgeLen=false, wantIndex=true).
func LoadModel(sourceFile string, tris []TriMesh, mats []Material, wantEdgeLen, wantIndex bool) (*Model, error) {
	if len(tris) != len(mats) {
		return nil, errors.New("mesh: mismatched triangle mesh and material counts for " + sourceFile)
	}

	m := &Model{SourceFile: sourceFile, aabb: EmptyAABB()}
	for i, tri := range tris {
		mc, err := NewMeshContainer(tri, mats[i], wantEdgeLen, wantIndex)
		if err != nil {
			return nil, errors.E(err, "loading model", sourceFile)
		}
		m.Meshes = append(m.Meshes, mc)
		m.aabb = m.aabb.ExpandWithAABB(mc.AABB())
	}
	return m, nil
}

// AABB returns the union of the model's mesh AABBs.
func (m *Model) AABB() AABB {
	return m.aabb
}

// Modified reports whether any mesh in the model carries an overlap or a
// full-deletion mark.
func (m *Model) Modified() bool {
	for _, mc := range m.Meshes {
		if mc.Modified() {
			return true
		}
	}
	return false
}

// ToBeDeleted reports whether every mesh in the model was marked for full
// deletion.
func (m *Model) ToBeDeleted() bool {
	if len(m.Meshes) == 0 {
		return false
	}
	for _, mc := range m.Meshes {
		if !mc.ToBeDeleted() {
			return false
		}
	}
	return true
}

// MarkVerticesToDelete fans out the mark phase across every mesh.
func (m *Model) MarkVerticesToDelete() {
	for _, mc := range m.Meshes {
		mc.MarkVerticesToDelete()
	}
}

// DoDeleteVertices removes every mesh marked for full deletion, then rewrites
// the remainder in place.
func (m *Model) DoDeleteVertices() {
	kept := m.Meshes[:0]
	for _, mc := range m.Meshes {
		if mc.ToBeDeleted() {
			continue
		}
		mc.DoDeleteVertices()
		kept = append(kept, mc)
	}
	m.Meshes = kept
}

// Materials returns the materials of every surviving mesh, in order.
func (m *Model) Materials() []Material {
	mats := make([]Material, 0, len(m.Meshes))
	for _, mc := range m.Meshes {
		mats = append(mats, mc.Material)
	}
	return mats
}
