package mesh

import "github.com/grailbio/base/errors"

const (
	// overlapEdgeLenFactor scales mean edge length into the plane-distance
	// threshold used by both the slab test and the spatial-index query.
	overlapEdgeLenFactor = 4.0
	// dilationFactor expands a triangle outward from its centroid before the
	// half-plane containment test, absorbing near-silhouette projections.
	dilationFactor = 0.15
	// halfSpaceEpsilon is the containment slack on the dilated half-plane test.
	halfSpaceEpsilon = 1e-9
)

// CalcOverlap enumerates the vertex indices of mc that are covered by a
// triangle of other, self being an NQ mesh and other an HQ mesh. Fails with
// a precondition error if mc has no mean edge length (i.e. was not built as
// an NQ container).
func (mc *MeshContainer) CalcOverlap(other *MeshContainer) ([]uint32, error) {
	if mc.meanEdgeLen == nil {
		return nil, errors.New("mesh: calc_overlap requires an NQ container with a mean edge length")
	}
	threshold := overlapEdgeLenFactor * *mc.meanEdgeLen

	inter, ok := mc.aabb.Intersection(other.aabb)
	if !ok {
		return nil, nil
	}

	var out []uint32
	for i, v := range mc.Tri.Positions {
		if !inter.ContainsPoint(v) {
			continue
		}
		if pointCovered(v, other, threshold) {
			out = append(out, uint32(i))
		}
	}
	return out, nil
}

// pointCovered reports whether v lies within threshold of the plane of some
// triangle of other and projects inside that triangle's centroid-dilated
// footprint. When other carries a SpatialIndex the candidate triangles are
// pruned by it; otherwise every triangle of other is tried.
func pointCovered(v Vec3, other *MeshContainer, threshold float32) bool {
	if other.index != nil {
		return pointCoveredIndexed(v, other, threshold)
	}
	return pointCoveredLinear(v, other, threshold)
}

func pointCoveredIndexed(v Vec3, other *MeshContainer, threshold float32) bool {
	candidates := other.index.Query(v, threshold)
	for t := 0; t+2 < len(candidates); t += 3 {
		i0, i1, i2 := candidates[t], candidates[t+1], candidates[t+2]
		if triangleCovers(v, other.Tri.Positions[i0], other.Tri.Positions[i1], other.Tri.Positions[i2], threshold) {
			return true
		}
	}
	return false
}

func pointCoveredLinear(v Vec3, other *MeshContainer, threshold float32) bool {
	idx := other.Tri.Indices
	for t := 0; t+2 < len(idx); t += 3 {
		p0 := other.Tri.Positions[idx[t]]
		p1 := other.Tri.Positions[idx[t+1]]
		p2 := other.Tri.Positions[idx[t+2]]
		if triangleCovers(v, p0, p1, p2, threshold) {
			return true
		}
	}
	return false
}

// triangleCovers runs the slab test followed by the dilated half-plane
// containment test for a single triangle, promoting all coordinates to f64
// to suppress cancellation near-degenerate triangles suffer in f32.
func triangleCovers(v, p0, p1, p2 Vec3, threshold float32) bool {
	vd, q0, q1, q2 := widen(v), widen(p0), widen(p1), widen(p2)

	n := q1.Sub(q0).Cross(q2.Sub(q0))
	n = n.Normalize()
	if isNaNVec(n) {
		// Zero-area triangle: normal undefined, silently not covering.
		return false
	}

	d := float32(n.Dot(vd.Sub(q0)))
	if d < 0 {
		d = -d
	}
	if d > threshold {
		return false
	}

	centroid := q0.Add(q1).Add(q2).Mul(1.0 / 3.0)
	e0 := q0.Add(q0.Sub(centroid).Mul(dilationFactor))
	e1 := q1.Add(q1.Sub(centroid).Mul(dilationFactor))
	e2 := q2.Add(q2.Sub(centroid).Mul(dilationFactor))

	edges := [3][2]Vec3d{{e0, e1}, {e1, e2}, {e2, e0}}
	for _, edge := range edges {
		dir := edge[1].Sub(edge[0])
		inward := dir.Cross(n)
		if inward.Dot(vd.Sub(edge[0])) > halfSpaceEpsilon {
			return false
		}
	}
	return true
}

func isNaNVec(v Vec3d) bool {
	return v[0] != v[0] || v[1] != v[1] || v[2] != v[2]
}
