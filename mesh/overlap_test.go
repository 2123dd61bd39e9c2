package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hqTriangleContainer(t *testing.T) *MeshContainer {
	t.Helper()
	tri := TriMesh{
		Positions: []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	mc, err := NewMeshContainer(tri, Material{Name: "hq"}, false, true)
	require.NoError(t, err)
	return mc
}

func TestPointCoveredSlab(t *testing.T) {
	hq := hqTriangleContainer(t)

	tests := []struct {
		name      string
		v         Vec3
		threshold float32
		want      bool
	}{
		{"S1 strictly above, inside slab", Vec3{0, 0, 1.0}, 1.0, true},
		{"S2 strictly above, outside slab", Vec3{0, 0, 1.1}, 1.0, false},
		{"S3 mirror below, inside slab", Vec3{0, 0, -1.0}, 1.0, true},
		{"S3 mirror below, outside slab", Vec3{0, 0, -1.1}, 1.0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pointCovered(tt.v, hq, tt.threshold)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPointCoveredMonotonicInThreshold(t *testing.T) {
	hq := hqTriangleContainer(t)
	v := Vec3{0, 0, 1.0}
	require.True(t, pointCovered(v, hq, 1.0))
	assert.True(t, pointCovered(v, hq, 2.0), "increasing the threshold must not turn a covered point uncovered")
}

func TestCalcOverlapRequiresMeanEdgeLen(t *testing.T) {
	hq := hqTriangleContainer(t)
	noEdgeLen, err := NewMeshContainer(hq.Tri, Material{}, false, false)
	require.NoError(t, err)

	_, err = noEdgeLen.CalcOverlap(hq)
	assert.Error(t, err)
}

func TestCalcOverlapAABBPruningSoundness(t *testing.T) {
	hq := hqTriangleContainer(t)

	// v_in sits on the HQ triangle's plane, inside its footprint, within the
	// self/other AABB intersection box. v_out shares its z so the NQ mesh's
	// own AABB still straddles the HQ plane, but its x/y lie far outside the
	// intersection box, so it is excluded by the containment prune.
	nqTri := TriMesh{
		Positions: []Vec3{{0.1, 0.1, 0}, {100, 100, 0}, {100, 100, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	meanEdge := float32(1.0)
	nq := &MeshContainer{Tri: nqTri, meanEdgeLen: &meanEdge, aabb: AABBFromPositions(nqTri.Positions)}

	overlaps, err := nq.CalcOverlap(hq)
	require.NoError(t, err)
	require.Len(t, overlaps, 1)
	assert.Equal(t, uint32(0), overlaps[0])

	assert.False(t, pointCovered(nqTri.Positions[1], hq, 4*meanEdge),
		"a vertex excluded by AABB pruning should also fail the full coverage test")
}

func TestTriangleCoversDegenerateTriangleNeverCovers(t *testing.T) {
	// Zero-area triangle: cross product is zero, normalize yields NaN; the
	// coverage test must reject rather than panic or spuriously accept.
	covered := triangleCovers(Vec3{0, 0, 0}, Vec3{1, 1, 1}, Vec3{1, 1, 1}, Vec3{1, 1, 1}, 100.0)
	assert.False(t, covered)
}
