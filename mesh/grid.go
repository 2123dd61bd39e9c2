package mesh

import "math"

// gridResolution is the number of cells per world unit (cell edge = 0.1).
const gridResolution = 10.0

// cellCoord is a signed integer grid cell coordinate.
type cellCoord struct {
	x, y, z int32
}

func cellOf(v Vec3) cellCoord {
	return cellCoord{
		x: int32(math.Floor(float64(v[0]) * gridResolution)),
		y: int32(math.Floor(float64(v[1]) * gridResolution)),
		z: int32(math.Floor(float64(v[2]) * gridResolution)),
	}
}

// SpatialIndex is a sparse uniform grid bucketing triangle corner indices by
// the cell each vertex falls in. Built only for HQ meshes; a triangle is
// registered in at most the (up to three) distinct cells its vertices fall
// in, so it under-covers large triangles whose edges span more than one
// cell — queries over such a triangle's interior, away from any of its
// vertices, may miss it. This limitation is inherited as specified rather
// than rasterizing triangles across every touched cell.
type SpatialIndex struct {
	cells map[cellCoord][]uint32
}

// NewSpatialIndex returns an empty index.
func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{cells: make(map[cellCoord][]uint32)}
}

// InsertTriangle registers one triangle's corner indices into the cells of
// its (up to three) distinct vertex positions.
func (s *SpatialIndex) InsertTriangle(v0, v1, v2 Vec3, corners [3]uint32) {
	c0 := cellOf(v0)
	s.cells[c0] = append(s.cells[c0], corners[0], corners[1], corners[2])

	c1 := cellOf(v1)
	if c1 != c0 {
		s.cells[c1] = append(s.cells[c1], corners[0], corners[1], corners[2])
	}

	c2 := cellOf(v2)
	if c2 != c0 && c2 != c1 {
		s.cells[c2] = append(s.cells[c2], corners[0], corners[1], corners[2])
	}
}

// Query returns the (possibly duplicated) concatenation of every cell's
// contents within the inclusive box spanning point-threshold to
// point+threshold, a superset of the triangles whose vertices lie in that
// box. Missing cells contribute nothing.
func (s *SpatialIndex) Query(point Vec3, threshold float32) []uint32 {
	min := cellOf(Vec3{point[0] - threshold, point[1] - threshold, point[2] - threshold})
	max := cellOf(Vec3{point[0] + threshold, point[1] + threshold, point[2] + threshold})

	var out []uint32
	for x := min.x; x <= max.x; x++ {
		for y := min.y; y <= max.y; y++ {
			for z := min.z; z <= max.z; z++ {
				if bucket, ok := s.cells[cellCoord{x, y, z}]; ok {
					out = append(out, bucket...)
				}
			}
		}
	}
	return out
}

// BuildSpatialIndex constructs an index over every triangle of m.
func BuildSpatialIndex(m *TriMesh) *SpatialIndex {
	idx := NewSpatialIndex()
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		idx.InsertTriangle(m.Positions[i0], m.Positions[i1], m.Positions[i2], [3]uint32{i0, i1, i2})
	}
	return idx
}
