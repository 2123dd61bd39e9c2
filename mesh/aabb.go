package mesh

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns a degenerate box that ExpandWithAABB/ExpandWithPoint can
// grow from; Intersection with it reports no overlap until it is expanded.
func EmptyAABB() AABB {
	inf := float32(math.MaxFloat32)
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// AABBFromPositions computes the bounding box of a slice of positions. The
// caller is expected to pass at least one position; an empty slice yields
// EmptyAABB.
func AABBFromPositions(positions []Vec3) AABB {
	box := EmptyAABB()
	for _, p := range positions {
		box = box.ExpandWithPoint(p)
	}
	return box
}

// ExpandWithPoint grows the box, if necessary, to contain p.
func (b AABB) ExpandWithPoint(p Vec3) AABB {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// ExpandWithAABB grows the box, if necessary, to contain other.
func (b AABB) ExpandWithAABB(other AABB) AABB {
	b = b.ExpandWithPoint(other.Min)
	b = b.ExpandWithPoint(other.Max)
	return b
}

// Intersection returns the overlapping region of b and other, and whether one
// exists (false when the boxes are disjoint on any axis).
func (b AABB) Intersection(other AABB) (AABB, bool) {
	var out AABB
	for i := 0; i < 3; i++ {
		if b.Min[i] > other.Min[i] {
			out.Min[i] = b.Min[i]
		} else {
			out.Min[i] = other.Min[i]
		}
		if b.Max[i] < other.Max[i] {
			out.Max[i] = b.Max[i]
		} else {
			out.Max[i] = other.Max[i]
		}
		if out.Min[i] > out.Max[i] {
			return AABB{}, false
		}
	}
	return out, true
}

// ContainsPoint reports whether p lies within the closed box.
func (b AABB) ContainsPoint(p Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}
