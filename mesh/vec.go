// Package mesh holds the core triangle-mesh data model: vector and bounding
// box primitives, the uniform-grid spatial index, and the MeshContainer/Model
// types carving operates on.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a single-precision 3D vector, the storage format for mesh
// positions and normals.
type Vec3 = mgl32.Vec3

// Vec2 is a single-precision 2D vector, the storage format for UVs.
type Vec2 = mgl32.Vec2

// Vec3d is the double-precision vector the overlap test promotes to, to
// suppress catastrophic cancellation near-degenerate triangles would
// otherwise suffer in f32 (spec §9).
type Vec3d = mgl64.Vec3

func widen(v Vec3) Vec3d {
	return Vec3d{float64(v[0]), float64(v[1]), float64(v[2])}
}
