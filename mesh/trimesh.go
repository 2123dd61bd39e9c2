package mesh

import "github.com/grailbio/base/errors"

// TriMesh is a single-indexed triangulated surface: one index per triangle
// corner, referring jointly to Positions, UVs, and Normals.
type TriMesh struct {
	Positions []Vec3
	Indices   []uint32
	UVs       []Vec2 // optional; 1:1 with Positions when present
	Normals   []Vec3 // optional; discarded on carving
}

// Validate checks the single-indexing invariants spec.md §3 requires: the
// index count is a multiple of 3, every index is in range, and UVs (when
// present) line up 1:1 with Positions.
func (m *TriMesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return errors.New("mesh: index count is not a multiple of 3")
	}
	if len(m.UVs) > 0 && len(m.UVs) != len(m.Positions) {
		return errors.New("mesh: uv count does not match position count")
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return errors.New("mesh: index references out-of-range position")
		}
	}
	return nil
}

// TriangleCount returns the number of triangles in the mesh.
func (m *TriMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Material is an opaque record carrying a wavefront-style material: a name,
// optional scalar/color fields, and optional texture path fields. It is
// carried through carving unchanged.
type Material struct {
	Name string

	Ambient   *[3]float32 // Ka
	Diffuse   *[3]float32 // Kd
	Specular  *[3]float32 // Ks
	Dissolve  *float32    // d
	Shininess *float32    // Ns
	Illum     *int        // illum

	DiffuseTexture   string // map_Kd
	AmbientTexture   string // map_Ka
	DissolveTexture  string // map_d
	SpecularTexture  string // map_Ks
	NormalTexture    string // map_Bump / norm
	ShininessTexture string // map_Ns
}

// Textures returns the material's non-empty texture paths in a fixed order
// (diffuse, ambient, dissolve, specular, normal, shininess), the set
// spec.md §4.G's texture-copy procedure walks for every material. A path
// set in more than one field appears once per field; duplicates are not
// removed here.
func (m *Material) Textures() []string {
	all := []string{m.DiffuseTexture, m.AmbientTexture, m.DissolveTexture, m.SpecularTexture, m.NormalTexture, m.ShininessTexture}
	out := make([]string, 0, len(all))
	for _, t := range all {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
