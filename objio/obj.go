// Package objio loads and writes wavefront-OBJ-compatible triangle meshes
// and their sibling material files, and handles texture copy/resample for
// the output directory.
package objio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"

	"github.com/sanox-oy/obj-overlap-cleaner/mesh"
)

// RawAsset is the single-indexed result of loading one .obj file: one
// TriMesh/Material pair per non-empty `o`/`g` group (a `usemtl` sets the
// material of the current group and does not start a new one), plus the
// source file's path (textures and the sibling .mtl resolve relative to its
// directory).
type RawAsset struct {
	SourceFile string
	Meshes     []mesh.TriMesh
	Materials  []mesh.Material
}

type objGroup struct {
	material  string
	positions []mesh.Vec3
	uvs       []mesh.Vec2
	hasUVs    bool
	indices   []uint32
	vertexMap map[string]uint32
}

func newObjGroup(material string) *objGroup {
	return &objGroup{material: material, vertexMap: make(map[string]uint32)}
}

// LoadOBJ parses path, expanding multi-indexed (`v/vt/vn`) faces into the
// single-indexed TriMesh the core requires, fan-triangulating n-gons, and
// loading the referenced `mtllib` sibling.
func LoadOBJ(path string) (*RawAsset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.E(err, "opening obj file", path)
	}
	defer f.Close()

	var allPositions []mesh.Vec3
	var allUVs []mesh.Vec2
	materialDefs := make(map[string]mesh.Material)
	materialOrder := []string{}

	groups := []*objGroup{}
	current := newObjGroup("")
	currentMaterial := ""
	dir := filepath.Dir(path)

	flush := func() {
		if len(current.indices) > 0 {
			groups = append(groups, current)
		}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)

		switch parts[0] {
		case "v":
			if len(parts) >= 4 {
				allPositions = append(allPositions, parseVec3(parts[1:4]))
			}
		case "vt":
			if len(parts) >= 3 {
				allUVs = append(allUVs, parseVec2(parts[1:3]))
			}
		case "f":
			faceVerts := make([]uint32, 0, len(parts)-1)
			for _, spec := range parts[1:] {
				if idx, ok := current.vertexMap[spec]; ok {
					faceVerts = append(faceVerts, idx)
					continue
				}
				pos, uv, hasUV, err := parseFaceVertex(spec, allPositions, allUVs)
				if err != nil {
					return nil, errors.E(err, "parsing face", path)
				}
				newIdx := uint32(len(current.positions))
				current.positions = append(current.positions, pos)
				if hasUV {
					current.uvs = append(current.uvs, uv)
					current.hasUVs = true
				} else {
					current.uvs = append(current.uvs, mesh.Vec2{})
				}
				current.vertexMap[spec] = newIdx
				faceVerts = append(faceVerts, newIdx)
			}
			for i := 2; i < len(faceVerts); i++ {
				current.indices = append(current.indices, faceVerts[0], faceVerts[i-1], faceVerts[i])
			}
		case "o", "g":
			flush()
			current = newObjGroup(currentMaterial)
		case "usemtl":
			if len(parts) > 1 {
				currentMaterial = parts[1]
				current.material = currentMaterial
			}
		case "mtllib":
			if len(parts) > 1 {
				mtlPath := filepath.Join(dir, parts[1])
				defs, order, err := LoadMTL(mtlPath)
				if err != nil {
					return nil, err
				}
				for _, name := range order {
					if _, seen := materialDefs[name]; !seen {
						materialOrder = append(materialOrder, name)
					}
					materialDefs[name] = defs[name]
				}
			}
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, "reading obj file", path)
	}
	if len(groups) == 0 {
		return nil, errors.New("objio: no mesh data found in " + path)
	}

	asset := &RawAsset{SourceFile: path}
	for _, g := range groups {
		tm := mesh.TriMesh{Positions: g.positions, Indices: g.indices}
		if g.hasUVs {
			tm.UVs = g.uvs
		}
		asset.Meshes = append(asset.Meshes, tm)

		mat, ok := materialDefs[g.material]
		if !ok {
			mat = mesh.Material{Name: g.material}
		}
		asset.Materials = append(asset.Materials, mat)
	}
	return asset, nil
}

func parseVec3(fields []string) mesh.Vec3 {
	x, _ := strconv.ParseFloat(fields[0], 32)
	y, _ := strconv.ParseFloat(fields[1], 32)
	z, _ := strconv.ParseFloat(fields[2], 32)
	return mesh.Vec3{float32(x), float32(y), float32(z)}
}

func parseVec2(fields []string) mesh.Vec2 {
	u, _ := strconv.ParseFloat(fields[0], 32)
	v, _ := strconv.ParseFloat(fields[1], 32)
	return mesh.Vec2{float32(u), float32(v)}
}

// parseFaceVertex resolves one "v", "v/vt", or "v/vt/vn" face token against
// the file-level position/UV tables, supporting the OBJ negative-index
// convention (relative to the current end of the table).
func parseFaceVertex(spec string, positions []mesh.Vec3, uvs []mesh.Vec2) (mesh.Vec3, mesh.Vec2, bool, error) {
	parts := strings.Split(spec, "/")

	pi, err := parseOBJIndex(parts[0], len(positions))
	if err != nil {
		return mesh.Vec3{}, mesh.Vec2{}, false, err
	}
	if pi < 0 || pi >= len(positions) {
		return mesh.Vec3{}, mesh.Vec2{}, false, fmt.Errorf("objio: position index out of range in %q", spec)
	}
	pos := positions[pi]

	var uv mesh.Vec2
	hasUV := false
	if len(parts) >= 2 && parts[1] != "" {
		ui, err := parseOBJIndex(parts[1], len(uvs))
		if err != nil {
			return mesh.Vec3{}, mesh.Vec2{}, false, err
		}
		if ui < 0 || ui >= len(uvs) {
			return mesh.Vec3{}, mesh.Vec2{}, false, fmt.Errorf("objio: uv index out of range in %q", spec)
		}
		uv = uvs[ui]
		hasUV = true
	}

	return pos, uv, hasUV, nil
}

// parseOBJIndex converts a 1-based (or negative, end-relative) OBJ index
// token into a 0-based Go slice index.
func parseOBJIndex(token string, count int) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("objio: malformed index %q: %w", token, err)
	}
	if n < 0 {
		return count + n, nil
	}
	return n - 1, nil
}
