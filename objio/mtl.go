package objio

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"

	"github.com/sanox-oy/obj-overlap-cleaner/mesh"
)

// LoadMTL parses a wavefront material file, returning its materials keyed
// by name and the order they were declared in (the source order the output
// writer must preserve).
func LoadMTL(path string) (map[string]mesh.Material, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.E(err, "opening mtl file", path)
	}
	defer f.Close()

	result := make(map[string]mesh.Material)
	var order []string
	var current *mesh.Material
	dir := filepath.Dir(path)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)

		switch parts[0] {
		case "newmtl":
			if len(parts) > 1 {
				m := mesh.Material{Name: parts[1]}
				current = &m
				order = append(order, parts[1])
				result[parts[1]] = *current
			}
		case "Ka":
			if current != nil && len(parts) >= 4 {
				c := parseColor(parts[1:4])
				current.Ambient = &c
			}
		case "Kd":
			if current != nil && len(parts) >= 4 {
				c := parseColor(parts[1:4])
				current.Diffuse = &c
			}
		case "Ks":
			if current != nil && len(parts) >= 4 {
				c := parseColor(parts[1:4])
				current.Specular = &c
			}
		case "d":
			if current != nil && len(parts) >= 2 {
				v, _ := strconv.ParseFloat(parts[1], 32)
				f32 := float32(v)
				current.Dissolve = &f32
			}
		case "Ns":
			if current != nil && len(parts) >= 2 {
				v, _ := strconv.ParseFloat(parts[1], 32)
				f32 := float32(v)
				current.Shininess = &f32
			}
		case "illum":
			if current != nil && len(parts) >= 2 {
				n, _ := strconv.Atoi(parts[1])
				current.Illum = &n
			}
		case "map_Kd":
			if current != nil && len(parts) > 1 {
				current.DiffuseTexture = filepath.Join(dir, parts[len(parts)-1])
			}
		case "map_Ka":
			if current != nil && len(parts) > 1 {
				current.AmbientTexture = filepath.Join(dir, parts[len(parts)-1])
			}
		case "map_d":
			if current != nil && len(parts) > 1 {
				current.DissolveTexture = filepath.Join(dir, parts[len(parts)-1])
			}
		case "map_Ks":
			if current != nil && len(parts) > 1 {
				current.SpecularTexture = filepath.Join(dir, parts[len(parts)-1])
			}
		case "map_Bump", "norm", "bump":
			if current != nil && len(parts) > 1 {
				current.NormalTexture = filepath.Join(dir, parts[len(parts)-1])
			}
		case "map_Ns":
			if current != nil && len(parts) > 1 {
				current.ShininessTexture = filepath.Join(dir, parts[len(parts)-1])
			}
		}
		if current != nil {
			result[current.Name] = *current
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.E(err, "reading mtl file", path)
	}

	return result, order, nil
}

func parseColor(fields []string) [3]float32 {
	r, _ := strconv.ParseFloat(fields[0], 32)
	g, _ := strconv.ParseFloat(fields[1], 32)
	b, _ := strconv.ParseFloat(fields[2], 32)
	return [3]float32{float32(r), float32(g), float32(b)}
}
