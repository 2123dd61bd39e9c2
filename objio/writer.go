package objio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/sanox-oy/obj-overlap-cleaner/mesh"
)

// carvedTextureDownscale is the factor WriteCarved's texture-copy pass
// resamples at; carved output always downsamples (the NQ tier is never
// emitted at source resolution once it has been touched).
const carvedTextureDownscale = 2

// WriteCarved emits m's geometry as a single .obj file plus a sibling .mtl
// under destDir, named after the model's source file. Positions are
// written at full (%.15f) precision; faces use v/vt indexing (no normal
// index), 1-based and aggregated across meshes by prefix-summed vertex
// count.
func WriteCarved(destDir string, m *mesh.Model) error {
	base := strings.TrimSuffix(filepath.Base(m.SourceFile), filepath.Ext(m.SourceFile))
	objPath := filepath.Join(destDir, base+".obj")
	mtlPath := filepath.Join(destDir, base+".mtl")
	mtlName := filepath.Base(mtlPath)

	if err := writeMTL(mtlPath, m.Materials()); err != nil {
		return err
	}

	f, err := os.Create(objPath)
	if err != nil {
		return errors.E(err, "writing obj file", objPath)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# generated by obj-overlap-cleaner")
	fmt.Fprintf(w, "mtllib %s\n", mtlName)

	for _, mc := range m.Meshes {
		for _, p := range mc.Tri.Positions {
			fmt.Fprintf(w, "v %.15f %.15f %.15f\n", p[0], p[1], p[2])
		}
	}
	for _, mc := range m.Meshes {
		for _, uv := range mc.Tri.UVs {
			fmt.Fprintf(w, "vt %.15f %.15f\n", uv[0], uv[1])
		}
	}

	vertexOffset := 0
	uvOffset := 0
	for _, mc := range m.Meshes {
		fmt.Fprintln(w, "g default")
		if mc.Material.Name != "" {
			fmt.Fprintf(w, "usemtl %s\n", mc.Material.Name)
		}
		hasUVs := len(mc.Tri.UVs) > 0
		for t := 0; t+2 < len(mc.Tri.Indices); t += 3 {
			writeFaceLine(w, mc.Tri.Indices[t:t+3], vertexOffset, uvOffset, hasUVs)
		}
		vertexOffset += len(mc.Tri.Positions)
		if hasUVs {
			uvOffset += len(mc.Tri.UVs)
		}
	}

	if err := w.Flush(); err != nil {
		return errors.E(err, "writing obj file", objPath)
	}

	return copyTexturesForMaterials(destDir, m.Materials(), carvedTextureDownscale)
}

func writeFaceLine(w *bufio.Writer, tri []uint32, vertexOffset, uvOffset int, hasUVs bool) {
	idx := [3]uint32{
		tri[0] + 1 + uint32(vertexOffset),
		tri[1] + 1 + uint32(vertexOffset),
		tri[2] + 1 + uint32(vertexOffset),
	}
	if !hasUVs {
		fmt.Fprintf(w, "f %d %d %d\n", idx[0], idx[1], idx[2])
		return
	}
	uvIdx := [3]uint32{
		tri[0] + 1 + uint32(uvOffset),
		tri[1] + 1 + uint32(uvOffset),
		tri[2] + 1 + uint32(uvOffset),
	}
	fmt.Fprintf(w, "f %d/%d %d/%d %d/%d\n", idx[0], uvIdx[0], idx[1], uvIdx[1], idx[2], uvIdx[2])
}

func writeMTL(path string, mats []mesh.Material) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.E(err, "writing mtl file", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, mat := range mats {
		fmt.Fprintf(w, "newmtl %s\n", mat.Name)
		if mat.Ambient != nil {
			fmt.Fprintf(w, "Ka %g %g %g\n", mat.Ambient[0], mat.Ambient[1], mat.Ambient[2])
		}
		if mat.Diffuse != nil {
			fmt.Fprintf(w, "Kd %g %g %g\n", mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2])
		}
		if mat.Dissolve != nil {
			fmt.Fprintf(w, "d %g\n", *mat.Dissolve)
		}
		if mat.Shininess != nil {
			fmt.Fprintf(w, "Ns %g\n", *mat.Shininess)
		}
		if mat.Illum != nil {
			fmt.Fprintf(w, "illum %d\n", *mat.Illum)
		}
		if mat.DiffuseTexture != "" {
			fmt.Fprintf(w, "map_Kd %s\n", filepath.Base(mat.DiffuseTexture))
		}
	}
	if err := w.Flush(); err != nil {
		return errors.E(err, "writing mtl file", path)
	}
	log.Debug.Printf("objio: wrote material file %s (%d materials)", path, len(mats))
	return nil
}
