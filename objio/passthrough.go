package objio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/log"

	"github.com/sanox-oy/obj-overlap-cleaner/mesh"
)

// WritePassthrough copies sourceFile byte-for-byte into destDir, along with
// its sibling .mtl if one exists (the material file is optional; a legal
// passthrough asset may carry none), then runs the texture-copy procedure at
// the given downscale factor for every material. HQ passthroughs pass
// factor 1 (verbatim); NQ passthroughs pass factor 2.
func WritePassthrough(destDir, sourceFile string, materials []mesh.Material, factor uint32) error {
	base := strings.TrimSuffix(filepath.Base(sourceFile), filepath.Ext(sourceFile))
	srcDir := filepath.Dir(sourceFile)

	if err := copyFile(sourceFile, filepath.Join(destDir, filepath.Base(sourceFile))); err != nil {
		return err
	}

	srcMtl := filepath.Join(srcDir, base+".mtl")
	if _, err := os.Stat(srcMtl); err == nil {
		if err := copyFile(srcMtl, filepath.Join(destDir, base+".mtl")); err != nil {
			return err
		}
	}

	log.Debug.Printf("objio: passthrough %s (downscale factor %d)", sourceFile, factor)
	return copyTexturesForMaterials(destDir, materials, factor)
}
