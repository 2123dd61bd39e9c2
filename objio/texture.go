package objio

import (
	"io"
	"os"
	"path/filepath"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/sanox-oy/obj-overlap-cleaner/mesh"
)

// copyTexturesForMaterials walks every distinct texture path referenced by
// mats and either copies it verbatim (factor == 1) or resamples it down by
// factor into destDir. Destinations that already exist are left untouched.
func copyTexturesForMaterials(destDir string, mats []mesh.Material, factor uint32) error {
	seen := make(map[string]struct{})
	for _, mat := range mats {
		for _, tex := range mat.Textures() {
			if _, ok := seen[tex]; ok {
				continue
			}
			seen[tex] = struct{}{}
			if err := emitTexture(destDir, tex, factor); err != nil {
				return err
			}
		}
	}
	return nil
}

func emitTexture(destDir, srcPath string, factor uint32) error {
	dest := filepath.Join(destDir, filepath.Base(srcPath))
	if _, err := os.Stat(dest); err == nil {
		log.Debug.Printf("objio: texture %s already present, skipping", dest)
		return nil
	}

	if factor <= 1 {
		return copyFile(srcPath, dest)
	}
	return resampleTexture(srcPath, dest, factor)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.E(err, "reading texture", src)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return errors.E(err, "writing texture", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.E(err, "copying texture", src)
	}
	log.Debug.Printf("objio: copied texture %s -> %s", src, dest)
	return nil
}
