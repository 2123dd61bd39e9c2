package objio

import (
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"golang.org/x/image/draw"
)

// resampleTexture decodes src, downsamples it to (w/factor, h/factor) using
// bilinear filtering — the Go ecosystem's stand-in for the "triangle
// filter" resample the asset writer's contract calls for — and saves the
// result to dest as PNG.
func resampleTexture(src, dest string, factor uint32) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.E(err, "reading texture", src)
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return errors.E(err, "decoding texture", src)
	}

	bounds := img.Bounds()
	w := bounds.Dx() / int(factor)
	if w < 1 {
		w = 1
	}
	h := bounds.Dy() / int(factor)
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	out, err := os.Create(dest)
	if err != nil {
		return errors.E(err, "writing texture", dest)
	}
	defer out.Close()

	if err := png.Encode(out, dst); err != nil {
		return errors.E(err, "encoding texture", dest)
	}
	log.Debug.Printf("objio: resampled texture %s -> %s (%dx%d, factor %d)", src, dest, w, h, factor)
	return nil
}
