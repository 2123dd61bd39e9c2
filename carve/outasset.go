// Package carve classifies a carved NQ model into the record the asset
// writer consumes: dropped, passed through verbatim, or carved and
// re-emitted.
package carve

import "github.com/sanox-oy/obj-overlap-cleaner/mesh"

// passthroughDownscale is the texture downscale factor NQ passthroughs use;
// HQ passthroughs (emitted directly by the overlap stage) use factor 1.
const passthroughDownscale = 2

// ModelReference names a source file to copy or resample verbatim, plus the
// materials whose textures the writer must enumerate.
type ModelReference struct {
	SourceFile             string
	Materials              []mesh.Material
	TextureDownscaleFactor uint32
}

// OutAsset is either a Carved model to re-emit or a Passthrough reference to
// copy; both fields nil means the asset was dropped.
type OutAsset struct {
	Carved      *mesh.Model
	Passthrough *ModelReference
}

// ReferenceFromModel builds a ModelReference for m at the given downscale
// factor.
func ReferenceFromModel(m *mesh.Model, factor uint32) *ModelReference {
	return &ModelReference{
		SourceFile:             m.SourceFile,
		Materials:              m.Materials(),
		TextureDownscaleFactor: factor,
	}
}

// Process runs the mark-then-delete carve on m and classifies the result:
// fully covered models are dropped (nil, nil); untouched models pass
// through with a downscale factor of 2; partially covered models are
// carved and re-emitted.
func Process(m *mesh.Model) *OutAsset {
	m.MarkVerticesToDelete()

	if m.ToBeDeleted() {
		return &OutAsset{}
	}
	if !m.Modified() {
		return &OutAsset{Passthrough: ReferenceFromModel(m, passthroughDownscale)}
	}

	m.DoDeleteVertices()
	return &OutAsset{Carved: m}
}
