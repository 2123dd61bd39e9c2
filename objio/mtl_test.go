package objio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMTLParsesFieldsInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "diffuse.png", "fake-png-bytes")
	path := writeFile(t, dir, "materials.mtl", `newmtl first
Ka 0.1 0.1 0.1
Kd 0.8 0.2 0.2
Ks 1 1 1
d 0.9
Ns 32
illum 2
map_Kd diffuse.png

newmtl second
Kd 0 0 1
`)

	defs, order, err := LoadMTL(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)

	first := defs["first"]
	require.NotNil(t, first.Ambient)
	assert.Equal(t, [3]float32{0.1, 0.1, 0.1}, *first.Ambient)
	require.NotNil(t, first.Diffuse)
	assert.Equal(t, [3]float32{0.8, 0.2, 0.2}, *first.Diffuse)
	require.NotNil(t, first.Dissolve)
	assert.InDelta(t, 0.9, *first.Dissolve, 1e-6)
	require.NotNil(t, first.Shininess)
	assert.InDelta(t, 32, *first.Shininess, 1e-6)
	require.NotNil(t, first.Illum)
	assert.Equal(t, 2, *first.Illum)
	assert.Equal(t, filepath.Join(dir, "diffuse.png"), first.DiffuseTexture)

	second := defs["second"]
	require.NotNil(t, second.Diffuse)
	assert.Nil(t, second.Ambient)
}

func TestLoadMTLMissingFileErrors(t *testing.T) {
	_, _, err := LoadMTL(filepath.Join(t.TempDir(), "missing.mtl"))
	assert.Error(t, err)
}
