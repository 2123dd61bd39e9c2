package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanox-oy/obj-overlap-cleaner/mesh"
)

func hqModel(t *testing.T) *mesh.Model {
	t.Helper()
	tri := mesh.TriMesh{
		Positions: []mesh.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	m, err := mesh.LoadModel("hq.obj", []mesh.TriMesh{tri}, []mesh.Material{{Name: "hq"}}, false, true)
	require.NoError(t, err)
	return m
}

func nqModel(t *testing.T, positions []mesh.Vec3, indices []uint32) *mesh.Model {
	t.Helper()
	tri := mesh.TriMesh{Positions: positions, Indices: indices}
	m, err := mesh.LoadModel("nq.obj", []mesh.TriMesh{tri}, []mesh.Material{{Name: "nq"}}, true, false)
	require.NoError(t, err)
	return m
}

func TestProcessHQAnnotatesOverlappingNQVertex(t *testing.T) {
	hq := hqModel(t)
	nq := nqModel(t, []mesh.Vec3{{0.1, 0.1, 0}, {5, 5, 5}, {5, 5, 6}}, []uint32{0, 1, 2})
	pool := NewSharedPool([]*mesh.Model{nq})

	engine := NewEngine()
	ref, err := engine.ProcessHQ(hq, pool)

	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "hq.obj", ref.SourceFile)
	assert.Equal(t, uint32(1), ref.TextureDownscaleFactor)

	drained := Drain(pool)
	require.Len(t, drained, 1)
	assert.True(t, drained[0].Meshes[0].Modified())
}

func TestProcessHQSkipsDisjointAABB(t *testing.T) {
	hq := hqModel(t)
	nq := nqModel(t, []mesh.Vec3{{100, 100, 100}, {101, 100, 100}, {100, 101, 100}}, []uint32{0, 1, 2})
	pool := NewSharedPool([]*mesh.Model{nq})

	engine := NewEngine()
	_, err := engine.ProcessHQ(hq, pool)
	require.NoError(t, err)

	drained := Drain(pool)
	assert.False(t, drained[0].Meshes[0].Modified())
}

func TestNewSharedPoolAndDrainRoundTrip(t *testing.T) {
	nq := nqModel(t, []mesh.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []uint32{0, 1, 2})
	pool := NewSharedPool([]*mesh.Model{nq})
	drained := Drain(pool)
	require.Len(t, drained, 1)
	assert.Same(t, nq, drained[0])
}
