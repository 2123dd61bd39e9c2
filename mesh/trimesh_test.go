package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriMeshValidate(t *testing.T) {
	tests := []struct {
		name    string
		tri     TriMesh
		wantErr bool
	}{
		{
			name: "valid",
			tri: TriMesh{
				Positions: []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
				Indices:   []uint32{0, 1, 2},
			},
		},
		{
			name: "indices not multiple of 3",
			tri: TriMesh{
				Positions: []Vec3{{0, 0, 0}, {1, 0, 0}},
				Indices:   []uint32{0, 1},
			},
			wantErr: true,
		},
		{
			name: "uv count mismatch",
			tri: TriMesh{
				Positions: []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
				UVs:       []Vec2{{0, 0}},
				Indices:   []uint32{0, 1, 2},
			},
			wantErr: true,
		},
		{
			name: "index out of range",
			tri: TriMesh{
				Positions: []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
				Indices:   []uint32{0, 1, 5},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tri.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMaterialTextures(t *testing.T) {
	mat := Material{
		DiffuseTexture: "diffuse.png",
		NormalTexture:  "normal.png",
	}
	assert.Equal(t, []string{"diffuse.png", "normal.png"}, mat.Textures())

	empty := Material{}
	assert.Empty(t, empty.Textures())
}
