package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanOBJDirCaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.obj", "")
	writeFile(t, dir, "b.OBJ", "")
	writeFile(t, dir, "c.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.obj"), 0o755))

	got, err := scanOBJDir(dir)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestScanOBJDirEmptyDirectoryIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	got, err := scanOBJDir(dir)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestRunCarvesCoveredGeometryAndPassesThroughHQ is an end-to-end run of all
// three stages: one NQ quad overlapping an HQ triangle goes through the
// carve path (boundary retention keeps all four of its vertices, since every
// triangle keeps an uncovered corner), and the HQ asset is emitted as a
// verbatim passthrough.
func TestRunCarvesCoveredGeometryAndPassesThroughHQ(t *testing.T) {
	nqDir := t.TempDir()
	hqDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	// NQ quad: (0,0,0) (1,0,0) (1,1,0) (0,1,0), mean edge length
	// (4+2*sqrt(2))/6 ~= 1.14, so the overlap threshold is ~= 4.55. The HQ
	// triangle covers the quad's corners (0,0,0), (1,0,0) and (0,1,0);
	// (1,1,0) lies outside its dilated footprint.
	writeFile(t, nqDir, "floor.obj", `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3
f 1 3 4
`)

	writeFile(t, hqDir, "detail.obj", `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)

	driver := NewDriver(nqDir, []string{hqDir}, outDir)
	require.NoError(t, driver.Run())

	assert.FileExists(t, filepath.Join(outDir, "floor.obj"))
	assert.FileExists(t, filepath.Join(outDir, "floor.mtl"))
	assert.FileExists(t, filepath.Join(outDir, "detail.obj"))
}

func TestRunWithEmptyNQDirectoryProducesNoOutput(t *testing.T) {
	nqDir := t.TempDir()
	hqDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	driver := NewDriver(nqDir, []string{hqDir}, outDir)
	require.NoError(t, driver.Run())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
