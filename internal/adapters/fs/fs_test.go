package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/whl/internal/adapters/fs"
)

// touch creates the file at root/rel together with its parent directories.
func touch(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
}

func TestWalker_WalkDirsBottomUp(t *testing.T) {
	// tmp/
	//   a/
	//     b/
	//       x.py
	//   c/
	//   README.md
	tmpDir := t.TempDir()
	touch(t, tmpDir, "a/b/x.py")
	touch(t, tmpDir, "README.md")
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "c"), 0o750))

	var order []string
	dirs := make(map[string]fs.Dir)
	for d, err := range fs.NewWalker().WalkDirsBottomUp(tmpDir) {
		require.NoError(t, err)
		rel, err := filepath.Rel(tmpDir, d.Path)
		require.NoError(t, err)
		order = append(order, filepath.ToSlash(rel))
		dirs[filepath.ToSlash(rel)] = d
	}

	assert.Equal(t, []string{"a/b", "a", "c", "."}, order)
	assert.Equal(t, []string{"x.py"}, dirs["a/b"].Files)
	assert.Equal(t, []string{"b"}, dirs["a"].Dirs)
	assert.Equal(t, []string{"a", "c"}, dirs["."].Dirs)
	assert.Equal(t, []string{"README.md"}, dirs["."].Files)
}

func TestWalker_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	touch(t, tmpDir, "a/x.py")
	touch(t, tmpDir, "b/y.py")

	n := 0
	for range fs.NewWalker().WalkDirsBottomUp(tmpDir) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestWalker_MissingRoot(t *testing.T) {
	var gotErr error
	for _, err := range fs.NewWalker().WalkDirsBottomUp(filepath.Join(t.TempDir(), "missing")) {
		gotErr = err
	}
	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "failed to read directory")
}

func TestHasher_ComputeFileHash(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "foo-1.0-py3-none-any.whl")
	require.NoError(t, os.WriteFile(tmpFile, []byte("hello world"), 0o600))

	hasher := fs.NewHasher()

	hash1, err := hasher.ComputeFileHash(tmpFile)
	require.NoError(t, err)
	assert.NotZero(t, hash1)

	hash2, err := hasher.ComputeFileHash(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2, "expected deterministic hash")

	require.NoError(t, os.WriteFile(tmpFile, []byte("hello there"), 0o600))
	hash3, err := hasher.ComputeFileHash(tmpFile)
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash3)

	_, err = hasher.ComputeFileHash(filepath.Join(t.TempDir(), "missing.whl"))
	assert.ErrorContains(t, err, "failed to open file")
}
