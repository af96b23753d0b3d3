package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/whl/internal/adapters/fs"
	"go.trai.ch/whl/internal/core/domain"
)

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestLayout_ImplicitNamespacePackages(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "foo/bar/__init__.py")
	touch(t, root, "foo/bar/biz.py")
	touch(t, root, "foo/bee/boo.py")
	touch(t, root, "foo/buu/__init__.py")
	touch(t, root, "foo/buu/bii.py")
	touch(t, root, "google/protobuf/internal/_api.so")
	touch(t, root, "docs/README.md")
	touch(t, root, "top.py")

	layout := fs.NewLayout(fs.NewWalker())
	got, err := layout.ImplicitNamespacePackages(root, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"foo",
		"foo/bee",
		"google",
		"google/protobuf",
		"google/protobuf/internal",
	}, relPaths(t, root, got))
}

func TestLayout_ImplicitNamespacePackages_Ignored(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "foo/bar/baz.py")
	touch(t, root, "bin/tool/run.py")
	touch(t, root, "bin/other.pyc")

	layout := fs.NewLayout(fs.NewWalker())
	got, err := layout.ImplicitNamespacePackages(root, []string{filepath.Join(root, "bin")})
	require.NoError(t, err)

	assert.Equal(t, []string{"foo", "foo/bar"}, relPaths(t, root, got))
}

func TestLayout_ImplicitNamespacePackages_IgnoredPrefixIsNotIgnored(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "binary/mod.py")

	layout := fs.NewLayout(fs.NewWalker())
	got, err := layout.ImplicitNamespacePackages(root, []string{filepath.Join(root, "bin")})
	require.NoError(t, err)

	assert.Equal(t, []string{"binary"}, relPaths(t, root, got))
}

func TestLayout_ImplicitNamespacePackages_Empty(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "__init__.py")
	touch(t, root, "data/file.txt")

	layout := fs.NewLayout(fs.NewWalker())
	got, err := layout.ImplicitNamespacePackages(root, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLayout_AddPkgutilNamespaceInit(t *testing.T) {
	dir := t.TempDir()
	layout := fs.NewLayout(fs.NewWalker())

	require.NoError(t, layout.AddPkgutilNamespaceInit(dir))

	content, err := os.ReadFile(filepath.Join(dir, "__init__.py"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "__path__ = __import__('pkgutil').extend_path(__path__, __name__)")

	err = layout.AddPkgutilNamespaceInit(dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInitAlreadyExists.Error())
}
