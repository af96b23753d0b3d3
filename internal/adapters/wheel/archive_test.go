package wheel_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/whl/internal/adapters/fs"
	"go.trai.ch/whl/internal/adapters/wheel"
	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/zerr"
)

type entry struct {
	name string
	body string
	mode os.FileMode
}

const testMetadata = `Metadata-Version: 2.1
Name: Foo_Bar
Version: 1.2.0rc1
Summary: A test package
Requires-Dist: requests (>=2.0)
Requires-Dist: colorama ; sys_platform == "win32"
Requires-Dist: pytest ; extra == "test"
Provides-Extra: test

Foo Bar
=======

Requires-Dist: not-a-header
`

const testEntryPoints = `[console_scripts]
zeta = foo_bar.cli:zeta
alpha = foo_bar.cli:main [extra]

[gui_scripts]
gui = foo_bar.gui:main
`

// writeWheel creates a wheel archive in a temp directory.
func writeWheel(t *testing.T, entries ...entry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "foo_bar-1.2.0rc1-py3-none-any.whl")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		mode := e.mode
		if mode == 0 {
			mode = 0o644
		}
		hdr.SetMode(mode)
		w, err := zw.CreateHeader(hdr)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func standardWheel(t *testing.T) string {
	t.Helper()
	return writeWheel(t,
		entry{name: "foo_bar/__init__.py", body: "VERSION = '1.2.0rc1'\n"},
		entry{name: "foo_bar/cli.py", body: "def main(): pass\n"},
		entry{name: "foo_bar/tests/test_cli.py", body: "def test(): pass\n"},
		entry{name: "foo_bar-1.2.0rc1.dist-info/METADATA", body: testMetadata},
		entry{name: "foo_bar-1.2.0rc1.dist-info/entry_points.txt", body: testEntryPoints},
		entry{name: "foo_bar-1.2.0rc1.dist-info/RECORD", body: ""},
		entry{name: "foo_bar-1.2.0rc1.data/scripts/foo-tool", body: "#!python\n"},
		entry{name: "foo_bar-1.2.0rc1.data/headers/foo.h", body: "int foo;\n"},
		entry{name: "foo_bar-1.2.0rc1.data/platlib/_foo_native.so", body: "\x7fELF"},
		entry{name: "foo_bar-1.2.0rc1.data/data/share/foo.txt", body: "data\n"},
	)
}

func newArchive() *wheel.Archive {
	return wheel.NewArchive(fs.NewHasher())
}

func TestArchive_Inspect(t *testing.T) {
	dist, err := newArchive().Inspect(standardWheel(t))
	require.NoError(t, err)

	assert.Equal(t, "foo-bar", dist.Name)
	assert.Equal(t, "1.2.0rc1", dist.Version)
	assert.Equal(t, "foo_bar-1.2.0rc1.dist-info", dist.DistInfo)
	assert.Equal(t, []string{
		"requests (>=2.0)",
		`colorama ; sys_platform == "win32"`,
		`pytest ; extra == "test"`,
	}, dist.RequiresDist)
	assert.Equal(t, []domain.EntryPoint{
		{Name: "alpha", Module: "foo_bar.cli", Attribute: "main"},
		{Name: "zeta", Module: "foo_bar.cli", Attribute: "zeta"},
	}, dist.EntryPoints)
}

func TestArchive_Inspect_NoEntryPoints(t *testing.T) {
	path := writeWheel(t,
		entry{name: "foo/__init__.py"},
		entry{name: "foo-1.0.dist-info/METADATA", body: "Name: foo\nVersion: 1.0\n"},
	)

	dist, err := newArchive().Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "foo", dist.Name)
	assert.Empty(t, dist.RequiresDist)
	assert.Empty(t, dist.EntryPoints)
}

func TestArchive_Inspect_InvalidWheel(t *testing.T) {
	tests := []struct {
		name    string
		entries []entry
		reason  string
	}{
		{
			name:    "no dist-info",
			entries: []entry{{name: "foo/__init__.py"}},
			reason:  "no .dist-info/METADATA",
		},
		{
			name: "nested dist-info",
			entries: []entry{
				{name: "vendor/foo-1.0.dist-info/METADATA", body: "Name: foo\n"},
			},
			reason: "no .dist-info/METADATA",
		},
		{
			name: "two dist-info",
			entries: []entry{
				{name: "foo-1.0.dist-info/METADATA", body: "Name: foo\n"},
				{name: "bar-1.0.dist-info/METADATA", body: "Name: bar\n"},
			},
			reason: "multiple .dist-info directories",
		},
		{
			name:    "no name",
			entries: []entry{{name: "foo-1.0.dist-info/METADATA", body: "Version: 1.0\n"}},
			reason:  "METADATA has no Name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newArchive().Inspect(writeWheel(t, tt.entries...))
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidWheel.Error())

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok, "expected *zerr.Error, got %T", err)
			assert.Equal(t, tt.reason, zErr.Metadata()["reason"])
		})
	}
}

func TestArchive_Inspect_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foo-1.0-py3-none-any.whl")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o600))

	_, err := newArchive().Inspect(path)
	assert.ErrorContains(t, err, "failed to open wheel")
}

func TestArchive_Fingerprint(t *testing.T) {
	path := standardWheel(t)
	a := newArchive()

	h1, err := a.Fingerprint(path)
	require.NoError(t, err)
	h2, err := a.Fingerprint(path)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.NotZero(t, h1)
}
