package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/whl/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.NamespaceLayout = (*Layout)(nil)

const initFile = "__init__.py"

const pkgutilShim = "# __path__ manipulation added by whl to support namespace pkgs.\n" +
	"__path__ = __import__('pkgutil').extend_path(__path__, __name__)\n"

// moduleSuffixes are the file extensions python imports as modules.
var moduleSuffixes = []string{".py", ".pyc", ".so", ".pyd"}

// Layout implements ports.NamespaceLayout on the local file system.
type Layout struct {
	walker *Walker
}

// NewLayout creates a new Layout.
func NewLayout(walker *Walker) *Layout {
	return &Layout{walker: walker}
}

// ImplicitNamespacePackages returns the directories under dir that python
// would import as implicit namespace packages: directories without an
// __init__.py that directly hold python modules or contain another package.
func (l *Layout) ImplicitNamespacePackages(dir string, ignored []string) ([]string, error) {
	namespace := make(map[string]struct{})
	standard := make(map[string]struct{})

	for d, err := range l.walker.WalkDirsBottomUp(dir) {
		if err != nil {
			return nil, err
		}

		if slices.Contains(d.Files, initFile) {
			standard[d.Path] = struct{}{}
			continue
		}
		if isIgnored(d.Path, ignored) {
			continue
		}
		if d.Path == dir {
			continue
		}

		if includesModules(d.Files) || containsPackage(d, namespace, standard) {
			namespace[d.Path] = struct{}{}
		}
	}

	out := make([]string, 0, len(namespace))
	for p := range namespace {
		out = append(out, p)
	}
	slices.Sort(out)
	return out, nil
}

// AddPkgutilNamespaceInit writes the pkgutil __path__ shim into dir.
func (l *Layout) AddPkgutilNamespaceInit(dir string) error {
	path := filepath.Join(dir, initFile)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) //nolint:gosec // path is below the install dir
	if errors.Is(err, fs.ErrExist) {
		return zerr.With(domain.ErrInitAlreadyExists, "path", path)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create namespace init"), "path", path)
	}

	if _, err := f.WriteString(pkgutilShim); err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, "failed to write namespace init"), "path", path)
	}
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close namespace init"), "path", path)
	}
	return nil
}

// isIgnored reports whether path is one of ignored or lies below one of them.
func isIgnored(path string, ignored []string) bool {
	for _, ig := range ignored {
		ig = filepath.Clean(ig)
		if path == ig || strings.HasPrefix(path, ig+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func includesModules(files []string) bool {
	for _, f := range files {
		if slices.Contains(moduleSuffixes, filepath.Ext(f)) {
			return true
		}
	}
	return false
}

func containsPackage(d Dir, namespace, standard map[string]struct{}) bool {
	for _, name := range d.Dirs {
		child := filepath.Join(d.Path, name)
		if _, ok := namespace[child]; ok {
			return true
		}
		if _, ok := standard[child]; ok {
			return true
		}
	}
	return false
}
