// Package fs provides file system adapters for walking, hashing and
// laying out python package trees.
package fs

import (
	"iter"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// Dir is one directory visited by the walker.
type Dir struct {
	// Path is the directory path, rooted at the walk root.
	Path string
	// Dirs holds the names of the subdirectories.
	Dirs []string
	// Files holds the names of everything else.
	Files []string
}

// Walker provides directory walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkDirsBottomUp yields every directory below and including root, children
// before their parent. Entries are visited in lexical order. Symlinks to
// directories are reported as files and never followed.
// The first error ends the walk.
func (w *Walker) WalkDirsBottomUp(root string) iter.Seq2[Dir, error] {
	return func(yield func(Dir, error) bool) {
		_, _ = w.walk(root, yield)
	}
}

// walk reports whether the walk should go on.
func (w *Walker) walk(path string, yield func(Dir, error) bool) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, "failed to read directory"), "path", path)
		yield(Dir{}, err)
		return false, err
	}

	dir := Dir{Path: path}
	for _, e := range entries {
		if e.IsDir() {
			dir.Dirs = append(dir.Dirs, e.Name())
			continue
		}
		dir.Files = append(dir.Files, e.Name())
	}

	for _, name := range dir.Dirs {
		if ok, err := w.walk(filepath.Join(path, name), yield); !ok {
			return false, err
		}
	}

	return yield(dir, nil), nil
}
