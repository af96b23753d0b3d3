package wheel

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/zip"
	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Install scheme directories, relative to the extraction root.
const (
	SitePackagesDir = "site-packages"
	IncludeDir      = "include"
	BinDir          = "bin"
	DataDir         = "data"
)

// schemes maps the subdirectories of <dist>.data onto the install scheme.
var schemes = map[string]string{
	"purelib": SitePackagesDir,
	"platlib": SitePackagesDir,
	"headers": IncludeDir,
	"scripts": BinDir,
	"data":    DataDir,
}

// entry is an archive member together with its destination on disk.
type entry struct {
	file *zip.File
	out  string
	mode os.FileMode
}

// Extract unpacks the wheel into dest. Regular entries land in site-packages,
// entries under <dist>.data are routed by their scheme directory. Every entry
// is validated before the first file is written.
func (a *Archive) Extract(wheelPath, dest string, excludes []string) error {
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			return zerr.With(zerr.Wrap(doublestar.ErrBadPattern, "invalid exclude pattern"), "pattern", pattern)
		}
	}

	r, err := zip.OpenReader(wheelPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open wheel"), "path", wheelPath)
	}
	defer r.Close() //nolint:errcheck // read-only archive

	distInfo, err := findDistInfo(r.File)
	if err != nil {
		return zerr.With(err, "path", wheelPath)
	}
	dataDir := strings.TrimSuffix(distInfo, ".dist-info") + ".data"

	entries := make([]entry, 0, len(r.File))
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		if !strings.HasPrefix(f.Name, distInfo+"/") && excluded(f.Name, excludes) {
			continue
		}

		rel, mode, err := target(f, dataDir)
		if err != nil {
			return zerr.With(err, "path", wheelPath)
		}
		local := filepath.FromSlash(rel)
		if !filepath.IsLocal(local) {
			return zerr.With(zerr.With(domain.ErrUnsafeArchivePath, "entry", f.Name), "path", wheelPath)
		}
		entries = append(entries, entry{file: f, out: filepath.Join(dest, local), mode: mode})
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for _, e := range entries {
		g.Go(func() error {
			return writeEntry(e)
		})
	}
	if err := g.Wait(); err != nil {
		return zerr.With(err, "path", wheelPath)
	}
	return nil
}

func excluded(name string, excludes []string) bool {
	for _, pattern := range excludes {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// target returns the slash separated destination of f relative to the
// extraction root and the file mode to create it with.
func target(f *zip.File, dataDir string) (string, os.FileMode, error) {
	mode := os.FileMode(0o644)
	if f.Mode()&0o111 != 0 {
		mode = 0o755
	}

	rest, ok := strings.CutPrefix(f.Name, dataDir+"/")
	if !ok {
		return path.Join(SitePackagesDir, f.Name), mode, nil
	}

	scheme, rel, _ := strings.Cut(rest, "/")
	dir, ok := schemes[scheme]
	if !ok || rel == "" {
		return "", 0, zerr.With(zerr.With(domain.ErrInvalidWheel, "reason", "unknown install scheme"), "entry", f.Name)
	}
	if dir == BinDir {
		mode = 0o755
	}
	return path.Join(dir, rel), mode, nil
}

func writeEntry(e entry) error {
	f, out := e.file, e.out
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil { //nolint:gosec // installed tree is world readable
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", filepath.Dir(out))
	}

	rc, err := f.Open()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open archive entry"), "entry", f.Name)
	}
	defer rc.Close() //nolint:errcheck // read-only entry

	w, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, e.mode) //nolint:gosec // path checked in Extract
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create file"), "path", out)
	}
	if _, err := io.Copy(w, rc); err != nil { //nolint:gosec // wheel size is bounded by pip
		_ = w.Close()
		return zerr.With(zerr.Wrap(err, "failed to extract archive entry"), "entry", f.Name)
	}
	if err := w.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close file"), "path", out)
	}
	return nil
}
