// Package wheel reads and unpacks python wheel archives.
package wheel

import (
	"bufio"
	"errors"
	"io"
	"net/textproto"
	"path"
	"slices"
	"strings"

	"github.com/go-ini/ini"
	"github.com/klauspost/compress/zip"
	"go.trai.ch/whl/internal/adapters/fs"
	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/whl/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.WheelArchive = (*Archive)(nil)

const (
	metadataFile    = "METADATA"
	entryPointsFile = "entry_points.txt"
	consoleScripts  = "console_scripts"
)

// Archive implements ports.WheelArchive for wheels on the local file system.
type Archive struct {
	hasher *fs.Hasher
}

// NewArchive creates a new Archive.
func NewArchive(hasher *fs.Hasher) *Archive {
	return &Archive{hasher: hasher}
}

// Fingerprint returns the xxhash of the wheel file.
func (a *Archive) Fingerprint(path string) (uint64, error) {
	return a.hasher.ComputeFileHash(path)
}

// Inspect reads METADATA and the console scripts of entry_points.txt.
func (a *Archive) Inspect(wheelPath string) (*domain.Distribution, error) {
	r, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open wheel"), "path", wheelPath)
	}
	defer r.Close() //nolint:errcheck // read-only archive

	distInfo, err := findDistInfo(r.File)
	if err != nil {
		return nil, zerr.With(err, "path", wheelPath)
	}

	dist := &domain.Distribution{DistInfo: distInfo}
	files := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		files[f.Name] = f
	}

	if err := readMetadata(files[distInfo+"/"+metadataFile], dist); err != nil {
		return nil, zerr.With(err, "path", wheelPath)
	}

	if f, ok := files[distInfo+"/"+entryPointsFile]; ok {
		eps, err := readEntryPoints(f)
		if err != nil {
			return nil, zerr.With(err, "path", wheelPath)
		}
		dist.EntryPoints = eps
	}

	return dist, nil
}

// findDistInfo returns the single top-level *.dist-info directory holding METADATA.
func findDistInfo(files []*zip.File) (string, error) {
	var found []string
	for _, f := range files {
		dir, name := path.Split(f.Name)
		dir = strings.TrimSuffix(dir, "/")
		if name != metadataFile || strings.Contains(dir, "/") || !strings.HasSuffix(dir, ".dist-info") {
			continue
		}
		found = append(found, dir)
	}

	switch len(found) {
	case 0:
		return "", zerr.With(domain.ErrInvalidWheel, "reason", "no .dist-info/METADATA")
	case 1:
		return found[0], nil
	default:
		return "", zerr.With(zerr.With(domain.ErrInvalidWheel, "reason", "multiple .dist-info directories"),
			"dist_info", strings.Join(found, ","))
	}
}

// readMetadata parses the RFC 822 style header block of METADATA.
func readMetadata(f *zip.File, dist *domain.Distribution) error {
	rc, err := f.Open()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open METADATA"), "entry", f.Name)
	}
	defer rc.Close() //nolint:errcheck // read-only entry

	header, err := textproto.NewReader(bufio.NewReader(rc)).ReadMIMEHeader()
	if err != nil && !errors.Is(err, io.EOF) {
		return zerr.With(zerr.Wrap(err, "failed to parse METADATA"), "entry", f.Name)
	}

	name := header.Get("Name")
	if name == "" {
		return zerr.With(zerr.With(domain.ErrInvalidWheel, "reason", "METADATA has no Name"), "entry", f.Name)
	}
	dist.Name = domain.CanonicalName(name)
	dist.Version = header.Get("Version")
	dist.RequiresDist = header.Values("Requires-Dist")
	return nil
}

// readEntryPoints returns the console_scripts section sorted by name.
func readEntryPoints(f *zip.File) ([]domain.EntryPoint, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open entry points"), "entry", f.Name)
	}
	defer rc.Close() //nolint:errcheck // read-only entry

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read entry points"), "entry", f.Name)
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters:  "=",
		IgnoreInlineComment: true,
	}, data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse entry points"), "entry", f.Name)
	}

	section, err := cfg.GetSection(consoleScripts)
	if err != nil {
		return nil, nil
	}

	eps := make([]domain.EntryPoint, 0, len(section.Keys()))
	for _, key := range section.Keys() {
		eps = append(eps, parseEntryPoint(key.Name(), key.Value()))
	}
	slices.SortFunc(eps, func(a, b domain.EntryPoint) int {
		return strings.Compare(a.Name, b.Name)
	})
	return eps, nil
}

// parseEntryPoint splits "module:attr [extras]".
func parseEntryPoint(name, value string) domain.EntryPoint {
	if i := strings.Index(value, "["); i >= 0 {
		value = value[:i]
	}
	module, attr, _ := strings.Cut(value, ":")
	return domain.EntryPoint{
		Name:      strings.TrimSpace(name),
		Module:    strings.TrimSpace(module),
		Attribute: strings.TrimSpace(attr),
	}
}
