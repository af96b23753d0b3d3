// Package cas records which wheel, by content hash, was extracted into an
// installation directory.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/zerr"
)

// StateFileName is the file holding the records of one installation directory.
const StateFileName = ".whl_state.json"

// Store implements ports.ExtractionStore with one flat JSON file per
// installation directory.
type Store struct {
	mu   sync.Mutex
	dirs map[string]map[string]domain.Extraction
}

// NewStore creates an empty Store. State files are read on first use.
func NewStore() *Store {
	return &Store{dirs: make(map[string]map[string]domain.Extraction)}
}

// records returns the cached records of dir. The caller holds s.mu.
func (s *Store) records(dir string) (map[string]domain.Extraction, error) {
	if recs, ok := s.dirs[dir]; ok {
		return recs, nil
	}

	recs := make(map[string]domain.Extraction)
	path := filepath.Join(dir, StateFileName)
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, "failed to read extraction state"), "path", path)
	case len(data) > 0:
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal extraction state"), "path", path)
		}
	}

	s.dirs[dir] = recs
	return recs, nil
}

func (s *Store) save(dir string, recs map[string]domain.Extraction) error {
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal extraction state")
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for extraction state"), "dir", dir)
	}

	path := filepath.Join(dir, StateFileName)
	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write extraction state"), "path", path)
	}
	return nil
}

// Get retrieves the record of wheel in dir.
func (s *Store) Get(dir, wheel string) (*domain.Extraction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.records(filepath.Clean(dir))
	if err != nil {
		return nil, err
	}
	rec, ok := recs[wheel]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Put stores rec and rewrites the state file of dir.
func (s *Store) Put(dir string, rec domain.Extraction) error {
	dir = filepath.Clean(dir)

	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.records(dir)
	if err != nil {
		return err
	}
	recs[rec.Wheel] = rec
	return s.save(dir, recs)
}
