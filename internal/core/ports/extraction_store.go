package ports

import "go.trai.ch/whl/internal/core/domain"

// ExtractionStore remembers the wheels extracted into each installation directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=extraction_store.go -destination=mocks/mock_extraction_store.go -package=mocks
type ExtractionStore interface {
	// Get returns the record of wheel in dir, or nil when there is none.
	Get(dir, wheel string) (*domain.Extraction, error)
	// Put stores rec for dir, replacing any record of the same wheel.
	Put(dir string, rec domain.Extraction) error
}
