package ports

import "go.trai.ch/whl/internal/core/domain"

// WheelArchive reads and unpacks wheel files.
//
//go:generate go run go.uber.org/mock/mockgen -source=wheel.go -destination=mocks/mock_wheel.go -package=mocks
type WheelArchive interface {
	// Inspect reads the dist-info metadata of the wheel at path.
	Inspect(path string) (*domain.Distribution, error)

	// Extract unpacks the wheel into dest following the install scheme layout.
	// Entries matching any of the exclude globs are skipped, except dist-info files.
	Extract(path, dest string, excludes []string) error

	// Fingerprint returns a content hash of the wheel file.
	Fingerprint(path string) (uint64, error)
}
