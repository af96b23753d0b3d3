package app

import (
	"encoding/json"

	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/zerr"
)

// structuredArg is the envelope the build-rule layer wraps JSON flag values in.
type structuredArg[T any] struct {
	Arg *T `json:"arg"`
}

// DeserializeStructuredArg decodes a flag value of the form {"arg": <value>}.
// An empty raw string yields the zero value.
func DeserializeStructuredArg[T any](name, raw string) (T, error) {
	var zero T
	if raw == "" {
		return zero, nil
	}

	var envelope structuredArg[T]
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return zero, zerr.With(zerr.With(zerr.Wrap(err, domain.ErrInvalidStructuredArg.Error()), "flag", name), "value", raw)
	}
	if envelope.Arg == nil {
		return zero, zerr.With(zerr.With(domain.ErrInvalidStructuredArg, "flag", name), "value", raw)
	}
	return *envelope.Arg, nil
}

// PlatformsFromArgs expands the repeated --platform values into a
// deduplicated, sorted platform set. No tags yields no platforms.
func PlatformsFromArgs(tags []string, host domain.Host) ([]domain.Platform, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	platforms, err := domain.ParsePlatforms(tags, host)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to parse --platform")
	}
	return platforms, nil
}
