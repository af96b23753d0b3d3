// Package config provides the settings loader for whl.
package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"

	"github.com/google/shlex"
	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/whl/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the settings file looked up when --config is not given.
const DefaultFilename = "whl.yaml"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the settings file at path. A missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Settings, error) {
	settings, err := Load(path)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		l.logger.Info("no " + path + " found, using defaults")
		return domain.DefaultSettings(), nil
	}
	return settings, nil
}

// Load reads a settings file from the given path. It returns nil settings
// and no error when the file does not exist.
func Load(path string) (*domain.Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var whlfile Whlfile
	if err := yaml.Unmarshal(data, &whlfile); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	settings := domain.DefaultSettings()
	if whlfile.Python != "" {
		settings.Python = whlfile.Python
	}

	if whlfile.PythonVersion != "" {
		v, err := domain.ParseVersion(whlfile.PythonVersion)
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		settings.PythonVersion = v
	}

	if whlfile.PipArgs != "" {
		args, err := shlex.Split(whlfile.PipArgs)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to split pip_args"), "path", path)
		}
		settings.PipArgs = args
	}

	settings.Platforms = canonicalizeStrings(whlfile.Platforms)
	settings.Environment = whlfile.Environment
	return settings, nil
}

// canonicalizeStrings sorts and deduplicates strs.
func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}
	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
