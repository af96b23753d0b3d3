package domain

// EntryPoint is a console script declared by a wheel.
type EntryPoint struct {
	Name      string `json:"name"`
	Module    string `json:"module"`
	Attribute string `json:"attribute"`
}

// Distribution is the dist-info metadata read from a wheel archive.
type Distribution struct {
	// Name is the canonical project name.
	Name string
	// Version is the version string exactly as declared in METADATA.
	Version string
	// RequiresDist holds the raw Requires-Dist values.
	RequiresDist []string
	// EntryPoints holds the console_scripts, sorted by name.
	EntryPoints []EntryPoint
	// DistInfo is the archive directory holding the metadata, e.g. "foo-1.0.dist-info".
	DistInfo string
}

// DepSet is the dependency set of a wheel, split into dependencies common to
// every target platform and those selected per platform.
type DepSet struct {
	Deps       []string
	ByPlatform map[string][]string
}

// WheelMetadata is the document written to metadata.json for the build-rule layer.
type WheelMetadata struct {
	Name           string              `json:"name"`
	Version        string              `json:"version"`
	Deps           []string            `json:"deps"`
	DepsByPlatform map[string][]string `json:"deps_by_platform"`
	EntryPoints    []EntryPoint        `json:"entry_points"`
}

// NewWheelMetadata assembles the metadata document. Nil collections are
// replaced by empty ones so that the JSON never contains null.
func NewWheelMetadata(dist *Distribution, deps DepSet) WheelMetadata {
	m := WheelMetadata{
		Name:           dist.Name,
		Version:        dist.Version,
		Deps:           deps.Deps,
		DepsByPlatform: deps.ByPlatform,
		EntryPoints:    dist.EntryPoints,
	}
	if m.Deps == nil {
		m.Deps = []string{}
	}
	if m.DepsByPlatform == nil {
		m.DepsByPlatform = map[string][]string{}
	}
	if m.EntryPoints == nil {
		m.EntryPoints = []EntryPoint{}
	}
	return m
}

// WheelFile is the document written to whl_file.json after a fetch.
type WheelFile struct {
	Path string `json:"whl_file"`
}
