// Package deps computes which dependencies of a wheel apply to which target
// platforms.
package deps

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/whl/internal/engine/pep508"
	"go.trai.ch/zerr"
)

var (
	osVariables      = []string{"os_name", "sys_platform", "platform_system"}
	archVariables    = []string{"platform_machine"}
	versionVariables = []string{"python_version", "python_full_version", "implementation_version", "platform_version"}
)

type set = map[string]struct{}

// Deps accumulates the dependency selection of a single wheel.
type Deps struct {
	name      string
	host      domain.Host
	platforms []domain.Platform
	versions  map[domain.Version]struct{}
	// defaultVersion is the python version whose dependencies also populate
	// the version-less select keys. Unset unless several versions are targeted.
	defaultVersion domain.Version

	common set
	sel    map[domain.Platform]set
}

// New evaluates requiresDist for the wheel called name.
//
// extras are the extras requested by the user; an empty list requests none.
// With no target platforms every marker is evaluated against the host.
func New(name string, requiresDist, extras []string, platforms []domain.Platform, host domain.Host) (*Deps, error) {
	d := &Deps{
		name:      domain.DependencyName(name),
		host:      host,
		platforms: platforms,
		versions:  make(map[domain.Version]struct{}),
		common:    make(set),
		sel:       make(map[domain.Platform]set),
	}
	for _, p := range platforms {
		d.versions[p.Python] = struct{}{}
	}
	if len(d.versions) > 1 {
		if _, ok := d.versions[domain.Version{}]; ok {
			return nil, zerr.With(domain.ErrMixedPythonVersions, "platforms", fmt.Sprint(platforms))
		}
		d.defaultVersion = host.Python.MinorOnly()
	}

	reqs := make([]*pep508.Requirement, 0, len(requiresDist))
	for _, line := range requiresDist {
		req, err := pep508.ParseRequirement(line)
		if err != nil {
			return nil, zerr.With(err, "wheel", name)
		}
		reqs = append(reqs, req)
	}
	slices.SortStableFunc(reqs, func(a, b *pep508.Requirement) int {
		return strings.Compare(sortKey(a), sortKey(b))
	})

	want, err := d.resolveExtras(reqs, extras)
	if err != nil {
		return nil, err
	}
	for _, req := range reqs {
		if err := d.addRequirement(req, want); err != nil {
			return nil, zerr.With(err, "requirement", req.Name)
		}
	}
	return d, nil
}

// Build returns the sorted dependency set.
func (d *Deps) Build() domain.DepSet {
	out := domain.DepSet{
		Deps:       slices.Sorted(maps.Keys(d.common)),
		ByPlatform: make(map[string][]string, len(d.sel)),
	}
	for p, deps := range d.sel {
		if len(deps) == 0 {
			continue
		}
		out.ByPlatform[p.String()] = slices.Sorted(maps.Keys(deps))
	}
	return out
}

func sortKey(r *pep508.Requirement) string {
	return fmt.Sprintf("%s:%v", r.Name, r.Extras)
}

// resolveExtras expands the requested extras with the extras pulled in by
// self-referencing requirements such as `foo[bar] ; extra == "all"`.
func (d *Deps) resolveExtras(reqs []*pep508.Requirement, extras []string) (set, error) {
	want := make(set)
	for _, e := range extras {
		want[e] = struct{}{}
	}
	if len(want) == 0 {
		want[""] = struct{}{}
		return want, nil
	}

	var self []*pep508.Requirement
	for _, req := range reqs {
		if domain.DependencyName(req.Name) != d.name {
			continue
		}
		if req.Marker == nil {
			addAll(want, req.Extras)
			continue
		}
		self = append(self, req)
	}

	// Repeat until no self edge adds anything new so that chains of extras
	// resolve regardless of their order.
	for changed := true; changed; {
		changed = false
		for _, req := range self {
			ok, err := d.anyExtra(req.Marker, want, d.host.Platform())
			if err != nil {
				return nil, err
			}
			if ok && addAll(want, req.Extras) {
				changed = true
			}
		}
	}
	return want, nil
}

func addAll(s set, items []string) bool {
	added := false
	for _, it := range items {
		if _, ok := s[it]; !ok {
			s[it] = struct{}{}
			added = true
		}
	}
	return added
}

// anyExtra reports whether m holds on p for at least one of the extras.
func (d *Deps) anyExtra(m *pep508.Marker, extras set, p domain.Platform) (bool, error) {
	for _, extra := range slices.Sorted(maps.Keys(extras)) {
		ok, err := m.Evaluate(p.EnvMarkers(extra, d.host.Python))
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (d *Deps) addRequirement(req *pep508.Requirement, extras set) error {
	if req.Marker == nil {
		d.addCommon(req.Name)
		return nil
	}

	matchOS := req.Marker.Mentions(osVariables...)
	matchArch := req.Marker.Mentions(archVariables...)
	matchVersion := req.Marker.Mentions(versionVariables...)

	if len(d.platforms) == 0 || !(matchOS || matchArch || matchVersion) {
		ok, err := d.anyExtra(req.Marker, extras, d.host.Platform())
		if err != nil {
			return err
		}
		if ok {
			d.addCommon(req.Name)
		}
		return nil
	}

	multiVersion := d.defaultVersion.IsSet()
	for _, plat := range d.platforms {
		ok, err := d.anyExtra(req.Marker, extras, plat)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		isDefault := plat.Python.MinorOnly() == d.defaultVersion
		switch {
		case matchArch && multiVersion:
			d.addSelect(req.Name, plat)
			if isDefault {
				d.addSelect(req.Name, domain.Platform{OS: plat.OS, Arch: plat.Arch})
			}
		case matchArch:
			d.addSelect(req.Name, domain.Platform{OS: plat.OS, Arch: plat.Arch})
		case matchOS && multiVersion:
			d.addSelect(req.Name, domain.Platform{OS: plat.OS, Python: plat.Python})
			if isDefault {
				d.addSelect(req.Name, domain.Platform{OS: plat.OS})
			}
		case matchOS:
			d.addSelect(req.Name, domain.Platform{OS: plat.OS})
		case multiVersion:
			d.addSelect(req.Name, domain.Platform{Python: plat.Python})
			if isDefault {
				d.addSelect(req.Name, domain.Platform{})
			}
		default:
			d.addCommon(req.Name)
		}
	}

	d.maybePromote(domain.DependencyName(req.Name))
	return nil
}

// addCommon adds dep to the dependencies of every platform and drops it from
// the per-platform selection.
func (d *Deps) addCommon(dep string) {
	dep = domain.DependencyName(dep)
	if dep == d.name {
		return
	}
	d.common[dep] = struct{}{}
	for p, deps := range d.sel {
		delete(deps, dep)
		if len(deps) == 0 {
			delete(d.sel, p)
		}
	}
}

// addSelect adds dep to platform and to every more specific platform already
// selected. A newly selected platform inherits the deps of every less
// specific selected platform it specializes.
func (d *Deps) addSelect(dep string, platform domain.Platform) {
	dep = domain.DependencyName(dep)
	if dep == d.name {
		return
	}
	if _, ok := d.common[dep]; ok {
		return
	}

	deps, ok := d.sel[platform]
	if !ok {
		deps = make(set)
		d.sel[platform] = deps
	}
	deps[dep] = struct{}{}

	for p := range platform.Specializations() {
		if existing, ok := d.sel[p]; ok {
			existing[dep] = struct{}{}
		}
	}

	if len(deps) != 1 {
		return
	}
	for p, other := range d.sel {
		if p == platform || !specializes(platform, p) {
			continue
		}
		for o := range other {
			deps[o] = struct{}{}
		}
	}
}

// specializes reports whether p is one of the specializations of general.
func specializes(p, general domain.Platform) bool {
	for s := range general.Specializations() {
		if s == p {
			return true
		}
	}
	return false
}

// maybePromote moves dep to the common set when every targeted python
// version selects it.
func (d *Deps) maybePromote(dep string) {
	if len(d.versions) < 2 {
		return
	}
	keys := []domain.Platform{{}}
	for v := range d.versions {
		keys = append(keys, domain.Platform{Python: v})
	}
	for _, k := range keys {
		deps, ok := d.sel[k]
		if !ok {
			return
		}
		if _, ok := deps[dep]; !ok {
			return
		}
	}

	d.common[dep] = struct{}{}
	for _, k := range keys {
		delete(d.sel[k], dep)
		if len(d.sel[k]) == 0 {
			delete(d.sel, k)
		}
	}
}
