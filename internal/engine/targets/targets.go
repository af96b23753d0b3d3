// Package targets narrows the target platforms of requirement lines down to
// the ones whose environment markers hold.
package targets

import (
	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/whl/internal/engine/pep508"
	"go.trai.ch/zerr"
)

// Resolve evaluates each requirement's marker against every one of its target
// platform tags and keeps the tags for which it holds, in input order.
// Requirements left without any tag are omitted from the result.
func Resolve(reqs map[string][]string, host domain.Host) (map[string][]string, error) {
	out := make(map[string][]string, len(reqs))
	for line, tags := range reqs {
		req, err := pep508.ParseRequirement(line)
		if err != nil {
			return nil, err
		}

		for _, tag := range tags {
			keep, err := matches(req, tag, host)
			if err != nil {
				return nil, zerr.With(err, "requirement", line)
			}
			if keep {
				out[line] = append(out[line], tag)
			}
		}
	}
	return out, nil
}

func matches(req *pep508.Requirement, tag string, host domain.Host) (bool, error) {
	platforms, err := domain.ParsePlatforms([]string{tag}, host)
	if err != nil {
		return false, err
	}
	if len(platforms) == 0 {
		return false, zerr.With(domain.ErrMalformedTag, "tag", tag)
	}
	if req.Marker == nil {
		return true, nil
	}
	return req.Marker.Evaluate(platforms[0].EnvMarkers("", host.Python))
}
