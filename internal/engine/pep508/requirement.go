package pep508

import (
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/zerr"
)

var (
	namePattern  = regexp.MustCompile(`^\s*([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)`)
	hashPattern  = regexp.MustCompile(`--hash[=\s]+[A-Za-z0-9]+:[0-9A-Fa-f]+`)
	extrasPrefix = regexp.MustCompile(`^\s*([0-9A-Za-z][0-9A-Za-z_.\-]*)\s*\[\s*([0-9A-Za-z][0-9A-Za-z_.\-]*(?:\s*,\s*[0-9A-Za-z][0-9A-Za-z_.\-]*)*)\s*\]`)
)

// Requirement is a parsed PEP 508 dependency specification.
type Requirement struct {
	Name      string
	Extras    []string
	Specifier string
	URL       string
	Marker    *Marker
}

// StripHashes removes pip --hash options from a requirement line.
func StripHashes(line string) string {
	line = hashPattern.ReplaceAllString(line, "")
	line = strings.ReplaceAll(line, "\\\n", " ")
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), "\\"))
}

// ParseRequirement parses a requirement line such as
// `requests[socks] (>=2.0) ; python_version < "3.8"`.
func ParseRequirement(line string) (*Requirement, error) {
	src := StripHashes(line)
	m := namePattern.FindStringSubmatchIndex(src)
	if m == nil {
		return nil, zerr.With(domain.ErrInvalidRequirement, "requirement", line)
	}
	req := &Requirement{Name: src[m[2]:m[3]]}
	rest := strings.TrimSpace(src[m[1]:])

	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, zerr.With(domain.ErrInvalidRequirement, "requirement", line)
		}
		for e := range strings.SplitSeq(rest[1:end], ",") {
			if e = strings.TrimSpace(e); e != "" {
				req.Extras = append(req.Extras, e)
			}
		}
		slices.Sort(req.Extras)
		rest = strings.TrimSpace(rest[end+1:])
	}

	var marker string
	if after, ok := strings.CutPrefix(rest, "@"); ok {
		url, m, hasMarker := cutURLMarker(strings.TrimSpace(after))
		if url == "" {
			return nil, zerr.With(domain.ErrInvalidRequirement, "requirement", line)
		}
		req.URL = url
		if hasMarker {
			marker = m
		}
	} else {
		spec, m, hasMarker := strings.Cut(rest, ";")
		spec = strings.TrimSpace(spec)
		if strings.HasPrefix(spec, "(") {
			if !strings.HasSuffix(spec, ")") {
				return nil, zerr.With(domain.ErrInvalidRequirement, "requirement", line)
			}
			spec = strings.TrimSpace(spec[1 : len(spec)-1])
		}
		req.Specifier = strings.ReplaceAll(spec, " ", "")
		if hasMarker {
			marker = m
		}
	}

	if strings.TrimSpace(marker) != "" {
		mk, err := ParseMarker(marker)
		if err != nil {
			return nil, zerr.With(err, "requirement", line)
		}
		req.Marker = mk
	}
	return req, nil
}

// cutURLMarker splits "url ; marker". The separator needs leading whitespace
// because a bare ';' may be part of the URL.
func cutURLMarker(s string) (url, marker string, found bool) {
	for i := 1; i < len(s); i++ {
		if s[i] == ';' && (s[i-1] == ' ' || s[i-1] == '\t') {
			return strings.TrimSpace(s[:i]), s[i+1:], true
		}
	}
	return strings.TrimSpace(s), "", false
}

// CanonicalName returns the canonical project name of the requirement.
func (r *Requirement) CanonicalName() string {
	return domain.CanonicalName(r.Name)
}

// ParseExtras extracts the project name and requested extras from the start
// of a requirement line. ok is false when the line requests no extras.
func ParseExtras(line string) (name string, extras []string, ok bool) {
	m := extrasPrefix.FindStringSubmatch(line)
	if m == nil {
		return "", nil, false
	}
	for e := range strings.SplitSeq(m[2], ",") {
		extras = append(extras, strings.TrimSpace(e))
	}
	slices.Sort(extras)
	return m[1], slices.Compact(extras), true
}
