package domain

import (
	"regexp"
	"strings"
)

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// CanonicalName normalizes a project name for comparison:
// lowercase, with runs of "-", "_" and "." collapsed to "-".
func CanonicalName(name string) string {
	return strings.ToLower(nameSeparators.ReplaceAllString(name, "-"))
}

// DependencyName normalizes a project name into the form used for
// dependency labels: lowercase, with runs of "-", "_" and "." collapsed to "_".
func DependencyName(name string) string {
	return strings.ToLower(nameSeparators.ReplaceAllString(name, "_"))
}
