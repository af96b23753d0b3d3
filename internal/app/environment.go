package app

import (
	"maps"
	"slices"
	"strings"
)

// reproducibleDefaults make source builds by pip deterministic. Each applies
// only when the variable is not already set.
var reproducibleDefaults = map[string]string{
	"CFLAGS":            "-g0",
	"SOURCE_DATE_EPOCH": "315532800",
	"PYTHONHASHSEED":    "0",
}

// pipEnvironment merges environment variables with the defined priority:
// the system environment, then the reproducibility defaults for unset
// variables, then the explicit overrides. The result is sorted.
func pipEnvironment(sysEnv []string, overrides map[string]string) []string {
	// 1. Start with System Environment
	envMap := make(map[string]string, len(sysEnv)+len(reproducibleDefaults)+len(overrides))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	// 2. Fill in reproducibility defaults
	for k, v := range reproducibleDefaults {
		if _, exists := envMap[k]; !exists {
			envMap[k] = v
		}
	}

	// 3. Apply Overrides
	maps.Copy(envMap, overrides)

	result := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		result = append(result, k+"="+envMap[k])
	}
	return result
}
