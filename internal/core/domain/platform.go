package domain

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// OS is a target operating system. The zero value means "any OS".
type OS uint8

// Operating systems, in rank order.
const (
	AnyOS OS = iota
	Linux
	OSX
	Windows
)

// Oses lists every concrete OS in rank order.
var Oses = []OS{Linux, OSX, Windows}

var osNames = map[OS]string{
	Linux:   "linux",
	OSX:     "osx",
	Windows: "windows",
}

// osAliases maps every accepted spelling to its canonical OS.
var osAliases = map[string]OS{
	"linux":   Linux,
	"osx":     OSX,
	"darwin":  OSX,
	"windows": Windows,
	"win32":   Windows,
}

// ParseOS looks up an OS by any of its accepted spellings.
func ParseOS(s string) (OS, error) {
	if os, ok := osAliases[s]; ok {
		return os, nil
	}
	return AnyOS, zerr.With(ErrUnknownOS, "os", s)
}

// String returns the canonical lowercase name, or "" for AnyOS.
func (o OS) String() string {
	return osNames[o]
}

// Arch is a target CPU architecture. The zero value means "any architecture".
type Arch uint8

// Architectures, in rank order.
const (
	AnyArch Arch = iota
	X86_64
	X86_32
	AArch64
	PPC
	S390X
	ARM
)

// Arches lists every concrete Arch in rank order.
var Arches = []Arch{X86_64, X86_32, AArch64, PPC, S390X, ARM}

var archNames = map[Arch]string{
	X86_64:  "x86_64",
	X86_32:  "x86_32",
	AArch64: "aarch64",
	PPC:     "ppc",
	S390X:   "s390x",
	ARM:     "arm",
}

// archAliases maps every accepted spelling to its canonical Arch.
var archAliases = map[string]Arch{
	"x86_64":  X86_64,
	"amd64":   X86_64,
	"x86_32":  X86_32,
	"i386":    X86_32,
	"i686":    X86_32,
	"x86":     X86_32,
	"aarch64": AArch64,
	"arm64":   AArch64,
	"ppc":     PPC,
	"ppc64le": PPC,
	"s390x":   S390X,
	"arm":     ARM,
}

// ParseArch looks up an Arch by any of its accepted spellings.
func ParseArch(s string) (Arch, error) {
	if a, ok := archAliases[s]; ok {
		return a, nil
	}
	return AnyArch, zerr.With(ErrUnknownArch, "arch", s)
}

// String returns the canonical name, or "" for AnyArch.
func (a Arch) String() string {
	return archNames[a]
}

// Version is an optional python 3 interpreter version.
// The zero value means no version constraint.
type Version struct {
	// minor and micro are stored off by one so that zero means unset.
	minor int
	micro int
}

// NewVersion returns a Version for python 3.<minor>.
func NewVersion(minor int) Version {
	return Version{minor: minor + 1}
}

// NewFullVersion returns a Version for python 3.<minor>.<micro>.
func NewFullVersion(minor, micro int) Version {
	return Version{minor: minor + 1, micro: micro + 1}
}

// ParseVersion parses "3.<minor>" or "3.<minor>.<micro>".
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != "3" {
		return Version{}, zerr.With(ErrInvalidVersion, "version", s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil || minor < 0 {
		return Version{}, zerr.With(ErrInvalidVersion, "version", s)
	}
	if len(parts) == 2 {
		return NewVersion(minor), nil
	}
	micro, err := strconv.Atoi(parts[2])
	if err != nil || micro < 0 {
		return Version{}, zerr.With(ErrInvalidVersion, "version", s)
	}
	return NewFullVersion(minor, micro), nil
}

// IsSet reports whether a minor version is present.
func (v Version) IsSet() bool {
	return v.minor > 0
}

// Minor returns the minor version and whether it is set.
func (v Version) Minor() (int, bool) {
	return v.minor - 1, v.minor > 0
}

// Micro returns the micro version and whether it is set.
func (v Version) Micro() (int, bool) {
	return v.micro - 1, v.micro > 0
}

// MinorOnly drops the micro component.
func (v Version) MinorOnly() Version {
	return Version{minor: v.minor}
}

// String renders "3.<minor>[.<micro>]", or "" when unset.
func (v Version) String() string {
	if !v.IsSet() {
		return ""
	}
	if v.micro > 0 {
		return fmt.Sprintf("3.%d.%d", v.minor-1, v.micro-1)
	}
	return fmt.Sprintf("3.%d", v.minor-1)
}

// abiPrefix renders the "cp3<minor>[.<micro>]" tag prefix.
func (v Version) abiPrefix() string {
	if v.micro > 0 {
		return fmt.Sprintf("cp3%d.%d", v.minor-1, v.micro-1)
	}
	return fmt.Sprintf("cp3%d", v.minor-1)
}

func compareVersions(a, b Version) int {
	if c := cmp.Compare(a.minor, b.minor); c != 0 {
		return c
	}
	return cmp.Compare(a.micro, b.micro)
}

// Platform is a target platform for dependency selection.
// Unset fields act as wildcards; the zero value matches everything.
type Platform struct {
	OS     OS
	Arch   Arch
	Python Version
}

// All returns every OS × Arch platform, restricted to want unless it is AnyOS,
// tagged with the given python version.
func All(want OS, v Version) []Platform {
	out := make([]Platform, 0, len(Oses)*len(Arches))
	for _, os := range Oses {
		if want != AnyOS && want != os {
			continue
		}
		for _, arch := range Arches {
			out = append(out, Platform{OS: os, Arch: arch, Python: v})
		}
	}
	slices.SortFunc(out, ComparePlatforms)
	return out
}

// ComparePlatforms orders platforms by OS, then Arch, then python version.
// Unset fields sort before concrete values.
func ComparePlatforms(a, b Platform) int {
	if c := cmp.Compare(a.OS, b.OS); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Arch, b.Arch); c != 0 {
		return c
	}
	return compareVersions(a.Python, b.Python)
}

// Less reports whether p sorts before other.
func (p Platform) Less(other Platform) bool {
	return ComparePlatforms(p, other) < 0
}

// IsUniversal reports whether the platform carries no constraint at all.
func (p Platform) IsUniversal() bool {
	return p == Platform{}
}

// String renders the platform as a select() condition key.
func (p Platform) String() string {
	if !p.Python.IsSet() {
		switch {
		case p.OS == AnyOS && p.Arch == AnyArch:
			return "//conditions:default"
		case p.Arch == AnyArch:
			return "@platforms//os:" + p.OS.String()
		case p.OS == AnyOS:
			return "@platforms//cpu:" + p.Arch.String()
		default:
			return p.OS.String() + "_" + p.Arch.String()
		}
	}

	prefix := p.Python.abiPrefix()
	switch {
	case p.OS == AnyOS && p.Arch == AnyArch:
		return "@//python/config_settings:is_python_" + p.Python.String()
	case p.Arch == AnyArch:
		return prefix + "_" + p.OS.String() + "_anyarch"
	case p.OS == AnyOS:
		return prefix + "_anyos_" + p.Arch.String()
	default:
		return prefix + "_" + p.OS.String() + "_" + p.Arch.String()
	}
}

// Specializations yields p followed by every platform obtained by filling in
// its unset axes. It never yields anything less specific than p.
func (p Platform) Specializations() iter.Seq[Platform] {
	return func(yield func(Platform) bool) {
		if !yield(p) {
			return
		}
		if p.Arch == AnyArch {
			for _, arch := range Arches {
				if !yield(Platform{OS: p.OS, Arch: arch, Python: p.Python}) {
					return
				}
			}
		}
		if p.OS == AnyOS {
			for _, os := range Oses {
				if !yield(Platform{OS: os, Arch: p.Arch, Python: p.Python}) {
					return
				}
			}
		}
		if p.OS == AnyOS && p.Arch == AnyArch {
			for _, os := range Oses {
				for _, arch := range Arches {
					if !yield(Platform{OS: os, Arch: arch, Python: p.Python}) {
						return
					}
				}
			}
		}
	}
}

// OSName is the PEP 508 os_name marker value.
func (p Platform) OSName() string {
	switch p.OS {
	case Windows:
		return "nt"
	case Linux, OSX:
		return "posix"
	default:
		return ""
	}
}

// SysPlatform is the PEP 508 sys_platform marker value.
func (p Platform) SysPlatform() string {
	switch p.OS {
	case Linux:
		return "linux"
	case OSX:
		return "darwin"
	case Windows:
		return "win32"
	default:
		return ""
	}
}

// PlatformSystem is the PEP 508 platform_system marker value.
func (p Platform) PlatformSystem() string {
	switch p.OS {
	case Linux:
		return "Linux"
	case OSX:
		return "Darwin"
	case Windows:
		return "Windows"
	default:
		return ""
	}
}

// PlatformMachine guesses the PEP 508 platform_machine marker value.
// Windows and macOS report arm64 for aarch64; the remaining architectures
// are only known on Linux.
func (p Platform) PlatformMachine() string {
	switch {
	case p.Arch == X86_64:
		return "x86_64"
	case p.Arch == X86_32 && p.OS != OSX:
		return "i386"
	case p.Arch == X86_32:
		return ""
	case p.Arch == AArch64 && p.OS == Linux:
		return "aarch64"
	case p.Arch == AArch64:
		return "arm64"
	case p.OS != Linux:
		return ""
	case p.Arch == PPC:
		return "ppc64le"
	case p.Arch == S390X:
		return "s390x"
	default:
		return ""
	}
}

// EnvMarkers returns the PEP 508 environment for this platform.
// An unset python version is replaced by fallback; an unset micro version is 0.
// platform_release and platform_version cannot be derived and are always empty.
func (p Platform) EnvMarkers(extra string, fallback Version) map[string]string {
	v := p.Python
	if !v.IsSet() {
		v = fallback
	}
	minor, _ := v.Minor()
	micro, _ := v.Micro()
	if micro < 0 {
		micro = 0
	}
	full := fmt.Sprintf("3.%d.%d", minor, micro)

	return map[string]string{
		"extra":                  extra,
		"os_name":                p.OSName(),
		"sys_platform":           p.SysPlatform(),
		"platform_machine":       p.PlatformMachine(),
		"platform_system":        p.PlatformSystem(),
		"platform_release":       "",
		"platform_version":       "",
		"python_version":         fmt.Sprintf("3.%d", minor),
		"implementation_version": full,
		"python_full_version":    full,
	}
}

// ParsePlatforms parses compatibility tags of the form
// [cp3<minor>[.<micro>]_]<os>_<arch>, or the literal "host".
// A "*" in the os or arch position expands that axis over every member;
// a missing arch is treated as "*". The result is deduplicated and sorted.
func ParsePlatforms(tags []string, host Host) ([]Platform, error) {
	seen := make(map[Platform]struct{})
	for _, tag := range tags {
		platforms, err := parsePlatform(tag, host)
		if err != nil {
			return nil, err
		}
		for _, p := range platforms {
			seen[p] = struct{}{}
		}
	}

	out := make([]Platform, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	slices.SortFunc(out, ComparePlatforms)
	return out, nil
}

func parsePlatform(tag string, host Host) ([]Platform, error) {
	if tag == "host" {
		return host.Platforms(), nil
	}

	abi, tail, _ := strings.Cut(tag, "_")
	if !strings.HasPrefix(abi, "cp") {
		abi = ""
		tail = tag
	}
	osToken, archToken, _ := strings.Cut(tail, "_")
	if archToken == "" {
		archToken = "*"
	}

	var version Version
	if abi != "" {
		v, err := parseABI(abi)
		if err != nil {
			return nil, zerr.With(err, "tag", tag)
		}
		version = v
	}

	oses, err := expandOS(osToken)
	if err != nil {
		return nil, zerr.With(err, "tag", tag)
	}
	arches, err := expandArch(archToken)
	if err != nil {
		return nil, zerr.With(err, "tag", tag)
	}

	out := make([]Platform, 0, len(oses)*len(arches))
	for _, os := range oses {
		for _, arch := range arches {
			out = append(out, Platform{OS: os, Arch: arch, Python: version})
		}
	}
	return out, nil
}

func parseABI(abi string) (Version, error) {
	rest, ok := strings.CutPrefix(abi, "cp3")
	if !ok || rest == "" {
		return Version{}, zerr.With(ErrMalformedTag, "abi", abi)
	}
	minorStr, microStr, hasMicro := strings.Cut(rest, ".")
	minor, err := strconv.Atoi(minorStr)
	if err != nil || minor < 0 {
		return Version{}, zerr.With(ErrMalformedTag, "abi", abi)
	}
	if !hasMicro {
		return NewVersion(minor), nil
	}
	micro, err := strconv.Atoi(microStr)
	if err != nil || micro < 0 {
		return Version{}, zerr.With(ErrMalformedTag, "abi", abi)
	}
	return NewFullVersion(minor, micro), nil
}

func expandOS(token string) ([]OS, error) {
	switch token {
	case "*":
		return Oses, nil
	case "anyos":
		return []OS{AnyOS}, nil
	}
	os, err := ParseOS(token)
	if err != nil {
		return nil, err
	}
	return []OS{os}, nil
}

func expandArch(token string) ([]Arch, error) {
	switch token {
	case "*":
		return Arches, nil
	case "anyarch":
		return []Arch{AnyArch}, nil
	}
	arch, err := ParseArch(token)
	if err != nil {
		return nil, err
	}
	return []Arch{arch}, nil
}
