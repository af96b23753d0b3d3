package domain_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/zerr"
)

var testHost = domain.Host{OS: domain.Linux, Arch: domain.X86_64, Python: domain.NewVersion(11)}

func TestParseOS_Aliases(t *testing.T) {
	for alias, want := range map[string]domain.OS{
		"linux":   domain.Linux,
		"osx":     domain.OSX,
		"darwin":  domain.OSX,
		"windows": domain.Windows,
		"win32":   domain.Windows,
	} {
		got, err := domain.ParseOS(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, got, alias)
	}
}

func TestParseArch_Aliases(t *testing.T) {
	for alias, want := range map[string]domain.Arch{
		"amd64":   domain.X86_64,
		"x86_64":  domain.X86_64,
		"i386":    domain.X86_32,
		"i686":    domain.X86_32,
		"x86":     domain.X86_32,
		"x86_32":  domain.X86_32,
		"arm64":   domain.AArch64,
		"aarch64": domain.AArch64,
		"ppc64le": domain.PPC,
		"ppc":     domain.PPC,
		"s390x":   domain.S390X,
		"arm":     domain.ARM,
	} {
		got, err := domain.ParseArch(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, got, alias)
	}
}

func TestParseVersion(t *testing.T) {
	v, err := domain.ParseVersion("3.11")
	require.NoError(t, err)
	assert.Equal(t, domain.NewVersion(11), v)
	assert.Equal(t, "3.11", v.String())

	v, err = domain.ParseVersion("3.11.4")
	require.NoError(t, err)
	minor, ok := v.Minor()
	assert.True(t, ok)
	assert.Equal(t, 11, minor)
	micro, ok := v.Micro()
	assert.True(t, ok)
	assert.Equal(t, 4, micro)
	assert.Equal(t, domain.NewVersion(11), v.MinorOnly())

	for _, bad := range []string{"", "3", "2.7", "3.x", "3.11.x", "3.1.2.3"} {
		_, err := domain.ParseVersion(bad)
		assert.ErrorContains(t, err, domain.ErrInvalidVersion.Error(), bad)
	}

	assert.False(t, domain.Version{}.IsSet())
	assert.Empty(t, domain.Version{}.String())
}

func TestAll(t *testing.T) {
	all := domain.All(domain.AnyOS, domain.Version{})
	assert.Len(t, all, 18)
	assert.True(t, slices.IsSortedFunc(all, domain.ComparePlatforms))

	linux := domain.All(domain.Linux, domain.NewVersion(12))
	assert.Len(t, linux, 6)
	for _, p := range linux {
		assert.Equal(t, domain.Linux, p.OS)
		assert.Equal(t, domain.NewVersion(12), p.Python)
	}
}

func TestPlatform_String(t *testing.T) {
	v := domain.NewVersion(11)
	tests := []struct {
		platform domain.Platform
		want     string
	}{
		{domain.Platform{}, "//conditions:default"},
		{domain.Platform{OS: domain.Linux}, "@platforms//os:linux"},
		{domain.Platform{Arch: domain.AArch64}, "@platforms//cpu:aarch64"},
		{domain.Platform{OS: domain.OSX, Arch: domain.AArch64}, "osx_aarch64"},
		{domain.Platform{Python: v}, "@//python/config_settings:is_python_3.11"},
		{domain.Platform{Python: domain.NewFullVersion(11, 2)}, "@//python/config_settings:is_python_3.11.2"},
		{domain.Platform{OS: domain.Windows, Python: v}, "cp311_windows_anyarch"},
		{domain.Platform{Arch: domain.S390X, Python: v}, "cp311_anyos_s390x"},
		{domain.Platform{OS: domain.Linux, Arch: domain.X86_64, Python: v}, "cp311_linux_x86_64"},
		{domain.Platform{OS: domain.Linux, Arch: domain.X86_64, Python: domain.NewFullVersion(11, 2)}, "cp311.2_linux_x86_64"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.platform.String())
	}
}

func TestParsePlatforms_RoundTrip(t *testing.T) {
	for _, tag := range []string{
		"linux_x86_64",
		"osx_aarch64",
		"windows_x86_32",
		"cp311_linux_ppc",
		"cp39_windows_anyarch",
		"cp312_anyos_arm",
		"cp311.2_linux_s390x",
	} {
		ps, err := domain.ParsePlatforms([]string{tag}, testHost)
		require.NoError(t, err, tag)
		require.Len(t, ps, 1, tag)
		assert.Equal(t, tag, ps[0].String())
	}
}

func TestParsePlatforms_Expansion(t *testing.T) {
	tests := []struct {
		tags []string
		want int
	}{
		{[]string{"*"}, 18},
		{[]string{"*_*"}, 18},
		{[]string{"linux"}, 6},
		{[]string{"linux_*"}, 6},
		{[]string{"cp311_linux"}, 6},
		{[]string{"*_x86_64"}, 3},
		{[]string{"cp311_*_aarch64"}, 3},
		{[]string{"linux_x86_64", "linux_amd64", "linux_*"}, 6},
	}
	for _, tt := range tests {
		ps, err := domain.ParsePlatforms(tt.tags, testHost)
		require.NoError(t, err, tt.tags)
		assert.Len(t, ps, tt.want, tt.tags)
		assert.True(t, slices.IsSortedFunc(ps, domain.ComparePlatforms), tt.tags)
	}
}

func TestParsePlatforms_Aliases(t *testing.T) {
	ps, err := domain.ParsePlatforms([]string{"darwin_arm64", "win32_amd64"}, testHost)
	require.NoError(t, err)
	assert.Equal(t, []domain.Platform{
		{OS: domain.OSX, Arch: domain.AArch64},
		{OS: domain.Windows, Arch: domain.X86_64},
	}, ps)
}

func TestParsePlatforms_Host(t *testing.T) {
	ps, err := domain.ParsePlatforms([]string{"host"}, testHost)
	require.NoError(t, err)
	assert.Equal(t, []domain.Platform{testHost.Platform()}, ps)
}

func TestParsePlatforms_Errors(t *testing.T) {
	_, err := domain.ParsePlatforms([]string{"plan9_x86_64"}, testHost)
	require.Error(t, err)
	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "plan9", zErr.Metadata()["os"])
	assert.Equal(t, "plan9_x86_64", zErr.Metadata()["tag"])

	_, err = domain.ParsePlatforms([]string{"linux_mips"}, testHost)
	assert.ErrorContains(t, err, domain.ErrUnknownArch.Error())

	_, err = domain.ParsePlatforms([]string{"cpython_linux_x86_64"}, testHost)
	assert.ErrorContains(t, err, domain.ErrMalformedTag.Error())
}

func TestComparePlatforms(t *testing.T) {
	ordered := []domain.Platform{
		{},
		{Python: domain.NewVersion(10)},
		{Arch: domain.X86_64},
		{OS: domain.Linux},
		{OS: domain.Linux, Arch: domain.X86_64},
		{OS: domain.Linux, Arch: domain.X86_64, Python: domain.NewVersion(10)},
		{OS: domain.Linux, Arch: domain.X86_64, Python: domain.NewVersion(11)},
		{OS: domain.Linux, Arch: domain.AArch64},
		{OS: domain.OSX, Arch: domain.X86_64},
		{OS: domain.Windows},
	}
	shuffled := slices.Clone(ordered)
	slices.Reverse(shuffled)
	slices.SortFunc(shuffled, domain.ComparePlatforms)
	assert.Equal(t, ordered, shuffled)
	assert.True(t, ordered[0].Less(ordered[1]))
	assert.True(t, ordered[0].IsUniversal())
}

func TestPlatform_Specializations(t *testing.T) {
	count := func(p domain.Platform) int {
		n := 0
		for s := range p.Specializations() {
			assert.False(t, s.Less(p), "%s is less specific than %s", s, p)
			n++
		}
		return n
	}

	full := domain.Platform{OS: domain.Linux, Arch: domain.X86_64}
	assert.Equal(t, 1, count(full))
	assert.Equal(t, 7, count(domain.Platform{OS: domain.Linux}))
	assert.Equal(t, 4, count(domain.Platform{Arch: domain.X86_64}))
	assert.Equal(t, 28, count(domain.Platform{}))

	v := domain.NewVersion(11)
	for s := range (domain.Platform{OS: domain.OSX, Python: v}).Specializations() {
		assert.Equal(t, domain.OSX, s.OS)
		assert.Equal(t, v, s.Python)
	}
}

func TestPlatform_EnvMarkers(t *testing.T) {
	p := domain.Platform{OS: domain.Windows, Arch: domain.AArch64}
	env := p.EnvMarkers("socks", domain.NewVersion(11))

	assert.Equal(t, map[string]string{
		"extra":                  "socks",
		"os_name":                "nt",
		"sys_platform":           "win32",
		"platform_machine":       "arm64",
		"platform_system":        "Windows",
		"platform_release":       "",
		"platform_version":       "",
		"python_version":         "3.11",
		"implementation_version": "3.11.0",
		"python_full_version":    "3.11.0",
	}, env)

	env = domain.Platform{OS: domain.Linux, Arch: domain.PPC, Python: domain.NewFullVersion(9, 7)}.EnvMarkers("", domain.NewVersion(11))
	assert.Equal(t, "3.9", env["python_version"])
	assert.Equal(t, "3.9.7", env["python_full_version"])
	assert.Equal(t, "ppc64le", env["platform_machine"])
	assert.Equal(t, "posix", env["os_name"])

	env = domain.Platform{}.EnvMarkers("", domain.NewVersion(11))
	assert.Empty(t, env["os_name"])
	assert.Empty(t, env["sys_platform"])
	assert.Empty(t, env["platform_machine"])
}

func TestPlatform_PlatformMachine(t *testing.T) {
	tests := []struct {
		platform domain.Platform
		want     string
	}{
		{domain.Platform{OS: domain.Linux, Arch: domain.X86_64}, "x86_64"},
		{domain.Platform{OS: domain.Windows, Arch: domain.X86_32}, "i386"},
		{domain.Platform{OS: domain.OSX, Arch: domain.X86_32}, ""},
		{domain.Platform{OS: domain.Linux, Arch: domain.AArch64}, "aarch64"},
		{domain.Platform{OS: domain.OSX, Arch: domain.AArch64}, "arm64"},
		{domain.Platform{OS: domain.Linux, Arch: domain.S390X}, "s390x"},
		{domain.Platform{OS: domain.Windows, Arch: domain.S390X}, ""},
		{domain.Platform{OS: domain.Linux, Arch: domain.ARM}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.platform.PlatformMachine(), tt.platform.String())
	}
}
