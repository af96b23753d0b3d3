package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/whl/internal/core/domain"
)

func TestDetectHost(t *testing.T) {
	v := domain.NewVersion(12)

	h, err := domain.DetectHost("win32", "", v)
	require.NoError(t, err)
	assert.Equal(t, domain.Host{OS: domain.Windows, Arch: domain.X86_64, Python: v}, h)

	h, err = domain.DetectHost("Darwin", "ARM64", v)
	require.NoError(t, err)
	assert.Equal(t, domain.Platform{OS: domain.OSX, Arch: domain.AArch64, Python: v}, h.Platform())
	assert.Len(t, h.Platforms(), 1)

	_, err = domain.DetectHost("sunos5", "x86_64", v)
	assert.ErrorContains(t, err, domain.ErrUnknownOS.Error())

	_, err = domain.DetectHost("linux", "mips", v)
	assert.ErrorContains(t, err, domain.ErrUnknownArch.Error())
}

func TestHost_EnvMarkers(t *testing.T) {
	h := domain.Host{OS: domain.Linux, Arch: domain.AArch64, Python: domain.NewFullVersion(11, 6)}
	env := h.EnvMarkers("")

	assert.Equal(t, "linux", env["sys_platform"])
	assert.Equal(t, "aarch64", env["platform_machine"])
	assert.Equal(t, "3.11", env["python_version"])
	assert.Equal(t, "3.11.6", env["python_full_version"])
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "foo-bar-baz", domain.CanonicalName("Foo__Bar.-baz"))
	assert.Equal(t, "foo_bar_baz", domain.DependencyName("Foo__Bar.-baz"))
	assert.Equal(t, "requests", domain.CanonicalName("requests"))
}

func TestNewWheelMetadata_NoNulls(t *testing.T) {
	m := domain.NewWheelMetadata(&domain.Distribution{Name: "foo", Version: "1.0"}, domain.DepSet{})

	assert.NotNil(t, m.Deps)
	assert.NotNil(t, m.DepsByPlatform)
	assert.NotNil(t, m.EntryPoints)
}

func TestInstallArgs_ExtractMode(t *testing.T) {
	assert.False(t, domain.InstallArgs{}.ExtractMode())
	assert.True(t, domain.InstallArgs{WheelFile: "foo.whl"}.ExtractMode())
}

func TestSettings_Apply(t *testing.T) {
	s := &domain.Settings{
		Python:      "python3.11",
		Platforms:   []string{"linux_x86_64"},
		PipArgs:     []string{"--index-url", "https://example.com/simple"},
		Environment: map[string]string{"A": "settings", "B": "settings"},
	}

	got := s.Apply(domain.InstallArgs{
		ExtraPipArgs: []string{"--no-cache-dir"},
		Environment:  map[string]string{"B": "flag"},
	})
	assert.Equal(t, "python3.11", got.Python)
	assert.Equal(t, []string{"linux_x86_64"}, got.Platforms)
	assert.Equal(t, []string{"--index-url", "https://example.com/simple", "--no-cache-dir"}, got.ExtraPipArgs)
	assert.Equal(t, map[string]string{"A": "settings", "B": "flag"}, got.Environment)
	assert.Equal(t, ".", got.InstallationDir)

	got = s.Apply(domain.InstallArgs{Python: "/usr/bin/python3", Platforms: []string{"osx_aarch64"}, InstallationDir: "out"})
	assert.Equal(t, "/usr/bin/python3", got.Python)
	assert.Equal(t, []string{"osx_aarch64"}, got.Platforms)
	assert.Equal(t, "out", got.InstallationDir)

	assert.Equal(t, domain.DefaultPython, domain.DefaultSettings().Apply(domain.InstallArgs{}).Python)
	assert.Equal(t, domain.DefaultPython, (&domain.Settings{}).Apply(domain.InstallArgs{}).Python)
}
