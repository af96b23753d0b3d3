package pep508_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/whl/internal/engine/pep508"
)

func linuxEnv(extra string) map[string]string {
	p := domain.Platform{OS: domain.Linux, Arch: domain.X86_64, Python: domain.NewVersion(11)}
	return p.EnvMarkers(extra, domain.Version{})
}

func TestMarker_Evaluate(t *testing.T) {
	tests := []struct {
		marker string
		extra  string
		want   bool
	}{
		{`sys_platform == "linux"`, "", true},
		{`sys_platform == "win32"`, "", false},
		{`os_name == "posix" and platform_machine == "x86_64"`, "", true},
		{`platform_system == "Windows" or platform_system == "Linux"`, "", true},
		{`python_version < "3.8"`, "", false},
		{`python_version >= "3.8"`, "", true},
		{`python_version > "3.9"`, "", true},
		{`python_full_version == "3.11.0"`, "", true},
		{`python_version ~= "3.10"`, "", true},
		{`(python_version < "3.8" or sys_platform == "linux") and extra == "socks"`, "socks", true},
		{`(python_version < "3.8" or sys_platform == "linux") and extra == "socks"`, "", false},
		{`extra == "Foo_Bar"`, "foo-bar", true},
		{`"linux" in sys_platform`, "", true},
		{`"lin" in sys_platform`, "", true},
		{`"win" not in sys_platform`, "", true},
		{`platform_python_implementation == "CPython"`, "", true},
		{`implementation_name != "pypy"`, "", true},
		{`platform_release == ""`, "", true},
		{`sys_platform === "linux"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			m, err := pep508.ParseMarker(tt.marker)
			require.NoError(t, err)

			got, err := m.Evaluate(linuxEnv(tt.extra))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarker_VersionOrderingIsNumeric(t *testing.T) {
	m, err := pep508.ParseMarker(`python_version >= "3.9"`)
	require.NoError(t, err)

	env := domain.Platform{Python: domain.NewVersion(10)}.EnvMarkers("", domain.Version{})
	got, err := m.Evaluate(env)
	require.NoError(t, err)
	assert.True(t, got, "3.10 must compare above 3.9")
}

func TestMarker_References(t *testing.T) {
	m, err := pep508.ParseMarker(`(sys_platform == "linux" and python_version < "3.9") or extra == "x"`)
	require.NoError(t, err)

	assert.Equal(t, []string{"extra", "python_version", "sys_platform"}, m.References())
	assert.True(t, m.Mentions("platform_machine", "sys_platform"))
	assert.False(t, m.Mentions("platform_machine", "os_name"))
}

func TestMarker_ParseErrors(t *testing.T) {
	bad := []string{
		``,
		`sys_platform`,
		`sys_platform == `,
		`sys_platform == "linux`,
		`unknown_var == "x"`,
		`"a" == "b"`,
		`(sys_platform == "linux"`,
		`sys_platform == "linux" and`,
		`sys_platform not "linux"`,
		`sys_platform == "linux" "extra"`,
	}
	for _, src := range bad {
		t.Run(src, func(t *testing.T) {
			_, err := pep508.ParseMarker(src)
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidMarker.Error())
		})
	}
}

func TestMarker_UndefinedComparison(t *testing.T) {
	m, err := pep508.ParseMarker(`sys_platform ~= "linux"`)
	require.NoError(t, err)

	_, err = m.Evaluate(linuxEnv(""))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUndefinedComparison.Error())
}

func TestMarker_String(t *testing.T) {
	m, err := pep508.ParseMarker(`  sys_platform == "linux" `)
	require.NoError(t, err)
	assert.Equal(t, `sys_platform == "linux"`, m.String())
}
