package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/whl/internal/app"
	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestDeserializeStructuredArg(t *testing.T) {
	args, err := app.DeserializeStructuredArg[[]string]("extra_pip_args", `{"arg": ["--index-url", "https://example.com/simple"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"--index-url", "https://example.com/simple"}, args)

	env, err := app.DeserializeStructuredArg[map[string]string]("environment", `{"arg": {"HTTP_PROXY": "http://proxy:3128"}}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"HTTP_PROXY": "http://proxy:3128"}, env)

	empty, err := app.DeserializeStructuredArg[[]string]("pip_data_exclude", "")
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestDeserializeStructuredArg_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `--index-url`},
		{"missing arg", `{"args": []}`},
		{"wrong type", `{"arg": "--no-deps"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.DeserializeStructuredArg[[]string]("extra_pip_args", tt.raw)
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidStructuredArg.Error())

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok, "expected *zerr.Error, got %T", err)
			assert.Equal(t, "extra_pip_args", zErr.Metadata()["flag"])
		})
	}
}

func TestPlatformsFromArgs(t *testing.T) {
	host := domain.Host{OS: domain.OSX, Arch: domain.AArch64, Python: domain.NewVersion(12)}

	got, err := app.PlatformsFromArgs(nil, host)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = app.PlatformsFromArgs([]string{"osx_arm64", "host", "linux_x86_64", "darwin_aarch64"}, host)
	require.NoError(t, err)
	assert.Equal(t, []domain.Platform{
		{OS: domain.Linux, Arch: domain.X86_64},
		{OS: domain.OSX, Arch: domain.AArch64},
		host.Platform(),
	}, got)

	_, err = app.PlatformsFromArgs([]string{"linux_mips"}, host)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse --platform")
}
