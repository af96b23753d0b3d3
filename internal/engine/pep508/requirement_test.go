package pep508_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/whl/internal/engine/pep508"
)

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		line      string
		name      string
		extras    []string
		specifier string
		url       string
		marker    string
	}{
		{line: "requests", name: "requests"},
		{line: "requests==2.31.0", name: "requests", specifier: "==2.31.0"},
		{line: "requests >= 2.0, < 3", name: "requests", specifier: ">=2.0,<3"},
		{line: "requests (>=2.0)", name: "requests", specifier: ">=2.0"},
		{line: "requests[socks,security]>=2", name: "requests", extras: []string{"security", "socks"}, specifier: ">=2"},
		{
			line:      `PySocks!=1.5.7,>=1.5.6 ; extra == "socks"`,
			name:      "PySocks",
			specifier: "!=1.5.7,>=1.5.6",
			marker:    `extra == "socks"`,
		},
		{
			line:   `pkg @ https://example.com/pkg.whl ; sys_platform == "linux"`,
			name:   "pkg",
			url:    "https://example.com/pkg.whl",
			marker: `sys_platform == "linux"`,
		},
		{
			line:      `foo==0.0.1 --hash=sha256:deadbeef ; python_version < "3.9"`,
			name:      "foo",
			specifier: "==0.0.1",
			marker:    `python_version < "3.9"`,
		},
		{
			line:      `foo==0.0.1 ; python_version < "3.9" --hash sha256:deadbeef --hash=sha256:00ff`,
			name:      "foo",
			specifier: "==0.0.1",
			marker:    `python_version < "3.9"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			req, err := pep508.ParseRequirement(tt.line)
			require.NoError(t, err)

			assert.Equal(t, tt.name, req.Name)
			assert.Equal(t, tt.extras, req.Extras)
			assert.Equal(t, tt.specifier, req.Specifier)
			assert.Equal(t, tt.url, req.URL)
			if tt.marker == "" {
				assert.Nil(t, req.Marker)
			} else {
				require.NotNil(t, req.Marker)
				assert.Equal(t, tt.marker, req.Marker.String())
			}
		})
	}
}

func TestParseRequirement_Invalid(t *testing.T) {
	for _, line := range []string{"", "   ", "[extra]", "foo[bar", "foo (>=1.0", `foo ; bad_var == "x"`} {
		t.Run(line, func(t *testing.T) {
			_, err := pep508.ParseRequirement(line)
			require.Error(t, err)
		})
	}
}

func TestParseRequirement_CanonicalName(t *testing.T) {
	req, err := pep508.ParseRequirement("Foo.Bar_baz>=1")
	require.NoError(t, err)
	assert.Equal(t, "foo-bar-baz", req.CanonicalName())
}

func TestStripHashes(t *testing.T) {
	line := "foo==0.0.1 --hash=sha256:deadbeef --hash sha512:0123abcd"
	assert.Equal(t, "foo==0.0.1", pep508.StripHashes(line))
}

func TestParseExtras(t *testing.T) {
	name, extras, ok := pep508.ParseExtras("requests[ socks , security ]==2.31.0")
	require.True(t, ok)
	assert.Equal(t, "requests", name)
	assert.Equal(t, []string{"security", "socks"}, extras)

	_, _, ok = pep508.ParseExtras("requests==2.31.0")
	assert.False(t, ok)
}

func TestParseRequirement_InvalidMarkerMetadata(t *testing.T) {
	_, err := pep508.ParseRequirement(`foo ; sys_platform ==`)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidMarker.Error())
}
