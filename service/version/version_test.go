package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsVersionGreaterOrEqualThan(t *testing.T) {
	tests := []struct {
		version string
		target  string
		want    bool
	}{
		{version: "0.2.0", target: "0.2.0", want: true},
		{version: "0.10.1", target: "0.9.0", want: true},
		{version: "0.1.9", target: "0.2.0", want: false},
	}
	for _, test := range tests {
		require.Equal(t, test.want, IsVersionGreaterOrEqualThan(test.version, test.target))
	}
}

func TestIsVersionGreaterThan(t *testing.T) {
	require.False(t, IsVersionGreaterThan("0.2.0", "0.2.0"))
	require.True(t, IsVersionGreaterThan("0.3.0", "0.2.0"))
}

func TestGetSchemaVersion(t *testing.T) {
	require.Equal(t, "0.2.0", GetSchemaVersion("0.2.7"))
	require.Equal(t, "", GetSchemaVersion("dev"))
}
