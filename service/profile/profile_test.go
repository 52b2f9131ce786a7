package profile

import (
	"fmt"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	viper.Set("mode", "nonsense")
	viper.Set("data", dir)
	viper.Set("port", 8081)

	profile, err := GetProfile()
	require.NoError(t, err)
	require.Equal(t, "demo", profile.Mode)
	require.Equal(t, 8081, profile.Port)
	require.Equal(t, fmt.Sprintf("%s/brewhouse_demo.db", dir), profile.DSN)
	require.True(t, profile.IsDev())
}

func TestGetProfileMissingDataDir(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("mode", "dev")
	viper.Set("data", "/definitely/not/here/brewhouse")

	_, err := GetProfile()
	require.Error(t, err)
}
