package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGitVersion(t *testing.T) {
	t.Run("Should parse plain git version", func(t *testing.T) {
		version, err := NewGitVersion("2.43.0")
		require.NoError(t, err)
		assert.Equal(t, "2.43.0", version.String())
		assert.Equal(t, "2.43.0", version.Raw)
	})
	t.Run("Should ignore vendor suffix", func(t *testing.T) {
		version, err := NewGitVersion("2.39.3 (Apple Git-146)")
		require.NoError(t, err)
		assert.Equal(t, "2.39.3", version.String())
		assert.Equal(t, "2.39.3 (Apple Git-146)", version.Raw)
	})
	t.Run("Should truncate extra dotted components", func(t *testing.T) {
		version, err := NewGitVersion("2.45.1.windows.1")
		require.NoError(t, err)
		assert.Equal(t, "2.45.1", version.String())
	})
	t.Run("Should return error for empty string", func(t *testing.T) {
		version, err := NewGitVersion("  ")
		assert.Error(t, err)
		assert.Nil(t, version)
	})
	t.Run("Should return error for invalid version", func(t *testing.T) {
		version, err := NewGitVersion("banana")
		assert.Error(t, err)
		assert.Nil(t, version)
	})
}

func TestGitVersion_Supported(t *testing.T) {
	t.Run("Should accept versions at or above the minimum", func(t *testing.T) {
		for _, raw := range []string{"2.0.0", "2.43.0", "3.0.0"} {
			version, err := NewGitVersion(raw)
			require.NoError(t, err)
			assert.True(t, version.Supported(), raw)
		}
	})
	t.Run("Should reject versions below the minimum", func(t *testing.T) {
		version, err := NewGitVersion("1.9.5")
		require.NoError(t, err)
		assert.False(t, version.Supported())
	})
}
