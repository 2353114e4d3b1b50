// PlantDiseaseDetector | 2026
// config_test.go

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Should keep returning the first failure on repeated calls", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "absent.yaml")

		first, err := Load(missing)
		require.Error(t, err)
		assert.Nil(t, first)

		second, err := Load(missing)
		require.Error(t, err)
		assert.Nil(t, second)
	})
}
