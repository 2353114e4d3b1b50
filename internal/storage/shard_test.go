// PlantDiseaseDetector | 2026
// shard_test.go

package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShardPath(t *testing.T) {
	t.Run("Should be deterministic for the same filename", func(t *testing.T) {
		assert.Equal(t, ShardPath("leaf.jpg"), ShardPath("leaf.jpg"))
	})

	t.Run("Should produce three two-char hex levels", func(t *testing.T) {
		parts := strings.Split(ShardPath("leaf.jpg"), "/")
		require.Len(t, parts, 3)

		for _, part := range parts {
			assert.Len(t, part, 2)
			assert.Regexp(t, "^[0-9a-f]{2}$", part)
		}
	})

	t.Run("Should scatter different filenames", func(t *testing.T) {
		// Not guaranteed for arbitrary pairs, but stable for these.
		assert.NotEqual(t, ShardPath("leaf.jpg"), ShardPath("stem.png"))
	})
}
