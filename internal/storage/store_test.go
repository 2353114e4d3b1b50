// PlantDiseaseDetector | 2026
// store_test.go

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Save(t *testing.T) {
	t.Run("Should persist bytes under the shard directory", func(t *testing.T) {
		store := NewLocalStore(t.TempDir())

		saved, err := store.Save(
			context.Background(),
			"leaf.jpg",
			strings.NewReader("jpeg bytes"),
		)
		require.NoError(t, err)

		data, err := os.ReadFile(saved.AbsPath)
		require.NoError(t, err)
		assert.Equal(t, "jpeg bytes", string(data))

		assert.Contains(t, saved.Path, ShardPath("leaf.jpg"))
		assert.Contains(t, saved.Path, "leaf.jpg")
		assert.NotContains(t, saved.Path, "\\")
	})

	t.Run("Should build the public path independent of the store root", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "srv", "image-store")
		store := NewLocalStore(root)

		saved, err := store.Save(
			context.Background(),
			"leaf.jpg",
			strings.NewReader("jpeg bytes"),
		)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(saved.Path, URLPrefix))
		assert.NotContains(t, saved.Path, "image-store")
		assert.True(t, strings.HasPrefix(saved.AbsPath, root))
	})

	t.Run("Should never collide on repeated filenames", func(t *testing.T) {
		store := NewLocalStore(t.TempDir())

		first, err := store.Save(
			context.Background(),
			"leaf.jpg",
			strings.NewReader("one"),
		)
		require.NoError(t, err)

		second, err := store.Save(
			context.Background(),
			"leaf.jpg",
			strings.NewReader("two"),
		)
		require.NoError(t, err)

		assert.NotEqual(t, first.Path, second.Path)

		data, err := os.ReadFile(first.AbsPath)
		require.NoError(t, err)
		assert.Equal(t, "one", string(data))
	})

	t.Run("Should strip directory components from the name", func(t *testing.T) {
		store := NewLocalStore(t.TempDir())

		saved, err := store.Save(
			context.Background(),
			"../../etc/passwd",
			strings.NewReader("x"),
		)
		require.NoError(t, err)

		assert.Contains(t, saved.Path, "passwd")
		assert.NotContains(t, saved.Path, "..")
	})

	t.Run("Should reject names with no usable base", func(t *testing.T) {
		store := NewLocalStore(t.TempDir())

		_, err := store.Save(context.Background(), "..", strings.NewReader("x"))
		assert.Error(t, err)
	})

	t.Run("Should honor context cancellation", func(t *testing.T) {
		store := NewLocalStore(t.TempDir())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.Save(ctx, "leaf.jpg", strings.NewReader("x"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
