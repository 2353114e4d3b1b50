// PlantDiseaseDetector | 2026
// store.go

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is where stored uploads are served from, regardless of
// which directory backs the store on disk.
const URLPrefix = "/uploads/"

// SavedFile describes a persisted upload. Path is the public URL path
// recorded in History rows and served back as image_url; it never
// exposes the storage root. AbsPath is where the bytes live on the
// local filesystem.
type SavedFile struct {
	Path    string
	AbsPath string
}

type Store interface {
	Save(ctx context.Context, filename string, r io.Reader) (*SavedFile, error)
}

// LocalStore shards uploads under a root directory. Stored names carry
// a short random prefix, so two uploads of "leaf.jpg" never collide and
// the unique constraint on History.image_path holds.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Save(
	ctx context.Context,
	filename string,
	r io.Reader,
) (*SavedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := sanitizeFilename(filename)
	if err != nil {
		return nil, err
	}

	shard := ShardPath(base)
	dir := filepath.Join(s.root, filepath.FromSlash(shard))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create shard dir: %w", err)
	}

	name := uuid.New().String()[:8] + "_" + base
	absPath := filepath.Join(dir, name)

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close() //nolint:errcheck // write error takes precedence
		return nil, fmt.Errorf("write file: %w", err)
	}

	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("close file: %w", err)
	}

	return &SavedFile{
		Path:    URLPrefix + shard + "/" + name,
		AbsPath: absPath,
	}, nil
}

func sanitizeFilename(filename string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	return base, nil
}
