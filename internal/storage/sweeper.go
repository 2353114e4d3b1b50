// PlantDiseaseDetector | 2026
// sweeper.go

package storage

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Sweeper reclaims stale uploads on a fixed interval. It trusts the
// filesystem's own modification timestamps, so a request writing into a
// directory mid-sweep needs no coordination: a freshly written file is
// always younger than the cutoff.
type Sweeper struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration
	log      *slog.Logger
}

func NewSweeper(
	dir string,
	maxAge, interval time.Duration,
	log *slog.Logger,
) *Sweeper {
	return &Sweeper{
		dir:      dir,
		maxAge:   maxAge,
		interval: interval,
		log:      log,
	}
}

// Run sweeps once immediately, then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweepAndLog()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepAndLog()
		}
	}
}

func (s *Sweeper) sweepAndLog() {
	removed, err := s.Sweep()
	if err != nil {
		s.log.Warn("retention sweep failed", "error", err)
		return
	}
	if removed > 0 {
		s.log.Info("retention sweep removed stale uploads",
			"removed", removed,
			"max_age", s.maxAge.String(),
		)
	}
}

// Sweep deletes files older than maxAge under the upload root and
// prunes directories the deletions left empty. Returns the number of
// files removed.
func (s *Sweeper) Sweep() (int, error) {
	cutoff := time.Now().Add(-s.maxAge)

	removed := 0
	var dirs []string

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		if d.IsDir() {
			if path != s.dir {
				dirs = append(dirs, path)
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // file vanished mid-walk
		}

		if info.ModTime().Before(cutoff) {
			if rmErr := os.Remove(path); rmErr != nil {
				s.log.Warn("failed to remove stale upload",
					"path", path,
					"error", rmErr,
				)
			} else {
				removed++
			}
		}

		return nil
	})
	if err != nil {
		return removed, err
	}

	// Deepest directories first, so emptied parents fall in one pass.
	sort.Slice(dirs, func(i, j int) bool {
		return len(dirs[i]) > len(dirs[j])
	})

	for _, dir := range dirs {
		entries, readErr := os.ReadDir(dir)
		if readErr == nil && len(entries) == 0 {
			//nolint:errcheck // concurrent writers may repopulate the dir
			_ = os.Remove(dir)
		}
	}

	return removed, nil
}
