// PlantDiseaseDetector | 2026
// service.go

package disease

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/classifier"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/core"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/storage"
)

// ErrNoSentinel means the predicted label has no catalog entry and the
// fallback row is missing too. There is nothing left to fall back to.
var ErrNoSentinel = errors.New("sentinel disease missing from catalog")

// Recorder writes the History row for a completed detection and
// returns the store-assigned timestamp.
type Recorder interface {
	Record(
		ctx context.Context,
		userID, diseaseID, imagePath string,
	) (time.Time, error)
}

// Mirror is the optional off-site copy of stored images; nil disables
// mirroring.
type Mirror interface {
	Upload(ctx context.Context, key, localPath string) error
}

type Service struct {
	repo       Repository
	store      storage.Store
	classifier classifier.Classifier
	recorder   Recorder
	mirror     Mirror
}

func NewService(
	repo Repository,
	store storage.Store,
	clf classifier.Classifier,
	recorder Recorder,
	mirror Mirror,
) *Service {
	return &Service{
		repo:       repo,
		store:      store,
		classifier: clf,
		recorder:   recorder,
		mirror:     mirror,
	}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateRequest,
) (*Disease, error) {
	d := &Disease{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Reason:          req.Reason,
		Recommendations: req.Recommendation,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) List(ctx context.Context) ([]Disease, error) {
	return s.repo.List(ctx)
}

// Detect runs the upload pipeline: persist the image, classify it,
// resolve the catalog entry (falling back to the sentinel on a miss)
// and record history. Completed steps are not rolled back when a later
// one fails; an orphaned file is reclaimed by the retention sweep.
func (s *Service) Detect(
	ctx context.Context,
	userID, filename string,
	file io.Reader,
) (*DetectionResponse, error) {
	saved, err := s.store.Save(ctx, filename, file)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	if s.mirror != nil {
		key := strings.TrimPrefix(saved.Path, "/")
		if mirrorErr := s.mirror.Upload(ctx, key, saved.AbsPath); mirrorErr != nil {
			slog.Warn("mirror upload failed",
				"path", saved.Path,
				"error", mirrorErr,
			)
		}
	}

	label, err := s.classifier.Predict(ctx, saved.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("classify image: %w", err)
	}

	resolved, err := s.resolve(ctx, label)
	if err != nil {
		return nil, err
	}

	recordedAt, err := s.recorder.Record(ctx, userID, resolved.ID, saved.Path)
	if err != nil {
		return nil, fmt.Errorf("record history: %w", err)
	}

	return &DetectionResponse{
		DiseasesName:   resolved.Name,
		Reason:         resolved.Reason,
		Recommendation: resolved.Recommendations,
		Time:           recordedAt,
		ImageURL:       saved.Path,
	}, nil
}

func (s *Service) resolve(ctx context.Context, label string) (*Disease, error) {
	d, err := s.repo.GetByName(ctx, label)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("lookup disease: %w", err)
	}

	sentinel, err := s.repo.GetByName(ctx, SentinelName)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("label %q: %w", label, ErrNoSentinel)
		}
		return nil, fmt.Errorf("lookup sentinel: %w", err)
	}

	return sentinel, nil
}
