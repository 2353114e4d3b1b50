// PlantDiseaseDetector | 2026
// service.go

package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record persists one upload+classification event. The returned
// timestamp is the store's, not the process clock's.
func (s *Service) Record(
	ctx context.Context,
	userID, diseaseID, imagePath string,
) (time.Time, error) {
	record := &History{
		ID:        uuid.New().String(),
		UserID:    userID,
		DiseaseID: diseaseID,
		ImagePath: imagePath,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return time.Time{}, err
	}

	return record.CreatedAt, nil
}

func (s *Service) ListForUser(
	ctx context.Context,
	userID string,
) ([]Entry, error) {
	return s.repo.ListByUser(ctx, userID)
}
