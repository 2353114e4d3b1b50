// PlantDiseaseDetector | 2026
// seeder.go

package disease

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/core"
)

type SeedRecord struct {
	Name           string `json:"name"`
	Reason         string `json:"reason"`
	Recommendation string `json:"recommendation"`
}

type SeedStatus string

const (
	SeedCreated   SeedStatus = "created"
	SeedDuplicate SeedStatus = "duplicate"
	SeedFailed    SeedStatus = "failed"
)

// SeedResult is the tagged outcome for one catalog record. Failures
// carry their reason instead of vanishing into a catch-all.
type SeedResult struct {
	Name   string
	Status SeedStatus
	Err    error
}

type SeedSummary struct {
	Created    int
	Duplicates int
	Failed     int
	Total      int
	Results    []SeedResult
}

// SeedCatalog bulk-loads the reference catalog from a JSON file. An
// unreadable or malformed source fails the whole operation with no
// partial counts; once iteration starts, one bad record never blocks
// the rest. Duplicate checks run against the live store, so a name
// created earlier in the same batch counts as a duplicate later on.
func (s *Service) SeedCatalog(
	ctx context.Context,
	catalogPath string,
) (*SeedSummary, error) {
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("read seed catalog: %w", err)
	}

	var records []SeedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}

	summary := &SeedSummary{
		Total:   len(records),
		Results: make([]SeedResult, 0, len(records)),
	}

	for _, record := range records {
		result := s.seedOne(ctx, record)
		summary.Results = append(summary.Results, result)

		switch result.Status {
		case SeedCreated:
			summary.Created++
		case SeedDuplicate:
			summary.Duplicates++
		case SeedFailed:
			summary.Failed++
			slog.Warn("seed record failed",
				"name", record.Name,
				"error", result.Err,
			)
		}
	}

	return summary, nil
}

func (s *Service) seedOne(
	ctx context.Context,
	record SeedRecord,
) SeedResult {
	_, err := s.repo.GetByName(ctx, record.Name)
	if err == nil {
		return SeedResult{Name: record.Name, Status: SeedDuplicate}
	}
	if !errors.Is(err, core.ErrNotFound) {
		return SeedResult{Name: record.Name, Status: SeedFailed, Err: err}
	}

	d := &Disease{
		ID:              uuid.New().String(),
		Name:            record.Name,
		Reason:          record.Reason,
		Recommendations: record.Recommendation,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		// A concurrent seeder may have won the race on the unique name.
		if errors.Is(err, core.ErrDuplicateKey) {
			return SeedResult{Name: record.Name, Status: SeedDuplicate}
		}
		return SeedResult{Name: record.Name, Status: SeedFailed, Err: err}
	}

	return SeedResult{Name: record.Name, Status: SeedCreated}
}
