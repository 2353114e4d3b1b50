// PlantDiseaseDetector | 2026
// repository.go

package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/core"
)

type Repository interface {
	Create(ctx context.Context, record *History) error
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, record *History) error {
	query := `
		INSERT INTO history (id, user_id, disease_id, image_path)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &record.CreatedAt, query,
		record.ID,
		record.UserID,
		record.DiseaseID,
		record.ImagePath,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create history: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create history: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Entry, error) {
	query := `
		SELECT d.name AS disease_name,
		       COALESCE(d.reason, '') AS reason,
		       COALESCE(d.recommendations, '') AS recommendations,
		       h.image_path,
		       h.created_at
		FROM history h
		JOIN diseases d ON d.id = h.disease_id
		WHERE h.user_id = $1
		ORDER BY h.created_at DESC`

	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	return entries, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
