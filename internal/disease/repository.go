// PlantDiseaseDetector | 2026
// repository.go

package disease

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/core"
)

type Repository interface {
	Create(ctx context.Context, d *Disease) error
	GetByName(ctx context.Context, name string) (*Disease, error)
	List(ctx context.Context) ([]Disease, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Disease) error {
	query := `
		INSERT INTO diseases (id, name, reason, recommendations)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &d.CreatedAt, query,
		d.ID,
		d.Name,
		d.Reason,
		d.Recommendations,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create disease: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create disease: %w", err)
	}

	return nil
}

func (r *repository) GetByName(
	ctx context.Context,
	name string,
) (*Disease, error) {
	query := `
		SELECT id, name,
		       COALESCE(reason, '') AS reason,
		       COALESCE(recommendations, '') AS recommendations,
		       created_at
		FROM diseases
		WHERE name = $1`

	var d Disease
	err := r.db.GetContext(ctx, &d, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get disease by name: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get disease by name: %w", err)
	}

	return &d, nil
}

func (r *repository) List(ctx context.Context) ([]Disease, error) {
	query := `
		SELECT id, name,
		       COALESCE(reason, '') AS reason,
		       COALESCE(recommendations, '') AS recommendations,
		       created_at
		FROM diseases
		ORDER BY name`

	var diseases []Disease
	if err := r.db.SelectContext(ctx, &diseases, query); err != nil {
		return nil, fmt.Errorf("list diseases: %w", err)
	}

	return diseases, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
