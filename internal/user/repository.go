// PlantDiseaseDetector | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRoles(ctx context.Context, email string, patch RolePatch) (*User, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash,
		                   is_user, is_admin, is_super_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsUser,
		user.IsAdmin,
		user.IsSuperAdmin,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, name, email, password_hash,
		       is_user, is_admin, is_super_admin,
		       created_at, updated_at
		FROM users
		WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `
		SELECT id, name, email, password_hash,
		       is_user, is_admin, is_super_admin,
		       created_at, updated_at
		FROM users
		WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, name, email, password_hash,
		       is_user, is_admin, is_super_admin,
		       created_at, updated_at
		FROM users
		ORDER BY created_at`

	var users []User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// UpdateRoles patches role flags inside a single transaction, reading
// the row locked so two concurrent role changes cannot interleave.
func (r *repository) UpdateRoles(
	ctx context.Context,
	email string,
	patch RolePatch,
) (*User, error) {
	var user User

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			SELECT id, name, email, password_hash,
			       is_user, is_admin, is_super_admin,
			       created_at, updated_at
			FROM users
			WHERE email = $1
			FOR UPDATE`

		err := tx.GetContext(ctx, &user, query, email)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update roles: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update roles: %w", err)
		}

		user.ApplyRolePatch(patch)

		update := `
			UPDATE users
			SET is_user = $2, is_admin = $3, is_super_admin = $4,
			    updated_at = NOW()
			WHERE email = $1
			RETURNING updated_at`

		if err := tx.GetContext(ctx, &user.UpdatedAt, update,
			email,
			user.IsUser,
			user.IsAdmin,
			user.IsSuperAdmin,
		); err != nil {
			return fmt.Errorf("update roles: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
