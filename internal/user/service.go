// PlantDiseaseDetector | 2026
// service.go

package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/auth"
	"github.com/khnychenkoav/PlantDiseaseDetector/internal/middleware"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetByEmail looks the account up by the exact submitted email. Emails
// are case-sensitive identifiers here, never folded.
func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Create registers a new account. Fresh accounts hold only the is_user
// flag; admin flags are granted later via the role-change operation.
func (s *Service) Create(
	ctx context.Context,
	name, email, passwordHash string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		IsUser:       true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) ChangeRole(
	ctx context.Context,
	req ChangeRoleRequest,
) (*User, error) {
	return s.repo.UpdateRoles(ctx, req.Email, req.Patch())
}

// LoadSessionUser resolves a token subject into the session identity
// the authorization gate works with.
func (s *Service) LoadSessionUser(
	ctx context.Context,
	id string,
) (*middleware.SessionUser, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &middleware.SessionUser{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		IsUser:       user.IsUser,
		IsAdmin:      user.IsAdmin,
		IsSuperAdmin: user.IsSuperAdmin,
	}, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
	}
}

var (
	_ auth.UserProvider     = (*Service)(nil)
	_ middleware.UserLoader = (*Service)(nil)
)
