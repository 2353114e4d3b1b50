// PlantDiseaseDetector | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khnychenkoav/PlantDiseaseDetector/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

// UserInfo is the slice of the user aggregate the auth flow needs.
type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	Create(
		ctx context.Context,
		name, email, passwordHash string,
	) (*UserInfo, error)
}

type Service struct {
	users UserProvider
	jwt   *JWTManager
}

func NewService(users UserProvider, jwt *JWTManager) *Service {
	return &Service{
		users: users,
		jwt:   jwt,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*RegisterResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &RegisterResponse{
		Email: user.Email,
		Name:  user.Name,
	}, nil
}

// Login returns a signed session token. Unknown email and wrong
// password are indistinguishable to the caller: same error, same cost.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.VerifyPasswordTimingSafe(req.Password, nil)
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, fmt.Errorf("get user: %w", err)
	}

	if !core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.Issue(user.ID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}

	return token, expiresAt, nil
}
