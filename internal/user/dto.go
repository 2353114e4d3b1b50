// PlantDiseaseDetector | 2026
// dto.go

package user

import (
	"time"
)

// ChangeRoleRequest patches role flags, keyed by email. Only the flags
// present in the payload change.
type ChangeRoleRequest struct {
	Email        string `json:"email" validate:"required,email,max=255"`
	IsUser       *bool  `json:"is_user,omitempty"`
	IsAdmin      *bool  `json:"is_admin,omitempty"`
	IsSuperAdmin *bool  `json:"is_super_admin,omitempty"`
}

func (r *ChangeRoleRequest) Patch() RolePatch {
	return RolePatch{
		IsUser:       r.IsUser,
		IsAdmin:      r.IsAdmin,
		IsSuperAdmin: r.IsSuperAdmin,
	}
}

// ProfileResponse is the full public projection of an account,
// credential excluded.
type ProfileResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	IsUser       bool      `json:"is_user"`
	IsAdmin      bool      `json:"is_admin"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

type PublicUserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func ToProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		IsUser:       u.IsUser,
		IsAdmin:      u.IsAdmin,
		IsSuperAdmin: u.IsSuperAdmin,
		CreatedAt:    u.CreatedAt,
	}
}

func ToPublicUserList(users []User) []PublicUserResponse {
	responses := make([]PublicUserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, PublicUserResponse{
			Email: u.Email,
			Name:  u.Name,
		})
	}
	return responses
}
