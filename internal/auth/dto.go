// PlantDiseaseDetector | 2026
// dto.go

package auth

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=7,max=20"`
}

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=3,max=20"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=7,max=20"`
}

type RegisterResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenResponse keeps a refresh_token field for client compatibility.
// Refresh tokens are not issued; the field is always null.
type TokenResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken *string `json:"refresh_token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
