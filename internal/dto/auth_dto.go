package dto

import "github.com/neighborlyhelp/backend/internal/models"

type GoogleSignInRequest struct {
	Credential string `json:"credential"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// UpdateUserRequest carries a partial profile edit; nil fields are left
// untouched.
type UpdateUserRequest struct {
	Name              *string `json:"name,omitempty"`
	Address           *string `json:"address,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	Avatar            *string `json:"avatar,omitempty"`
	PreferredLanguage *string `json:"preferred_language,omitempty"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Requests  int    `json:"requests"`
}
