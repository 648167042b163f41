package dto

import (
	"time"

	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/service"
)

// CredentialsRequest payload for register and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// SessionResponse wraps a user and its token.
type SessionResponse struct {
	User UserResponse `json:"user"`
	Auth AuthResponse `json:"auth"`
}

// NewSessionResponse maps a service session.
func NewSessionResponse(s *service.Session) SessionResponse {
	return SessionResponse{
		User: NewUserResponse(s.User),
		Auth: AuthResponse{Token: s.Token, ExpiresAt: s.ExpiresAt},
	}
}

// NewUserResponse maps a user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}
