package auth

import "github.com/acebook/backend/internal/user"

type RegisterRequest struct {
	Name     string `json:"name,omitempty" example:"Rafael Souza"`
	Email    string `json:"email" binding:"required,email" example:"rafael@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"password123"`
	// Role selects the registration path: "admin" founds a new club,
	// anything else joins an existing one as a player.
	Role     string `json:"role,omitempty" example:"player"`
	ClubName string `json:"club_name,omitempty" example:"Clube Central"`
	ClubSlug string `json:"club_slug,omitempty" example:"clube-central"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"rafael@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"rafael@example.com"`
}

type ResetPasswordRequest struct {
	UID      string `json:"uid" binding:"required" example:"42"`
	Token    string `json:"token" binding:"required" example:"reset-token-123456"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"newpassword123"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         user.Profile `json:"user"`
}
