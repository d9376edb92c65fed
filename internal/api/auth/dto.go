package auth

import "time"

type RegisterRequest struct {
	FullName    string `json:"full_name" validate:"required,min=3,max=100"`
	Username    string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,e164"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female other"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type UserProfile struct {
	ID              string     `json:"id"`
	FullName        string     `json:"full_name"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	PhoneNumber     string     `json:"phone_number,omitempty"`
	Gender          string     `json:"gender,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	ProfilePhotoURL string     `json:"profile_photo_url,omitempty"`
	DateOfBirth     *string    `json:"date_of_birth,omitempty"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresAt   int64       `json:"expires_at"`
	User        UserProfile `json:"user"`
}

type MeResponse struct {
	UserProfile
	TotalScans int `json:"total_scans"`
}

type UpdateProfilePhotoResponse struct {
	ProfilePhotoURL string `json:"profile_photo_url"`
}
