package auth

import "errors"

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUsernameTaken          = errors.New("username already taken")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidCredentials     = errors.New("incorrect username/email or password")
	ErrAccountDeactivated     = errors.New("account is deactivated")
	ErrInvalidResetToken      = errors.New("invalid or expired reset token")
	ErrInvalidFileType        = errors.New("invalid file type")
	ErrFileTooLarge           = errors.New("file too large")
	ErrFailedToUploadFile     = errors.New("failed to upload file")
)
