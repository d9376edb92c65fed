package authService

import (
	"DermAssist/internal/api/auth"
	"DermAssist/internal/entity"
	contextPkg "DermAssist/pkg/context"
	jwtPkg "DermAssist/pkg/jwt"
	"DermAssist/pkg/utils"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const accessTokenTTL = 24 * time.Hour

func (s *authService) Register(c context.Context, req auth.RegisterRequest) (auth.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	now := time.Now()

	userID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return auth.LoginResponse{}, err
	}

	var dateOfBirth time.Time
	if req.DateOfBirth != "" {
		dateOfBirth, err = time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return auth.LoginResponse{}, fmt.Errorf("invalid date_of_birth: %w", err)
		}
	}

	user := entity.User{
		ID:          userID,
		FullName:    req.FullName,
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		Password:    hashedPassword,
		Role:        "user",
		IsActive:    true,
		IsVerified:  false,
		DateOfBirth: dateOfBirth,
		CreatedAt:   now,
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	if err := repo.Users.CreateUser(c, user); err != nil {
		return auth.LoginResponse{}, err
	}

	accessToken, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	}, accessTokenTTL)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("User registered")

	return auth.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        makeProfile(user),
	}, nil
}

func (s *authService) GetProfile(c context.Context, userID string) (auth.MeResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return auth.MeResponse{}, err
	}

	user, err := repo.Users.GetUserByID(c, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.MeResponse{}, auth.ErrUserNotFound
		}
		return auth.MeResponse{}, err
	}

	scanRepo, err := s.screeningRepo.NewClient(false)
	if err != nil {
		return auth.MeResponse{}, err
	}

	totalScans, err := scanRepo.Predictions.CountByUserID(c, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to count user scans")
		return auth.MeResponse{}, err
	}

	return auth.MeResponse{
		UserProfile: makeProfile(user),
		TotalScans:  totalScans,
	}, nil
}

func (s *authService) UpdateProfilePhoto(c context.Context, userID string, file *multipart.FileHeader) (auth.UpdateProfilePhotoResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	if err := s.utils.ValidateUploadSize(file); err != nil {
		if errors.Is(err, utils.ErrFileTooLarge) {
			return auth.UpdateProfilePhotoResponse{}, auth.ErrFileTooLarge
		}
		return auth.UpdateProfilePhotoResponse{}, err
	}

	switch s.utils.FileExtension(file.Filename) {
	case "jpg", "jpeg", "png":
	default:
		return auth.UpdateProfilePhotoResponse{}, auth.ErrInvalidFileType
	}

	photoURL, err := s.s3Client.UploadFile(file)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to upload profile photo")
		return auth.UpdateProfilePhotoResponse{}, auth.ErrFailedToUploadFile
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return auth.UpdateProfilePhotoResponse{}, err
	}

	if err := repo.Users.UpdateProfilePhoto(c, userID, photoURL); err != nil {
		return auth.UpdateProfilePhotoResponse{}, err
	}

	return auth.UpdateProfilePhotoResponse{ProfilePhotoURL: photoURL}, nil
}

func makeProfile(user entity.User) auth.UserProfile {
	profile := auth.UserProfile{
		ID:              user.ID,
		FullName:        user.FullName,
		Username:        user.Username,
		Email:           user.Email,
		PhoneNumber:     user.PhoneNumber,
		Gender:          user.Gender,
		Bio:             user.Bio,
		ProfilePhotoURL: user.ProfilePhotoURL,
		CreatedAt:       user.CreatedAt,
	}

	if !user.DateOfBirth.IsZero() {
		dob := user.DateOfBirth.Format("2006-01-02")
		profile.DateOfBirth = &dob
	}

	if !user.LastLogin.IsZero() {
		lastLogin := user.LastLogin
		profile.LastLogin = &lastLogin
	}

	return profile
}
