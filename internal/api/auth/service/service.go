package authService

import (
	"DermAssist/internal/api/auth"
	authRepository "DermAssist/internal/api/auth/repository"
	screeningRepository "DermAssist/internal/api/screening/repository"
	"DermAssist/pkg/bcrypt"
	"DermAssist/pkg/redis"
	"DermAssist/pkg/s3"
	"DermAssist/pkg/smtp"
	"DermAssist/pkg/utils"
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAuthService interface {
	Register(ctx context.Context, req auth.RegisterRequest) (auth.LoginResponse, error)
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	Logout(ctx context.Context, accessToken string) error
	ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error
	GetProfile(ctx context.Context, userID string) (auth.MeResponse, error)
	UpdateProfilePhoto(ctx context.Context, userID string, file *multipart.FileHeader) (auth.UpdateProfilePhotoResponse, error)
}

type authService struct {
	log           *logrus.Logger
	repo          authRepository.Repository
	screeningRepo screeningRepository.Repository
	smtpMailer    smtp.ItfSmtp
	redisServer   redis.IRedis
	s3Client      s3.ItfS3
	bcryptUtils   bcrypt.IBcrypt
	utils         utils.IUtils
}

func New(
	log *logrus.Logger,
	repo authRepository.Repository,
	screeningRepo screeningRepository.Repository,
	smtpMailer smtp.ItfSmtp,
	redisServer redis.IRedis,
	s3Client s3.ItfS3,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
) IAuthService {
	return &authService{
		log:           log,
		repo:          repo,
		screeningRepo: screeningRepo,
		smtpMailer:    smtpMailer,
		redisServer:   redisServer,
		s3Client:      s3Client,
		bcryptUtils:   bcryptUtils,
		utils:         utils,
	}
}
