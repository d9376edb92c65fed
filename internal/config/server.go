package config

import (
	"DermAssist/database/postgres"
	authHandler "DermAssist/internal/api/auth/handler"
	authRepository "DermAssist/internal/api/auth/repository"
	authService "DermAssist/internal/api/auth/service"
	screeningHandler "DermAssist/internal/api/screening/handler"
	screeningRepository "DermAssist/internal/api/screening/repository"
	screeningService "DermAssist/internal/api/screening/service"
	"DermAssist/internal/middleware"
	"DermAssist/pkg/bcrypt"
	"DermAssist/pkg/classifier"
	"DermAssist/pkg/redis"
	"DermAssist/pkg/s3"
	"DermAssist/pkg/smtp"
	"DermAssist/pkg/storage"
	"DermAssist/pkg/utils"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"os"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	redisServer redis.IRedis
	smtpMailer  smtp.ItfSmtp
	model       classifier.IClassifier
	s3Client    s3.ItfS3
	uploadStore storage.ItfStorage
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithClassifier(model classifier.IClassifier) ServerOption {
	return func(s *Server) error {
		s.model = model
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.redisServer == nil {
			return fmt.Errorf("redis must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, s.redisServer)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithUploadStorage() ServerOption {
	return func(s *Server) error {
		store, err := storage.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize upload storage: %v", err)
			}
			return fmt.Errorf("failed to create upload storage: %w", err)
		}
		s.uploadStore = store
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Screening domain
	screeningRepo := screeningRepository.New(s.db, s.log)
	screeningServices := screeningService.New(s.log, screeningRepo, s.model, s.uploadStore, s.utils)
	screeningHandlers := screeningHandler.New(s.log, s.validator, s.middleware, screeningServices, s.utils)

	// Auth domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, screeningRepo, s.smtpMailer, s.redisServer, s.s3Client, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, screeningHandlers, authHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Static(storage.PublicPathPrefix, s.uploadStore.Dir())

	for _, h := range s.handlers {
		h.Start(s.engine)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message":      "DermAssist backend is running.",
			"model_loaded": s.model.Ready(),
		})
	})

	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"status":       "ok",
			"model_loaded": s.model.Ready(),
		})
	})
}
