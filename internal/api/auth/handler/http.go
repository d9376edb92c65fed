package authHandler

import (
	authService "DermAssist/internal/api/auth/service"
	"DermAssist/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	log         *logrus.Logger
	authService authService.IAuthService
	validator   *validator.Validate
	middleware  middleware.Middleware
}

func New(
	log *logrus.Logger,
	as authService.IAuthService,
	validator *validator.Validate,
	middleware middleware.Middleware,
) *AuthHandler {
	return &AuthHandler{
		log:         log,
		authService: as,
		validator:   validator,
		middleware:  middleware,
	}
}

func (h *AuthHandler) Start(srv fiber.Router) {
	auth := srv.Group("/auth")
	auth.Post("/register", h.middleware.NewRateLimiter, h.Register)
	auth.Post("/login", h.middleware.NewRateLimiter, h.Login)
	auth.Post("/logout", h.middleware.NewTokenMiddleware, h.Logout)
	auth.Post("/forgot-password", h.middleware.NewRateLimiter, h.ForgotPassword)
	auth.Post("/reset-password", h.middleware.NewRateLimiter, h.ResetPassword)

	user := srv.Group("/user")
	user.Get("/me", h.middleware.NewTokenMiddleware, h.GetMe)
	user.Put("/profile-photo", h.middleware.NewTokenMiddleware, h.UpdateProfilePhoto)
}
