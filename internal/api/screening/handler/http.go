package screeningHandler

import (
	screeningService "DermAssist/internal/api/screening/service"
	"DermAssist/internal/middleware"
	"DermAssist/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ScreeningHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	screeningService screeningService.IScreeningService
	utils            utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ss screeningService.IScreeningService,
	utils utils.IUtils,
) *ScreeningHandler {
	return &ScreeningHandler{
		log:              log,
		validator:        validator,
		middleware:       middleware,
		screeningService: ss,
		utils:            utils,
	}
}

func (h *ScreeningHandler) Start(srv fiber.Router) {
	srv.Post("/predict", h.middleware.NewOptionalTokenMiddleware, h.HandlePredict)

	user := srv.Group("/user")
	user.Get("/scans", h.middleware.NewTokenMiddleware, h.HandleGetScans)
}
