package screeningHandler

import (
	"DermAssist/internal/api/screening"
	"DermAssist/internal/entity"
	contextPkg "DermAssist/pkg/context"
	"DermAssist/pkg/handlerUtil"
	jwtPkg "DermAssist/pkg/jwt"
	"DermAssist/pkg/log"
	"DermAssist/pkg/response"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *ScreeningHandler) HandlePredict(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing prediction request")

	file, err := ctx.FormFile("file")
	if err != nil {
		return errHandler.Handle(ctx, requestID, response.NewError(http.StatusBadRequest, "No file uploaded. Use 'file' as the form field name."), ctx.Path(), "get_form_file")
	}

	if err := h.utils.ValidateUploadSize(file); err != nil {
		return errHandler.Handle(ctx, requestID, response.NewError(http.StatusBadRequest, "File too large. Maximum size is 5MB."), ctx.Path(), "validate_upload_size")
	}

	fileContent, err := file.Open()
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_file")
	}
	defer fileContent.Close()

	data, err := io.ReadAll(fileContent)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_file")
	}

	upload := screening.ScanUpload{
		Data:        data,
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
	}

	var user *entity.UserLoginData
	if userData, err := jwtPkg.GetUserLoginData(ctx); err == nil {
		user = &userData
	}

	result, err := h.screeningService.Predict(c, upload, user)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "predict")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"diagnosis":  result.Diagnosis,
			"risk_level": result.RiskLevel,
		}).Info("Prediction successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *ScreeningHandler) HandleGetScans(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	scans, err := h.screeningService.GetUserScans(c, userData.ID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_user_scans")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, scans)
	}
}
