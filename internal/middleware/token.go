package middleware

import (
	"DermAssist/internal/entity"
	contextPkg "DermAssist/pkg/context"
	jwtPkg "DermAssist/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	user, err := m.authenticate(ctx)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err.Error(),
		}).Warn("Authentication failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	ctx.Locals("user", user)
	return ctx.Next()
}

// NewOptionalTokenMiddleware authenticates the caller when a bearer token is
// present but lets anonymous requests through without user data.
func (m *middleware) NewOptionalTokenMiddleware(ctx *fiber.Ctx) error {
	if ctx.Get("Authorization") == "" {
		return ctx.Next()
	}

	user, err := m.authenticate(ctx)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": err.Error(),
		}).Debug("Ignoring invalid bearer token on optional-auth route")
		return ctx.Next()
	}

	ctx.Locals("user", user)
	return ctx.Next()
}

func (m *middleware) authenticate(ctx *fiber.Ctx) (entity.UserLoginData, error) {
	rawToken, err := jwtPkg.ExtractTokenHeader(ctx)
	if err != nil {
		return entity.UserLoginData{}, err
	}

	blacklisted, err := m.redisServer.IsTokenBlacklisted(contextPkg.FromFiberCtx(ctx), rawToken)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to check token blacklist")
	}
	if blacklisted {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		return entity.UserLoginData{}, err
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	if claims["id"] == nil || claims["email"] == nil || claims["username"] == nil {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	return entity.UserLoginData{
		ID:       claims["id"].(string),
		Email:    claims["email"].(string),
		Username: claims["username"].(string),
	}, nil
}
