package authService

import (
	"DermAssist/internal/api/auth"
	contextPkg "DermAssist/pkg/context"
	jwtPkg "DermAssist/pkg/jwt"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *authService) Login(c context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	user, err := repo.Users.GetUserByUsernameOrEmail(c, req.Identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := s.bcryptUtils.ComparePassword(user.Password, req.Password); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !user.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountDeactivated
	}

	now := time.Now()
	if err := repo.Users.UpdateLastLogin(c, user.ID, now); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    user.ID,
			"error":      err.Error(),
		}).Warn("Failed to update last login timestamp")
	} else {
		user.LastLogin = now
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
	}).Info("User logged in")

	return auth.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        makeProfile(user),
	}, nil
}

// Logout blacklists the token until its own expiry so the Redis entry
// disappears exactly when the token would have stopped working anyway.
func (s *authService) Logout(c context.Context, accessToken string) error {
	requestID := contextPkg.GetRequestID(c)

	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_ACCESS_TOKEN_SECRET")), nil
	})
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("unexpected token claims")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return errors.New("token has no expiry")
	}

	if err := s.redisServer.BlacklistToken(c, accessToken, time.Until(exp.Time)); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to blacklist token")
		return err
	}

	return nil
}
