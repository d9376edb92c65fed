package authService

import (
	"DermAssist/internal/api/auth"
	contextPkg "DermAssist/pkg/context"
	"DermAssist/pkg/redis"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const resetTokenTTL = 30 * time.Minute

// ForgotPassword succeeds silently for unknown emails so the endpoint does
// not reveal which addresses have an account.
func (s *authService) ForgotPassword(c context.Context, req auth.ForgotPasswordRequest) error {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return err
	}

	user, err := repo.Users.GetUserByEmail(c, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Debug("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	resetToken := uuid.NewString()

	if err := s.redisServer.SetResetToken(c, resetToken, user.ID, resetTokenTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store reset token")
		return err
	}

	if err := s.smtpMailer.SendResetEmail(user.Email, user.FullName, resetToken); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    user.ID,
			"error":      err.Error(),
		}).Error("Failed to send reset email")
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("Password reset email sent")

	return nil
}

func (s *authService) ResetPassword(c context.Context, req auth.ResetPasswordRequest) error {
	requestID := contextPkg.GetRequestID(c)

	userID, err := s.redisServer.GetResetToken(c, req.Token)
	if err != nil {
		if errors.Is(err, redis.ErrTokenNotFound) {
			return auth.ErrInvalidResetToken
		}
		return err
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return err
	}

	if err := repo.Users.UpdatePassword(c, userID, hashedPassword); err != nil {
		return err
	}

	if err := s.redisServer.DeleteResetToken(c, req.Token); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to delete used reset token")
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    userID,
	}).Info("Password reset completed")

	return nil
}
