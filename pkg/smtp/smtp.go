package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

type ItfSmtp interface {
	SendResetEmail(userEmail string, fullName string, resetToken string) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	auth := smtpPkg.PlainAuth("", mail, password, "smtp.gmail.com")

	return &smtp{auth: auth, mail: mail}
}

func (s *smtp) SendResetEmail(userEmail string, fullName string, resetToken string) error {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, resetToken)

	message := []byte(fmt.Sprintf(
		"To: %s\r\nSubject: Reset your DermAssist password\r\n\r\n"+
			"Hi %s,\r\n\r\n"+
			"We received a request to reset your password. Open the link below to set a new one. "+
			"The link is valid for 30 minutes.\r\n\r\n%s\r\n\r\n"+
			"If you did not request a password reset, you can safely ignore this email.",
		userEmail, fullName, resetLink))

	to := []string{userEmail}

	if err := smtpPkg.SendMail("smtp.gmail.com:587", s.auth, s.mail, to, message); err != nil {
		return err
	}

	return nil
}
