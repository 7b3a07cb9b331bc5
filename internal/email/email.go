package email

import (
	"fmt"
	"strings"

	"pulsecheck-backend/internal/models"

	"github.com/labstack/echo/v4"
	resend "github.com/resend/resend-go/v2"
)

// EmailClient is an interface for sending emails
type EmailClient interface {
	SendAsync(toEmail, subject, htmlBody string)
	SendWelcomeEmail(user *models.User)
}

const welcomeTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #1f2933;">
	<h2>Welcome to PulseCheck</h2>
	<p>Hi {email},</p>
	<p>Your account is ready. Sign in to submit feedback and follow how
	sentiment develops across branches and feedback types.</p>
	<p>The PulseCheck team</p>
</body>
</html>`

// ResendEmailClient implements EmailClient using the Resend service
type ResendEmailClient struct {
	client        *resend.Client
	defaultSender string
	logger        echo.Logger
}

// NewResendEmailClient creates a new ResendEmailClient
func NewResendEmailClient(client *resend.Client, defaultSender string, logger echo.Logger) *ResendEmailClient {
	return &ResendEmailClient{
		client:        client,
		defaultSender: defaultSender,
		logger:        logger,
	}
}

// SendAsync sends an email asynchronously
func (c *ResendEmailClient) SendAsync(toEmail, subject, htmlBody string) {
	if c == nil || c.client == nil {
		fmt.Println("Resend client not initialized, skipping email.")
		return
	}

	if c.defaultSender == "" {
		c.logger.Errorf("Resend default sender not configured, skipping email.")
		return
	}

	go func() {
		params := &resend.SendEmailRequest{
			From:    c.defaultSender,
			To:      []string{toEmail},
			Subject: subject,
			Html:    htmlBody,
		}

		_, err := c.client.Emails.Send(params)
		if err != nil {
			c.logger.Errorf("Failed to send email to %s (Subject: %s): %v", toEmail, subject, err)
		} else {
			c.logger.Infof("Email sent successfully to %s (Subject: %s)", toEmail, subject)
		}
	}()
}

// SendWelcomeEmail sends a welcome email to a new user
func (c *ResendEmailClient) SendWelcomeEmail(user *models.User) {
	if user == nil {
		c.logger.Error("Cannot send welcome email to nil user")
		return
	}

	htmlBody := strings.ReplaceAll(welcomeTemplate, "{email}", user.Email)

	c.SendAsync(user.Email, "Welcome to PulseCheck", htmlBody)
}
