package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/oguzk/labsessions/internal/app/models"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendRegistrationConfirmation(toEmail, toName string, session *models.PracticalSession) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendRegistrationConfirmation sends the session details to a freshly
// registered student.
func (s *EmailServiceImpl) SendRegistrationConfirmation(toEmail, toName string, session *models.PracticalSession) error {
	// If username or password is empty, log the email instead (for development only)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("practical", session.Name).
			Msg("SMTP credentials not configured - confirmation email not sent.")
		return nil
	}

	subject := "Hands On Practical"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Registration confirmed</h2>
				<p>Hello %s,</p>
				<p>You are registered for the practical session <strong>%s</strong>.</p>
				<ul>
					<li>Start date: %s</li>
					<li>End date: %s</li>
					<li>Start time: %s</li>
					<li>End time: %s</li>
					<li>Venue: %s</li>
				</ul>
				<p>Please arrive a few minutes early and bring your student card.</p>
				<p>Best regards,<br>The Practicals Team</p>
			</div>
		</body>
		</html>
	`, toName, session.Name,
		session.StartAt.Format("02-01-2006"),
		session.EndAt.Format("02-01-2006"),
		session.StartAt.Format("15:04:05"),
		session.EndAt.Format("15:04:05"),
		session.Venue)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		return s.sendWithTLS(serverAddress, auth, toEmail, message)
	}

	if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, []byte(message)); err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// sendWithTLS connects over an explicit TLS socket before speaking SMTP.
func (s *EmailServiceImpl) sendWithTLS(serverAddress string, auth smtp.Auth, toEmail, message string) error {
	tlsConfig := &tls.Config{
		ServerName: s.config.Host,
	}

	conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
