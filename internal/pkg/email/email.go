package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Service defines the interface for outgoing mail
type Service interface {
	SendVerificationEmail(toEmail, toName, token string) error
	SendPasswordResetEmail(toEmail, toName, token string) error
	SendRegistrationConfirmation(toEmail, toName, formationTitle string, startDate time.Time) error
	SendNeedsAnalysisInvitation(toEmail, toName, token string, expiresAt time.Time) error
	SendCertificateIssued(toEmail, toName, certificateNumber string) error
}

// SMTPConfig holds configuration for the SMTP relay
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // public base URL used to build links
}

type smtpService struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewService creates a new SMTP-backed mail service
func NewService(config SMTPConfig, logger zerolog.Logger) Service {
	return &smtpService{config: config, logger: logger}
}

// devLog logs the message instead of sending it when SMTP credentials are
// not configured, and reports whether it did so.
func (s *smtpService) devLog(toEmail, subject string, fields map[string]string) bool {
	if s.config.Username != "" && s.config.Password != "" {
		return false
	}
	ev := s.logger.Warn().Str("toEmail", toEmail).Str("subject", subject)
	for k, v := range fields {
		ev = ev.Str(k, v)
	}
	ev.Msg("SMTP credentials not configured - email not sent, payload logged for testing")
	return true
}

// SendVerificationEmail sends the account email-verification link
func (s *smtpService) SendVerificationEmail(toEmail, toName, token string) error {
	verificationURL := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", s.config.BaseURL, token)
	if s.devLog(toEmail, "verification", map[string]string{"token": token, "url": verificationURL}) {
		return nil
	}

	subject := "Vérifiez votre adresse email - EPROFOS"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2>Bienvenue chez EPROFOS !</h2>
				<p>Bonjour %s,</p>
				<p>Pour activer votre compte, merci de vérifier votre adresse email :</p>
				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #1d4ed8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px;">Vérifier mon email</a>
				</div>
				<p>Ce lien expire dans 24 heures.</p>
				<p>L'équipe EPROFOS</p>
			</div>
		</body>
		</html>
	`, toName, verificationURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendPasswordResetEmail sends the password reset link
func (s *smtpService) SendPasswordResetEmail(toEmail, toName, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.BaseURL, token)
	if s.devLog(toEmail, "password-reset", map[string]string{"token": token, "url": resetURL}) {
		return nil
	}

	subject := "Réinitialisation de votre mot de passe - EPROFOS"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Bonjour %s,</p>
				<p>Vous avez demandé la réinitialisation de votre mot de passe :</p>
				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #1d4ed8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px;">Réinitialiser</a>
				</div>
				<p>Si vous n'êtes pas à l'origine de cette demande, ignorez cet email.</p>
				<p>L'équipe EPROFOS</p>
			</div>
		</body>
		</html>
	`, toName, resetURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendRegistrationConfirmation confirms a session registration
func (s *smtpService) SendRegistrationConfirmation(toEmail, toName, formationTitle string, startDate time.Time) error {
	if s.devLog(toEmail, "registration-confirmation", map[string]string{"formation": formationTitle}) {
		return nil
	}

	subject := "Confirmation d'inscription - EPROFOS"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Bonjour %s,</p>
				<p>Nous avons bien reçu votre inscription à la formation <strong>%s</strong>, session du %s.</p>
				<p>Notre équipe reviendra vers vous pour confirmer votre place et les modalités pratiques.</p>
				<p>L'équipe EPROFOS</p>
			</div>
		</body>
		</html>
	`, toName, formationTitle, startDate.Format("02/01/2006"))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendNeedsAnalysisInvitation sends the tokenized needs-analysis form link
func (s *smtpService) SendNeedsAnalysisInvitation(toEmail, toName, token string, expiresAt time.Time) error {
	formURL := fmt.Sprintf("%s/needs-analysis/form/%s", s.config.BaseURL, token)
	if s.devLog(toEmail, "needs-analysis", map[string]string{"token": token, "url": formURL}) {
		return nil
	}

	subject := "Analyse de vos besoins de formation - EPROFOS"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Bonjour %s,</p>
				<p>Dans le cadre de la préparation de votre formation, merci de compléter notre questionnaire d'analyse des besoins :</p>
				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #1d4ed8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px;">Compléter le questionnaire</a>
				</div>
				<p>Ce lien est valable jusqu'au %s.</p>
				<p>L'équipe EPROFOS</p>
			</div>
		</body>
		</html>
	`, toName, formURL, expiresAt.Format("02/01/2006"))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendCertificateIssued notifies a trainee that their certificate is ready
func (s *smtpService) SendCertificateIssued(toEmail, toName, certificateNumber string) error {
	if s.devLog(toEmail, "certificate-issued", map[string]string{"number": certificateNumber}) {
		return nil
	}

	subject := "Votre certificat de réalisation - EPROFOS"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Bonjour %s,</p>
				<p>Votre certificat de réalisation <strong>%s</strong> est disponible dans votre espace personnel.</p>
				<p>L'équipe EPROFOS</p>
			</div>
		</body>
		</html>
	`, toName, certificateNumber)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email through the configured relay
func (s *smtpService) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, []byte(message)); err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	tlsConfig := &tls.Config{ServerName: s.config.Host}
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
