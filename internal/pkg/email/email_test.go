package email

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// Without SMTP credentials the service logs the payload and reports success.
func TestSendWithoutCredentialsSucceeds(t *testing.T) {
	svc := NewService(SMTPConfig{
		FromName:  "EPROFOS",
		FromEmail: "noreply@eprofos.fr",
		BaseURL:   "http://localhost:8080",
	}, zerolog.Nop())

	expiresAt := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		send func() error
	}{
		{"verification", func() error {
			return svc.SendVerificationEmail("marie@example.fr", "Marie", "tok-123")
		}},
		{"password reset", func() error {
			return svc.SendPasswordResetEmail("marie@example.fr", "Marie", "tok-456")
		}},
		{"registration confirmation", func() error {
			return svc.SendRegistrationConfirmation("marie@example.fr", "Marie", "Initiation au développement web", expiresAt)
		}},
		{"needs analysis invitation", func() error {
			return svc.SendNeedsAnalysisInvitation("marie@example.fr", "Marie", "tok-789", expiresAt)
		}},
		{"certificate issued", func() error {
			return svc.SendCertificateIssued("marie@example.fr", "Marie", "CERT-2025-000001")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.send(); err != nil {
				t.Errorf("send() error = %v, want nil", err)
			}
		})
	}
}
