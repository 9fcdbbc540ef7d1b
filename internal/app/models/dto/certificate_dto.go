package dto

import "time"

// IssueCertificateRequest issues a certificate for an attended registration
type IssueCertificateRequest struct {
	RegistrationID int64 `json:"registrationId" binding:"required,gt=0"`
}

// CertificateVerification is the public view returned by the verification
// endpoint. It deliberately exposes no personal data beyond the trainee name
// printed on the certificate itself.
type CertificateVerification struct {
	Valid          bool      `json:"valid"`
	Number         string    `json:"number,omitempty"`
	TraineeName    string    `json:"traineeName,omitempty"`
	FormationTitle string    `json:"formationTitle,omitempty"`
	IssuedAt       time.Time `json:"issuedAt,omitempty"`
	Revoked        bool      `json:"revoked,omitempty"`
}
