package models

import "time"

// Certificate is a completion certificate issued for an attended
// registration. The verification code is the public handle used by the
// verification endpoint; the number is the human-facing reference printed
// on the PDF.
type Certificate struct {
	ID               int64     `json:"id"`
	RegistrationID   int64     `json:"registrationId"`
	Number           string    `json:"number"`
	VerificationCode string    `json:"verificationCode"`
	IssuedAt         time.Time `json:"issuedAt"`
	Revoked          bool      `json:"revoked"`
	CreatedAt        time.Time `json:"createdAt"`

	Registration *SessionRegistration `json:"registration,omitempty"`
}
