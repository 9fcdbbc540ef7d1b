package pdfgen

import (
	"bytes"
	"testing"
	"time"
)

func TestRenderCertificate(t *testing.T) {
	data := CertificateData{
		Number:           "CERT-2025-000042",
		VerificationCode: "a1b2c3d4e5f6",
		TraineeName:      "Marie Dupont",
		FormationTitle:   "Initiation au développement web",
		DurationLabel:    "7h30",
		SessionStart:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		SessionEnd:       time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		IssuedAt:         time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		VerifyURL:        "https://eprofos.fr/api/v1/certificates/verify/a1b2c3d4e5f6",
	}

	out, err := RenderCertificate(data)
	if err != nil {
		t.Fatalf("RenderCertificate() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("RenderCertificate() output does not start with a PDF header")
	}
	if len(out) < 1000 {
		t.Errorf("RenderCertificate() output is %d bytes, expected a full page", len(out))
	}
}

func TestRenderLegalDocument(t *testing.T) {
	data := LegalDocumentData{
		Title:       "Règlement intérieur",
		Content:     "Article 1\n\nLe présent règlement s'applique à tous les stagiaires.\n\nArticle 2\n\nLes horaires de formation sont fixés par EPROFOS.",
		Version:     3,
		PublishedAt: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
	}

	out, err := RenderLegalDocument(data)
	if err != nil {
		t.Fatalf("RenderLegalDocument() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("RenderLegalDocument() output does not start with a PDF header")
	}
	if len(out) < 1000 {
		t.Errorf("RenderLegalDocument() output is %d bytes, expected a full page", len(out))
	}
}
