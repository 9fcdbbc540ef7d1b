// Package pdfgen renders the PDF documents the platform hands out:
// completion certificates and published legal documents.
package pdfgen

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// CertificateData carries everything printed on a completion certificate.
type CertificateData struct {
	Number           string
	VerificationCode string
	TraineeName      string
	FormationTitle   string
	DurationLabel    string
	SessionStart     time.Time
	SessionEnd       time.Time
	IssuedAt         time.Time
	VerifyURL        string
}

// RenderCertificate renders a landscape A4 completion certificate.
func RenderCertificate(data CertificateData) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificat de réalisation "+data.Number, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()

	// frame
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(29, 78, 216)
	pdf.Rect(10, 10, pageW-20, 190, "D")

	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetTextColor(29, 78, 216)
	pdf.SetY(30)
	pdf.CellFormat(0, 14, tr("CERTIFICAT DE RÉALISATION"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(6)
	pdf.CellFormat(0, 8, tr("EPROFOS - École professionnelle de formation spécialisée"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, tr("certifie que"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
	pdf.CellFormat(0, 12, tr(data.TraineeName), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(4)
	pdf.CellFormat(0, 8, tr("a suivi la formation"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, tr(data.FormationTitle), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(60, 60, 60)
	period := fmt.Sprintf("du %s au %s — durée : %s",
		data.SessionStart.Format("02/01/2006"),
		data.SessionEnd.Format("02/01/2006"),
		data.DurationLabel)
	pdf.CellFormat(0, 8, tr(period), "", 1, "C", false, 0, "")

	pdf.SetY(160)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Certificat n° %s, délivré le %s", data.Number, data.IssuedAt.Format("02/01/2006"))), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Vérifiable en ligne : %s", data.VerifyURL)), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, tr("Document établi conformément au référentiel national qualité (Qualiopi)"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
