package pdfgen

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// LegalDocumentData carries the fields printed on a legal document PDF.
type LegalDocumentData struct {
	Title       string
	Content     string
	Version     int
	PublishedAt time.Time
}

// RenderLegalDocument renders a portrait A4 PDF of a published legal
// document. Content paragraphs are separated by blank lines.
func RenderLegalDocument(data LegalDocumentData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(data.Title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, tr(data.Title), "", "C", false)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	meta := fmt.Sprintf("Version %d — publiée le %s", data.Version, data.PublishedAt.Format("02/01/2006"))
	pdf.CellFormat(0, 8, tr(meta), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, paragraph := range strings.Split(data.Content, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		pdf.MultiCell(0, 6, tr(paragraph), "", "J", false)
		pdf.Ln(3)
	}

	pdf.SetY(-20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, tr("EPROFOS — document généré automatiquement, seule la version publiée fait foi"), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render legal document PDF: %w", err)
	}
	return buf.Bytes(), nil
}
