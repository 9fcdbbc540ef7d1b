package models

import "time"

// LegalDocumentType identifies the Qualiopi-mandated document kinds
type LegalDocumentType string

const (
	DocInternalRegulation      LegalDocumentType = "INTERNAL_REGULATION"
	DocStudyRegulation         LegalDocumentType = "STUDY_REGULATION"
	DocTrainingTerms           LegalDocumentType = "TRAINING_TERMS"
	DocAccessibilityPolicy     LegalDocumentType = "ACCESSIBILITY_POLICY"
	DocAccessibilityProcedures LegalDocumentType = "ACCESSIBILITY_PROCEDURES"
)

// ValidLegalDocumentType reports whether t is one of the known types.
func ValidLegalDocumentType(t LegalDocumentType) bool {
	switch t {
	case DocInternalRegulation, DocStudyRegulation, DocTrainingTerms,
		DocAccessibilityPolicy, DocAccessibilityProcedures:
		return true
	}
	return false
}

// LegalDocumentStatus is the publication status of a legal document
type LegalDocumentStatus string

const (
	DocDraft     LegalDocumentStatus = "DRAFT"
	DocPublished LegalDocumentStatus = "PUBLISHED"
	DocArchived  LegalDocumentStatus = "ARCHIVED"
)

// LegalDocument is a versioned compliance document. At most one PUBLISHED
// row exists per type; publishing a new version archives the previous one.
type LegalDocument struct {
	ID          int64               `json:"id"`
	Type        LegalDocumentType   `json:"type"`
	Title       string              `json:"title"`
	Content     string              `json:"content"`
	Version     int                 `json:"version"`
	Status      LegalDocumentStatus `json:"status"`
	PublishedAt *time.Time          `json:"publishedAt,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}
