package dto

// CreateLegalDocumentRequest creates a new draft version of a document type
type CreateLegalDocumentRequest struct {
	Type    string `json:"type" binding:"required,oneof=INTERNAL_REGULATION STUDY_REGULATION TRAINING_TERMS ACCESSIBILITY_POLICY ACCESSIBILITY_PROCEDURES"`
	Title   string `json:"title" binding:"required,min=2,max=255"`
	Content string `json:"content" binding:"required"`
}

// UpdateLegalDocumentRequest updates a draft document
type UpdateLegalDocumentRequest struct {
	Title   string `json:"title" binding:"required,min=2,max=255"`
	Content string `json:"content" binding:"required"`
}
