package dto

import "github.com/eprofos/eprofos-api/internal/app/models"

// CreateFormationRequest creates a catalog formation. The slug is derived
// from the title when omitted.
type CreateFormationRequest struct {
	Title         string  `json:"title" binding:"required,min=2,max=255"`
	Slug          string  `json:"slug" binding:"omitempty,slug"`
	Description   string  `json:"description" binding:"required"`
	Objectives    string  `json:"objectives"`
	Prerequisites string  `json:"prerequisites"`
	Category      string  `json:"category" binding:"required,max=100"`
	Level         string  `json:"level" binding:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	PriceCents    int64   `json:"priceCents" binding:"gte=0"`
}

// UpdateFormationRequest updates a catalog formation
type UpdateFormationRequest struct {
	Title         string `json:"title" binding:"required,min=2,max=255"`
	Slug          string `json:"slug" binding:"omitempty,slug"`
	Description   string `json:"description" binding:"required"`
	Objectives    string `json:"objectives"`
	Prerequisites string `json:"prerequisites"`
	Category      string `json:"category" binding:"required,max=100"`
	Level         string `json:"level" binding:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	PriceCents    int64  `json:"priceCents" binding:"gte=0"`
	IsPublished   *bool  `json:"isPublished"`
}

// FormationFilter captures the catalog browsing filters
type FormationFilter struct {
	Category      string
	Level         string
	Search        string
	PublishedOnly bool
	Page          int
	Size          int
}

// FormationListResponse is the paginated catalog listing
type FormationListResponse struct {
	Formations []*models.Formation `json:"formations"`
	Pagination PaginationInfo      `json:"pagination"`
}
