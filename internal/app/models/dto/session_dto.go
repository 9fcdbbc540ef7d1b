package dto

import "github.com/eprofos/eprofos-api/internal/app/models"

// CreateSessionRequest schedules a session of a formation
type CreateSessionRequest struct {
	FormationID int64  `json:"formationId" binding:"required,gt=0"`
	StartDate   string `json:"startDate" binding:"required"` // 2006-01-02
	EndDate     string `json:"endDate" binding:"required"`
	Location    string `json:"location" binding:"required,max=255"`
	Capacity    int    `json:"capacity" binding:"required,gt=0"`
	PriceCents  *int64 `json:"priceCents" binding:"omitempty,gte=0"`
}

// UpdateSessionRequest updates a session
type UpdateSessionRequest struct {
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
	Location   string `json:"location" binding:"required,max=255"`
	Capacity   int    `json:"capacity" binding:"required,gt=0"`
	PriceCents *int64 `json:"priceCents" binding:"omitempty,gte=0"`
}

// SessionStatusRequest moves a session to a new status
type SessionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PLANNED OPEN FULL CLOSED CANCELLED"`
}

// SessionListResponse is the paginated session listing
type SessionListResponse struct {
	Sessions   []*models.Session `json:"sessions"`
	Pagination PaginationInfo    `json:"pagination"`
}

// RegisterForSessionRequest is the public registration payload
type RegisterForSessionRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=100"`
	LastName  string `json:"lastName" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Company   string `json:"company" binding:"max=255"`
}

// RegistrationStatusRequest moves a registration to a new status
type RegistrationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED ATTENDED CANCELLED"`
}

// RegistrationListResponse is the paginated registration listing
type RegistrationListResponse struct {
	Registrations []*models.SessionRegistration `json:"registrations"`
	Pagination    PaginationInfo                `json:"pagination"`
}
