package dto

import "github.com/eprofos/eprofos-api/internal/app/models"

// CreateAnalysisRequest creates a needs-analysis request for a prospect
type CreateAnalysisRequest struct {
	Type        string `json:"type" binding:"required,oneof=COMPANY INDIVIDUAL"`
	FirstName   string `json:"firstName" binding:"required,min=2,max=100"`
	LastName    string `json:"lastName" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	CompanyName string `json:"companyName" binding:"max=255"`
	FormationID *int64 `json:"formationId" binding:"omitempty,gt=0"`
}

// AnalysisFormInfo is the public view of a tokenized form, returned when a
// recipient opens their link.
type AnalysisFormInfo struct {
	Type           models.AnalysisType `json:"type"`
	FirstName      string              `json:"firstName"`
	LastName       string              `json:"lastName"`
	CompanyName    string              `json:"companyName,omitempty"`
	FormationTitle string              `json:"formationTitle,omitempty"`
	ExpiresAt      string              `json:"expiresAt"`
}

// SubmitCompanyAnalysisRequest is the company form payload
type SubmitCompanyAnalysisRequest struct {
	CompanyName        string `json:"companyName" binding:"required,max=255"`
	Siret              string `json:"siret" binding:"required,siret"`
	ContactName        string `json:"contactName" binding:"required,max=255"`
	ContactRole        string `json:"contactRole" binding:"max=255"`
	EmployeeCount      int    `json:"employeeCount" binding:"gte=0"`
	Sector             string `json:"sector" binding:"max=255"`
	TraineeCount       int    `json:"traineeCount" binding:"required,gt=0"`
	TrainingObjectives string `json:"trainingObjectives" binding:"required"`
	CurrentSkills      string `json:"currentSkills"`
	Constraints        string `json:"constraints"`
	FundingPlan        string `json:"fundingPlan"`
}

// SubmitIndividualAnalysisRequest is the individual form payload
type SubmitIndividualAnalysisRequest struct {
	ProfessionalStatus  string `json:"professionalStatus" binding:"required,max=255"`
	CurrentPosition     string `json:"currentPosition" binding:"max=255"`
	EducationLevel      string `json:"educationLevel" binding:"max=255"`
	ProjectDescription  string `json:"projectDescription" binding:"required"`
	TrainingObjectives  string `json:"trainingObjectives" binding:"required"`
	Availability        string `json:"availability"`
	FundingPlan         string `json:"fundingPlan"`
	DisabilityAdjusting string `json:"disabilityAdjusting"`
}

// SubmitAnalysisRequest wraps the two form variants; exactly one of the
// nested payloads must match the request type.
type SubmitAnalysisRequest struct {
	Company    *SubmitCompanyAnalysisRequest    `json:"company"`
	Individual *SubmitIndividualAnalysisRequest `json:"individual"`
}

// AnalysisListResponse is the paginated admin listing
type AnalysisListResponse struct {
	Requests   []*models.NeedsAnalysisRequest `json:"requests"`
	Pagination PaginationInfo                 `json:"pagination"`
}

// AnalysisDetailResponse pairs a request with its submitted form, if any
type AnalysisDetailResponse struct {
	Request    *models.NeedsAnalysisRequest    `json:"request"`
	Company    *models.CompanyNeedsAnalysis    `json:"company,omitempty"`
	Individual *models.IndividualNeedsAnalysis `json:"individual,omitempty"`
}
