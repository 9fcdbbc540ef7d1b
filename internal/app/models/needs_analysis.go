package models

import "time"

// AnalysisType distinguishes the two needs-analysis form variants
type AnalysisType string

const (
	AnalysisCompany    AnalysisType = "COMPANY"
	AnalysisIndividual AnalysisType = "INDIVIDUAL"
)

// AnalysisStatus is the lifecycle status of a needs-analysis request
type AnalysisStatus string

const (
	AnalysisPending   AnalysisStatus = "PENDING"
	AnalysisSent      AnalysisStatus = "SENT"
	AnalysisCompleted AnalysisStatus = "COMPLETED"
	AnalysisExpired   AnalysisStatus = "EXPIRED"
	AnalysisCancelled AnalysisStatus = "CANCELLED"
)

// NeedsAnalysisRequest is a Qualiopi pre-training needs analysis sent to a
// prospect as a tokenized link. The token is an opaque uuid; the link is
// valid from sent_at until expires_at and accepts a single submission.
type NeedsAnalysisRequest struct {
	ID          int64          `json:"id"`
	Token       string         `json:"token"`
	Type        AnalysisType   `json:"type"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Email       string         `json:"email"`
	CompanyName string         `json:"companyName,omitempty"`
	FormationID *int64         `json:"formationId,omitempty"`
	Status      AnalysisStatus `json:"status"`
	SentAt      *time.Time     `json:"sentAt,omitempty"`
	ExpiresAt   *time.Time     `json:"expiresAt,omitempty"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	Formation *Formation `json:"formation,omitempty"`
}

// IsExpiredAt reports whether the request deadline has passed at the given
// instant. Requests that were never sent have no deadline.
func (r *NeedsAnalysisRequest) IsExpiredAt(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}

// AcceptsSubmission reports whether the request can still receive a form
// submission at the given instant.
func (r *NeedsAnalysisRequest) AcceptsSubmission(now time.Time) bool {
	return r.Status == AnalysisSent && !r.IsExpiredAt(now)
}

// CompanyNeedsAnalysis holds the submitted form for a COMPANY request
type CompanyNeedsAnalysis struct {
	ID                 int64     `json:"id"`
	RequestID          int64     `json:"requestId"`
	CompanyName        string    `json:"companyName"`
	Siret              string    `json:"siret"`
	ContactName        string    `json:"contactName"`
	ContactRole        string    `json:"contactRole"`
	EmployeeCount      int       `json:"employeeCount"`
	Sector             string    `json:"sector"`
	TraineeCount       int       `json:"traineeCount"`
	TrainingObjectives string    `json:"trainingObjectives"`
	CurrentSkills      string    `json:"currentSkills"`
	Constraints        string    `json:"constraints"`
	FundingPlan        string    `json:"fundingPlan"`
	CreatedAt          time.Time `json:"createdAt"`
}

// IndividualNeedsAnalysis holds the submitted form for an INDIVIDUAL request
type IndividualNeedsAnalysis struct {
	ID                  int64     `json:"id"`
	RequestID           int64     `json:"requestId"`
	ProfessionalStatus  string    `json:"professionalStatus"`
	CurrentPosition     string    `json:"currentPosition"`
	EducationLevel      string    `json:"educationLevel"`
	ProjectDescription  string    `json:"projectDescription"`
	TrainingObjectives  string    `json:"trainingObjectives"`
	Availability        string    `json:"availability"`
	FundingPlan         string    `json:"fundingPlan"`
	DisabilityAdjusting string    `json:"disabilityAdjusting,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}
