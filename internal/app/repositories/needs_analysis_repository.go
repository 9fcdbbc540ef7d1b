package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/pkg/apperrors"
)

// NeedsAnalysisRepository handles database operations for needs-analysis
// requests and their submitted forms
type NeedsAnalysisRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewNeedsAnalysisRepository creates a new needs-analysis repository
func NewNeedsAnalysisRepository(db *pgxpool.Pool) *NeedsAnalysisRepository {
	return &NeedsAnalysisRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *NeedsAnalysisRepository) WithTx(tx pgx.Tx) *NeedsAnalysisRepository {
	return &NeedsAnalysisRepository{db: tx, sb: r.sb}
}

const analysisRequestColumns = `id, token, type, first_name, last_name, email, company_name, formation_id, status, sent_at, expires_at, completed_at, created_at, updated_at`

func scanAnalysisRequest(row pgx.Row) (*models.NeedsAnalysisRequest, error) {
	var req models.NeedsAnalysisRequest
	err := row.Scan(&req.ID, &req.Token, &req.Type, &req.FirstName, &req.LastName,
		&req.Email, &req.CompanyName, &req.FormationID, &req.Status,
		&req.SentAt, &req.ExpiresAt, &req.CompletedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateRequest creates a needs-analysis request in PENDING status
func (r *NeedsAnalysisRepository) CreateRequest(ctx context.Context, req *models.NeedsAnalysisRequest) error {
	query := `
		INSERT INTO needs_analysis_requests (token, type, first_name, last_name, email, company_name, formation_id, status)
		VALUES ($1, $2, $3, $4, LOWER($5), $6, $7, 'PENDING')
		RETURNING id, email, status, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		req.Token, req.Type, req.FirstName, req.LastName, req.Email, req.CompanyName, req.FormationID).
		Scan(&req.ID, &req.Email, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating needs analysis request: %w", err)
	}
	return nil
}

// GetByID retrieves a needs-analysis request by id
func (r *NeedsAnalysisRepository) GetByID(ctx context.Context, id int64) (*models.NeedsAnalysisRequest, error) {
	req, err := scanAnalysisRequest(r.db.QueryRow(ctx,
		`SELECT `+analysisRequestColumns+` FROM needs_analysis_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnalysisRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving needs analysis request: %w", err)
	}
	return req, nil
}

// GetByToken retrieves a needs-analysis request by its public form token
func (r *NeedsAnalysisRepository) GetByToken(ctx context.Context, token string) (*models.NeedsAnalysisRequest, error) {
	req, err := scanAnalysisRequest(r.db.QueryRow(ctx,
		`SELECT `+analysisRequestColumns+` FROM needs_analysis_requests WHERE token = $1`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnalysisRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving needs analysis request by token: %w", err)
	}
	return req, nil
}

// List retrieves needs-analysis requests filtered by type and status
func (r *NeedsAnalysisRepository) List(ctx context.Context, analysisType, status string, offset uint64, limit int) ([]*models.NeedsAnalysisRequest, int64, error) {
	applyFilter := func(q squirrel.SelectBuilder) squirrel.SelectBuilder {
		if analysisType != "" {
			q = q.Where(squirrel.Eq{"type": analysisType})
		}
		if status != "" {
			q = q.Where(squirrel.Eq{"status": status})
		}
		return q
	}

	countSQL, countArgs, err := applyFilter(r.sb.Select("COUNT(*)").From("needs_analysis_requests")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build analysis count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting needs analysis requests: %w", err)
	}

	listSQL, listArgs, err := applyFilter(r.sb.Select(analysisRequestColumns).From("needs_analysis_requests")).
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build analysis list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing needs analysis requests: %w", err)
	}
	defer rows.Close()

	var reqs []*models.NeedsAnalysisRequest
	for rows.Next() {
		req, err := scanAnalysisRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, req)
	}
	return reqs, total, rows.Err()
}

// MarkSent stamps a request as sent with its validity window
func (r *NeedsAnalysisRepository) MarkSent(ctx context.Context, id int64, sentAt, expiresAt time.Time) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE needs_analysis_requests SET status = 'SENT', sent_at = $1, expires_at = $2, updated_at = $3 WHERE id = $4`,
		sentAt, expiresAt, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error marking analysis request sent: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnalysisRequestNotFound
	}
	return nil
}

// MarkCompleted stamps a request as completed
func (r *NeedsAnalysisRepository) MarkCompleted(ctx context.Context, id int64, completedAt time.Time) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE needs_analysis_requests SET status = 'COMPLETED', completed_at = $1, updated_at = $2 WHERE id = $3`,
		completedAt, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error marking analysis request completed: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnalysisRequestNotFound
	}
	return nil
}

// MarkExpired flips a SENT request past its deadline to EXPIRED
func (r *NeedsAnalysisRepository) MarkExpired(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE needs_analysis_requests SET status = 'EXPIRED', updated_at = $1 WHERE id = $2 AND status = 'SENT'`,
		time.Now(), id)
	if err != nil {
		return fmt.Errorf("error marking analysis request expired: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnalysisRequestNotFound
	}
	return nil
}

// Cancel moves a request to CANCELLED
func (r *NeedsAnalysisRepository) Cancel(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE needs_analysis_requests SET status = 'CANCELLED', updated_at = $1 WHERE id = $2`,
		time.Now(), id)
	if err != nil {
		return fmt.Errorf("error cancelling analysis request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnalysisRequestNotFound
	}
	return nil
}

// CreateCompanyAnalysis stores the submitted company form
func (r *NeedsAnalysisRepository) CreateCompanyAnalysis(ctx context.Context, a *models.CompanyNeedsAnalysis) error {
	query := `
		INSERT INTO company_needs_analyses
			(request_id, company_name, siret, contact_name, contact_role, employee_count,
			 sector, trainee_count, training_objectives, current_skills, constraints, funding_plan)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		a.RequestID, a.CompanyName, a.Siret, a.ContactName, a.ContactRole, a.EmployeeCount,
		a.Sector, a.TraineeCount, a.TrainingObjectives, a.CurrentSkills, a.Constraints, a.FundingPlan).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating company analysis: %w", err)
	}
	return nil
}

// CreateIndividualAnalysis stores the submitted individual form
func (r *NeedsAnalysisRepository) CreateIndividualAnalysis(ctx context.Context, a *models.IndividualNeedsAnalysis) error {
	query := `
		INSERT INTO individual_needs_analyses
			(request_id, professional_status, current_position, education_level,
			 project_description, training_objectives, availability, funding_plan, disability_adjusting)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		a.RequestID, a.ProfessionalStatus, a.CurrentPosition, a.EducationLevel,
		a.ProjectDescription, a.TrainingObjectives, a.Availability, a.FundingPlan, a.DisabilityAdjusting).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating individual analysis: %w", err)
	}
	return nil
}

// GetCompanyByRequestID retrieves the company form submitted for a request
func (r *NeedsAnalysisRepository) GetCompanyByRequestID(ctx context.Context, requestID int64) (*models.CompanyNeedsAnalysis, error) {
	var a models.CompanyNeedsAnalysis
	err := r.db.QueryRow(ctx,
		`SELECT id, request_id, company_name, siret, contact_name, contact_role, employee_count,
		        sector, trainee_count, training_objectives, current_skills, constraints, funding_plan, created_at
		 FROM company_needs_analyses WHERE request_id = $1`, requestID).
		Scan(&a.ID, &a.RequestID, &a.CompanyName, &a.Siret, &a.ContactName, &a.ContactRole,
			&a.EmployeeCount, &a.Sector, &a.TraineeCount, &a.TrainingObjectives,
			&a.CurrentSkills, &a.Constraints, &a.FundingPlan, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnalysisRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving company analysis: %w", err)
	}
	return &a, nil
}

// GetIndividualByRequestID retrieves the individual form submitted for a request
func (r *NeedsAnalysisRepository) GetIndividualByRequestID(ctx context.Context, requestID int64) (*models.IndividualNeedsAnalysis, error) {
	var a models.IndividualNeedsAnalysis
	err := r.db.QueryRow(ctx,
		`SELECT id, request_id, professional_status, current_position, education_level,
		        project_description, training_objectives, availability, funding_plan, disability_adjusting, created_at
		 FROM individual_needs_analyses WHERE request_id = $1`, requestID).
		Scan(&a.ID, &a.RequestID, &a.ProfessionalStatus, &a.CurrentPosition, &a.EducationLevel,
			&a.ProjectDescription, &a.TrainingObjectives, &a.Availability, &a.FundingPlan,
			&a.DisabilityAdjusting, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnalysisRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving individual analysis: %w", err)
	}
	return &a, nil
}
