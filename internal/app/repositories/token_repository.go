package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eprofos/eprofos-api/internal/pkg/apperrors"
	"github.com/eprofos/eprofos-api/internal/pkg/dberrors"
	"github.com/eprofos/eprofos-api/internal/pkg/logger"
)

// TokenRepository handles refresh, verification and password-reset tokens
type TokenRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateRefreshToken stores a new refresh token
func (r *TokenRepository) CreateRefreshToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("token", "user_id", "expiry_date", "is_revoked", "created_at").
		Values(token, userID, expiryDate, false, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_token_key") {
			logger.Warn().Int64("userID", userID).Msg("Attempted to create duplicate refresh token")
			return apperrors.ErrTokenInvalid
		}
		return fmt.Errorf("error creating refresh token: %w", err)
	}

	return nil
}

// GetRefreshToken retrieves the owning user of a live refresh token. It
// rejects revoked and expired tokens.
func (r *TokenRepository) GetRefreshToken(ctx context.Context, token string) (int64, error) {
	var userID int64
	var expiryDate time.Time
	var isRevoked bool

	sql, args, err := r.sb.Select("user_id", "expiry_date", "is_revoked").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build get token query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&userID, &expiryDate, &isRevoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrTokenNotFound
		}
		return 0, fmt.Errorf("error retrieving refresh token: %w", err)
	}

	if isRevoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if expiryDate.Before(time.Now()) {
		return 0, apperrors.ErrTokenExpired
	}

	return userID, nil
}

// RevokeRefreshToken revokes a refresh token
func (r *TokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}

	return nil
}

// RevokeAllForUser revokes every refresh token of a user, used after a
// password reset.
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"user_id": userID, "is_revoked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke all query: %w", err)
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error revoking user tokens: %w", err)
	}
	return nil
}

// CreateVerificationToken stores an email verification token
func (r *TokenRepository) CreateVerificationToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	sql, args, err := r.sb.Insert("verification_tokens").
		Columns("token", "user_id", "expiry_date", "created_at").
		Values(token, userID, expiryDate, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create verification token query: %w", err)
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating verification token: %w", err)
	}
	return nil
}

// ConsumeVerificationToken validates a verification token and deletes it,
// returning the owning user ID.
func (r *TokenRepository) ConsumeVerificationToken(ctx context.Context, token string) (int64, error) {
	var userID int64
	var expiryDate time.Time

	err := r.db.QueryRow(ctx,
		`SELECT user_id, expiry_date FROM verification_tokens WHERE token = $1`,
		token).Scan(&userID, &expiryDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrInvalidEmailToken
		}
		return 0, fmt.Errorf("error retrieving verification token: %w", err)
	}

	if expiryDate.Before(time.Now()) {
		return 0, apperrors.ErrInvalidEmailToken
	}

	if _, err = r.db.Exec(ctx,
		`DELETE FROM verification_tokens WHERE token = $1`, token); err != nil {
		return 0, fmt.Errorf("error consuming verification token: %w", err)
	}

	return userID, nil
}

// CreatePasswordResetToken stores a password reset token
func (r *TokenRepository) CreatePasswordResetToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	sql, args, err := r.sb.Insert("password_reset_tokens").
		Columns("token", "user_id", "expiry_date", "used", "created_at").
		Values(token, userID, expiryDate, false, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create reset token query: %w", err)
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating password reset token: %w", err)
	}
	return nil
}

// ConsumePasswordResetToken validates a reset token, marks it used and
// returns the owning user ID.
func (r *TokenRepository) ConsumePasswordResetToken(ctx context.Context, token string) (int64, error) {
	var userID int64
	var expiryDate time.Time
	var used bool

	err := r.db.QueryRow(ctx,
		`SELECT user_id, expiry_date, used FROM password_reset_tokens WHERE token = $1`,
		token).Scan(&userID, &expiryDate, &used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrInvalidPasswordResetToken
		}
		return 0, fmt.Errorf("error retrieving password reset token: %w", err)
	}

	if used {
		return 0, apperrors.ErrPasswordResetTokenUsed
	}
	if expiryDate.Before(time.Now()) {
		return 0, apperrors.ErrInvalidPasswordResetToken
	}

	if _, err = r.db.Exec(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE token = $1`, token); err != nil {
		return 0, fmt.Errorf("error consuming password reset token: %w", err)
	}

	return userID, nil
}
