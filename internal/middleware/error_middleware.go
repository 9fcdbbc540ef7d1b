package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/eprofos/eprofos-api/internal/app/models/dto"
	"github.com/eprofos/eprofos-api/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses using the
// standard error envelope. Unexpected errors are logged and answered
// with a generic 500 so internal details never leak to clients.
func HandleAPIError(c *gin.Context, err error) {
	var (
		status      int
		errorDetail *dto.ErrorDetail
	)

	switch {
	// Not found
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrFormationNotFound),
		errors.Is(err, apperrors.ErrModuleNotFound),
		errors.Is(err, apperrors.ErrChapterNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrExerciseNotFound),
		errors.Is(err, apperrors.ErrQCMNotFound),
		errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrRegistrationNotFound),
		errors.Is(err, apperrors.ErrCertificateNotFound),
		errors.Is(err, apperrors.ErrAnalysisRequestNotFound),
		errors.Is(err, apperrors.ErrLegalDocumentNotFound),
		errors.Is(err, apperrors.ErrNoPublishedDocument):
		status = http.StatusNotFound
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		status = http.StatusUnauthorized
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeExpiredToken, err.Error())
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenRevoked):
		status = http.StatusUnauthorized
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeInvalidToken, err.Error())
	case errors.Is(err, apperrors.ErrTokenNotFound):
		status = http.StatusUnauthorized
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, err.Error())
	case errors.Is(err, apperrors.ErrEmailNotVerified):
		status = http.StatusUnauthorized
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeUnauthorized, err.Error())

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status = http.StatusForbidden
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())
	case errors.Is(err, apperrors.ErrAccountDisabled):
		status = http.StatusForbidden
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())

	// Conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrSlugAlreadyExists),
		errors.Is(err, apperrors.ErrAlreadyRegistered),
		errors.Is(err, apperrors.ErrCertificateAlreadyIssued),
		errors.Is(err, apperrors.ErrResourceAlreadyExists):
		status = http.StatusConflict
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrFormationHasSession),
		errors.Is(err, apperrors.ErrInvalidStatusTransition),
		errors.Is(err, apperrors.ErrSessionFull),
		errors.Is(err, apperrors.ErrSessionNotOpen),
		errors.Is(err, apperrors.ErrRegistrationNotAttendant),
		errors.Is(err, apperrors.ErrCertificateRevoked),
		errors.Is(err, apperrors.ErrDocumentNotDraft),
		errors.Is(err, apperrors.ErrAnalysisNotSendable),
		errors.Is(err, apperrors.ErrAnalysisAlreadyDone),
		errors.Is(err, apperrors.ErrEmailAlreadyVerified):
		status = http.StatusConflict
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeResourceConflict, err.Error())

	// Gone
	case errors.Is(err, apperrors.ErrAnalysisTokenExpired):
		status = http.StatusGone
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeResourceGone, err.Error())

	// Bad request
	case errors.Is(err, apperrors.ErrValidationFailed):
		status = http.StatusBadRequest
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrAnalysisTypeMismatch),
		errors.Is(err, apperrors.ErrInvalidEmailToken),
		errors.Is(err, apperrors.ErrInvalidPasswordResetToken),
		errors.Is(err, apperrors.ErrPasswordResetTokenUsed):
		status = http.StatusBadRequest
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())

	default:
		log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unhandled error in request")
		status = http.StatusInternalServerError
		errorDetail = dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An internal error occurred")
	}

	c.JSON(status, dto.NewErrorResponse(errorDetail))
}

// HandleValidationError answers a request whose body failed binding
func HandleValidationError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
		WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
