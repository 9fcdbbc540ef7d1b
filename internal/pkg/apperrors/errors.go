package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Catalog errors
var (
	ErrFormationNotFound   = errors.New("formation not found")
	ErrSlugAlreadyExists   = errors.New("formation with this slug already exists")
	ErrModuleNotFound      = errors.New("module not found")
	ErrChapterNotFound     = errors.New("chapter not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrExerciseNotFound    = errors.New("exercise not found")
	ErrQCMNotFound         = errors.New("qcm not found")
	ErrFormationHasSession = errors.New("formation has sessions and cannot be deleted")
)

// Session errors
var (
	ErrSessionNotFound          = errors.New("session not found")
	ErrSessionNotOpen           = errors.New("session is not open for registration")
	ErrSessionFull              = errors.New("session has reached its capacity")
	ErrRegistrationNotFound     = errors.New("registration not found")
	ErrAlreadyRegistered        = errors.New("this email is already registered for the session")
	ErrInvalidStatusTransition  = errors.New("invalid status transition")
	ErrRegistrationNotAttendant = errors.New("registration has not been marked as attended")
)

// Certificate errors
var (
	ErrCertificateNotFound      = errors.New("certificate not found")
	ErrCertificateAlreadyIssued = errors.New("certificate already issued for this registration")
	ErrCertificateRevoked       = errors.New("certificate has been revoked")
)

// Needs analysis errors
var (
	ErrAnalysisRequestNotFound = errors.New("needs analysis request not found")
	ErrAnalysisTokenExpired    = errors.New("needs analysis link has expired")
	ErrAnalysisAlreadyDone     = errors.New("needs analysis has already been submitted")
	ErrAnalysisNotSendable     = errors.New("needs analysis request cannot be sent in its current status")
	ErrAnalysisTypeMismatch    = errors.New("submitted analysis type does not match the request")
)

// Legal document errors
var (
	ErrLegalDocumentNotFound = errors.New("legal document not found")
	ErrNoPublishedDocument   = errors.New("no published document of this type")
	ErrDocumentNotDraft      = errors.New("only draft documents can be published")
)

// Email verification errors
var (
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrInvalidEmailToken    = errors.New("invalid or expired email verification token")
	ErrEmailAlreadyVerified = errors.New("email already verified")
)

// Password reset errors
var (
	ErrInvalidPasswordResetToken = errors.New("invalid or expired password reset token")
	ErrPasswordResetTokenUsed    = errors.New("password reset token has already been used")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// NewResourceNotFoundError creates a resource-not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
