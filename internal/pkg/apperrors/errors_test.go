package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"resource not found", NewResourceNotFoundError("formation not found"), ErrResourceNotFound},
		{"conflict", NewConflictError("session is full"), ErrConflict},
		{"forbidden", NewForbiddenError("admin role required"), ErrPermissionDenied},
		{"bad request", NewBadRequestError("invalid id"), ErrBadRequest},
		{"validation", NewValidationError("title too short"), ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestCustomErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *CustomError
		want string
	}{
		{"message set", NewCustomError(ErrBadRequest, "invalid session id"), "invalid session id"},
		{"falls back to wrapped error", NewCustomError(ErrBadRequest, ""), ErrBadRequest.Error()},
		{"neither set", &CustomError{}, "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCustomErrorSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("update session: %w", NewConflictError("invalid status transition"))
	if !errors.Is(err, ErrConflict) {
		t.Error("wrapped CustomError lost its sentinel")
	}
}
