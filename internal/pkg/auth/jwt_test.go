package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/eprofos/eprofos-api/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "eprofos-test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(time.Hour)
	user := &models.User{
		ID:    42,
		Email: "marie.dupont@example.fr",
		Role:  models.RoleStudent,
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}
	if accessToken == "" {
		t.Error("GenerateTokenPair() returned empty access token")
	}
	if refreshToken == "" {
		t.Error("GenerateTokenPair() returned empty refresh token")
	}
	if want := int(time.Hour.Seconds()); expiresIn != want {
		t.Errorf("expiresIn = %d, want %d", expiresIn, want)
	}
	if want := int((24 * time.Hour).Seconds()); refreshExpiresIn != want {
		t.Errorf("refreshExpiresIn = %d, want %d", refreshExpiresIn, want)
	}

	claims, err := svc.ValidateAndExtractClaims(accessToken)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %d, want %d", claims.UserID, user.ID)
	}
	if claims.Email != user.Email {
		t.Errorf("claims.Email = %q, want %q", claims.Email, user.Email)
	}
	if claims.Role != string(user.Role) {
		t.Errorf("claims.Role = %q, want %q", claims.Role, user.Role)
	}
}

func TestValidateAndExtractClaimsErrors(t *testing.T) {
	svc := newTestService(time.Hour)
	user := &models.User{ID: 7, Email: "jean@example.fr", Role: models.RoleAdmin}

	validToken, _, _, _, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	expiredSvc := newTestService(-time.Hour)
	expiredToken, _, _, _, err := expiredSvc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair() error = %v", err)
	}

	otherSvc := NewJWTService(JWTConfig{
		SecretKey:       "a-different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "eprofos-test",
	})

	tests := []struct {
		name    string
		svc     *JWTService
		token   string
		wantErr error
	}{
		{"empty token", svc, "", ErrInvalidToken},
		{"garbage token", svc, "not.a.jwt", nil},
		{"expired token", svc, expiredToken, ErrExpiredToken},
		{"wrong signing key", otherSvc, validToken, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.ValidateAndExtractClaims(tt.token)
			if err == nil {
				t.Fatal("ValidateAndExtractClaims() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAndExtractClaims() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"well-formed header", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"empty header", "", "", true},
		{"missing prefix", "abc.def.ghi", "", true},
		{"lowercase prefix", "bearer abc.def.ghi", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractBearerToken(%q) error = %v, wantErr %v", tt.header, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
