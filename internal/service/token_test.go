package service

import (
	"errors"
	"testing"
	"time"

	"github.com/RomanSiu/contacts-api/internal/constants"
	apperrors "github.com/RomanSiu/contacts-api/internal/errors"
)

const testSecret = "test-secret-key"

func newTestTokenService() *TokenService {
	return NewTokenService(testSecret, 15*time.Minute, 7*24*time.Hour, 7*24*time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService()

	tests := []struct {
		name  string
		issue func(subject string) (string, error)
		scope string
	}{
		{
			name:  "Access token",
			issue: svc.IssueAccessToken,
			scope: constants.ScopeAccessToken,
		},
		{
			name:  "Refresh token",
			issue: svc.IssueRefreshToken,
			scope: constants.ScopeRefreshToken,
		},
		{
			name:  "Email token",
			issue: svc.IssueEmailToken,
			scope: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.issue("alice@example.com")
			if err != nil {
				t.Fatalf("Expected no issue error, got %v", err)
			}

			subject, err := svc.Decode(token, tt.scope)
			if err != nil {
				t.Fatalf("Expected no decode error, got %v", err)
			}

			if subject != "alice@example.com" {
				t.Errorf("Expected subject alice@example.com, got %s", subject)
			}
		})
	}
}

func TestTokenScopeMismatch(t *testing.T) {
	svc := newTestTokenService()

	accessToken, err := svc.IssueAccessToken("alice@example.com")
	if err != nil {
		t.Fatalf("Expected no issue error, got %v", err)
	}
	refreshToken, err := svc.IssueRefreshToken("alice@example.com")
	if err != nil {
		t.Fatalf("Expected no issue error, got %v", err)
	}

	tests := []struct {
		name          string
		token         string
		expectedScope string
	}{
		{
			name:          "Refresh token presented as access token",
			token:         refreshToken,
			expectedScope: constants.ScopeAccessToken,
		},
		{
			name:          "Access token presented as refresh token",
			token:         accessToken,
			expectedScope: constants.ScopeRefreshToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Decode(tt.token, tt.expectedScope)
			if !errors.Is(err, apperrors.ErrScopeMismatch) {
				t.Errorf("Expected ErrScopeMismatch, got %v", err)
			}
		})
	}
}

func TestTokenScopedAcceptedWhenNoScopeExpected(t *testing.T) {
	svc := newTestTokenService()

	// An empty expected scope skips the scope check entirely, so even a
	// scoped token decodes.
	token, err := svc.IssueAccessToken("bob@example.com")
	if err != nil {
		t.Fatalf("Expected no issue error, got %v", err)
	}

	subject, err := svc.Decode(token, "")
	if err != nil {
		t.Fatalf("Expected no decode error, got %v", err)
	}
	if subject != "bob@example.com" {
		t.Errorf("Expected subject bob@example.com, got %s", subject)
	}
}

func TestTokenExpired(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.IssueAccessTokenWithTTL("alice@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("Expected no issue error, got %v", err)
	}

	_, err = svc.Decode(token, constants.ScopeAccessToken)
	if !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenService("issuer-secret", 0, 0, 0)
	verifier := NewTokenService("other-secret", 0, 0, 0)

	token, err := issuer.IssueAccessToken("alice@example.com")
	if err != nil {
		t.Fatalf("Expected no issue error, got %v", err)
	}

	_, err = verifier.Decode(token, constants.ScopeAccessToken)
	if !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenGarbageInput(t *testing.T) {
	svc := newTestTokenService()

	tests := []struct {
		name  string
		token string
	}{
		{name: "Empty string", token: ""},
		{name: "Not a JWT", token: "not-a-token"},
		{name: "Truncated JWT", token: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ4In0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Decode(tt.token, constants.ScopeAccessToken)
			if !errors.Is(err, apperrors.ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestTokenServiceDefaultTTLs(t *testing.T) {
	svc := NewTokenService(testSecret, 0, 0, 0)

	if svc.AccessTTL() != 15*time.Minute {
		t.Errorf("Expected default access TTL 15m, got %v", svc.AccessTTL())
	}
	if svc.refreshTTL != 7*24*time.Hour {
		t.Errorf("Expected default refresh TTL 168h, got %v", svc.refreshTTL)
	}
}
