package service

import (
	"errors"
	"time"

	"github.com/RomanSiu/contacts-api/internal/constants"
	apperrors "github.com/RomanSiu/contacts-api/internal/errors"
	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the wire shape of every token this service issues: subject
// (user email), issued-at, expiry and an optional scope discriminator.
type tokenClaims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed tokens for three purposes:
// access, refresh and email confirmation. Tokens transition Issued → Valid →
// Expired; there is no revocation, only expiry.
type TokenService struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	emailTTL   time.Duration
}

func NewTokenService(secretKey string, accessTTL, refreshTTL, emailTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	if emailTTL <= 0 {
		emailTTL = 7 * 24 * time.Hour
	}
	return &TokenService{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		emailTTL:   emailTTL,
	}
}

// AccessTTL returns the configured access token lifetime.
func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

// IssueAccessToken creates a short-lived access token for the subject.
func (s *TokenService) IssueAccessToken(subject string) (string, error) {
	return s.issue(subject, constants.ScopeAccessToken, s.accessTTL)
}

// IssueAccessTokenWithTTL creates an access token with an explicit lifetime.
func (s *TokenService) IssueAccessTokenWithTTL(subject string, ttl time.Duration) (string, error) {
	return s.issue(subject, constants.ScopeAccessToken, ttl)
}

// IssueRefreshToken creates a long-lived refresh token for the subject.
func (s *TokenService) IssueRefreshToken(subject string) (string, error) {
	return s.issue(subject, constants.ScopeRefreshToken, s.refreshTTL)
}

// IssueEmailToken creates an unscoped token used for email confirmation.
func (s *TokenService) IssueEmailToken(subject string) (string, error) {
	return s.issue(subject, "", s.emailTTL)
}

func (s *TokenService) issue(subject, scope string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode verifies the token's signature and expiry and returns its subject.
// When expectedScope is non-empty, a token carrying a different scope is
// rejected even with a valid signature; an empty expectedScope skips the
// scope check (email confirmation tokens are unscoped).
//
// Failures map onto the domain taxonomy: ErrTokenExpired for expiry,
// ErrInvalidToken for any signature/format problem, ErrScopeMismatch for a
// wrong scope.
func (s *TokenService) Decode(tokenString, expectedScope string) (string, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.WrapError(apperrors.ErrTokenExpired, err)
		}
		return "", apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", apperrors.ErrInvalidToken
	}

	if expectedScope != "" && claims.Scope != expectedScope {
		return "", apperrors.ErrScopeMismatch
	}

	return claims.Subject, nil
}
