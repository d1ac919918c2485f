package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RomanSiu/contacts-api/internal/model"
	"github.com/RomanSiu/contacts-api/internal/service"
	"github.com/RomanSiu/contacts-api/pkg/cache"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type staticDirectory struct {
	user *model.User
}

func (d *staticDirectory) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if d.user != nil && d.user.Email == email {
		copied := *d.user
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (d *staticDirectory) Create(context.Context, *model.User) error { return nil }

func (d *staticDirectory) UpdateRefreshToken(context.Context, uint, string) error { return nil }

func (d *staticDirectory) ConfirmEmail(context.Context, string) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *service.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := service.NewTokenService("middleware-test-secret", 15*time.Minute, 0, 0)
	dir := &staticDirectory{user: &model.User{
		Model:     gorm.Model{ID: 7},
		Name:      "Alice",
		Email:     "alice@example.com",
		Confirmed: true,
	}}
	sessions := service.NewSessionCache(cache.NewMemory(), time.Minute)
	auth := service.NewAuthService(tokens, dir, sessions, nil)

	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(auth).RequireAuth(), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})

	return router, tokens
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	router, tokens := newTestRouter(t)

	token, err := tokens.IssueAccessToken("alice@example.com")
	if err != nil {
		t.Fatalf("Expected no issue error, got %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireAuthRejections(t *testing.T) {
	router, tokens := newTestRouter(t)

	refreshToken, err := tokens.IssueRefreshToken("alice@example.com")
	if err != nil {
		t.Fatalf("Expected no issue error, got %v", err)
	}
	unknownToken, err := tokens.IssueAccessToken("ghost@example.com")
	if err != nil {
		t.Fatalf("Expected no issue error, got %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{name: "Missing header", header: ""},
		{name: "Not a bearer scheme", header: "Basic abc123"},
		{name: "Bearer without token", header: "Bearer"},
		{name: "Garbage token", header: "Bearer not-a-token"},
		{name: "Refresh token in access position", header: "Bearer " + refreshToken},
		{name: "Token for unknown user", header: "Bearer " + unknownToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", w.Code)
			}
		})
	}
}
