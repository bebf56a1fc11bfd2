package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appauth "github.com/medprep/campus/internal/app/auth"
	"github.com/medprep/campus/internal/app/models"
	"github.com/medprep/campus/internal/app/models/dto"
	"github.com/medprep/campus/internal/pkg/auth"
)

func newTestJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key-test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campus-test",
	})
}

func newTestRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(jwtService, appauth.NewScopeResolver(nil, nil))
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		scope := CurrentScope(c)
		if scope.Denied {
			c.Status(http.StatusForbidden)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func mintToken(t *testing.T, jwtService *auth.JWTService) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:       1,
		Username: "owner",
		RoleType: models.RoleProductOwner,
	})
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return accessToken
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	jwtService := newTestJWTService(15 * time.Minute)
	router := newTestRouter(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, jwtService))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestJWTAuthReportsExpiredToken(t *testing.T) {
	jwtService := newTestJWTService(-time.Minute)
	router := newTestRouter(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, jwtService))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), string(dto.ErrorCodeExpiredToken)) {
		t.Fatalf("expired token must report %s, got %s", dto.ErrorCodeExpiredToken, w.Body.String())
	}
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	router := newTestRouter(newTestJWTService(15 * time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), string(dto.ErrorCodeInvalidToken)) {
		t.Fatalf("garbage token must report %s, got %s", dto.ErrorCodeInvalidToken, w.Body.String())
	}
}

func TestJWTAuthRequiresHeader(t *testing.T) {
	router := newTestRouter(newTestJWTService(15 * time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
