package auth

import (
	"testing"
	"time"

	"github.com/medprep/campus/internal/app/models"
)

func testService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campus.test",
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testService(time.Minute)

	user := &models.User{ID: 42, Username: "asha.menon", RoleType: models.RoleCollegeAdmin}
	access, refresh, expiresIn, _, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if refresh == "" {
		t.Fatalf("expected non-empty refresh token")
	}
	if expiresIn != 60 {
		t.Fatalf("expected 60s expiry, got %d", expiresIn)
	}

	claims, err := svc.ValidateAndExtractClaims(access)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "asha.menon" || claims.RoleType != "college_admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := testService(-time.Minute)

	user := &models.User{ID: 1, Username: "expired", RoleType: models.RoleStudent}
	access, _, _, _, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	if _, err := svc.ValidateToken(access); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	svc := testService(time.Minute)
	user := &models.User{ID: 1, Username: "someone", RoleType: models.RoleStudent}
	access, _, _, _, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "different", AccessTokenExp: time.Minute, RefreshTokenExp: time.Hour})
	if _, err := other.ValidateToken(access); err == nil {
		t.Fatalf("expected validation failure with wrong secret")
	}
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil || tok != "abc.def.ghi" {
		t.Fatalf("unexpected result: %q %v", tok, err)
	}
	if _, err := ExtractBearerToken(""); err == nil {
		t.Fatalf("expected error for empty header")
	}
}
