package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService(now time.Time) *HMACService {
	svc := NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	svc.now = func() time.Time { return now }
	return svc
}

func TestHMACService_AccessRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(now)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "dev@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id = %s want %s", claims.UserID, userID)
	}
	if claims.Email != "dev@example.com" {
		t.Fatalf("email = %q", claims.Email)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("token type = %q", claims.TokenType)
	}
	if svc.IsRefreshToken(claims) {
		t.Fatalf("access token classified as refresh")
	}
}

func TestHMACService_RefreshRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(now)
	userID := uuid.New()

	token, err := svc.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatalf("refresh token not classified as refresh")
	}
	if claims.UserID != userID {
		t.Fatalf("user id = %s want %s", claims.UserID, userID)
	}
}

func TestHMACService_ExpiredToken(t *testing.T) {
	issued := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(issued)

	token, err := svc.GenerateAccessToken(uuid.New(), "dev@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(16 * time.Minute) }
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(now)

	token, err := svc.GenerateAccessToken(uuid.New(), "dev@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other := NewHMACService("other-access", "other-refresh", 15*time.Minute, 7*24*time.Hour)
	other.now = svc.now
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_GarbageToken(t *testing.T) {
	svc := newTestService(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	if _, err := svc.ValidateToken("not-a-jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
