package helpers

import (
	"testing"
	"time"
)

func TestJWTManagerRoundtrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	access, exp, err := m.GenerateAccessToken("user-1", "sid-1")
	if err != nil {
		t.Fatalf("generate access: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("access expiry in the past")
	}

	claims, err := m.ParseAccessToken(access)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != "user-1" || claims.SessionID != "sid-1" {
		t.Fatalf("claims = %+v", claims)
	}

	// tokens are not interchangeable across secrets
	if _, err := m.ParseRefreshToken(access); err == nil {
		t.Fatal("access token accepted as refresh token")
	}

	refresh, _, err := m.GenerateRefreshToken("user-1", "sid-1")
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}
	if _, err := m.ParseAccessToken(refresh); err == nil {
		t.Fatal("refresh token accepted as access token")
	}
}

func TestJWTManagerExpiry(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, time.Hour)
	access, _, err := m.GenerateAccessToken("user-1", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ParseAccessToken(access); err == nil {
		t.Fatal("expired token accepted")
	}
}
