package utils

import (
	"testing"
	"time"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateAccessToken("u-1", "receptionist", "Front Desk", "Receptionist")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != "u-1" || claims.Role != "Receptionist" || claims.Username != "receptionist" {
		t.Errorf("claims = %+v", claims)
	}

	other := NewJWTManager("other", time.Hour)
	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("expected signature mismatch")
	}
}

func TestJWTManagerExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	token, _ := m.GenerateAccessToken("u-1", "admin", "Administrator", "Admin")
	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("expected expired token to fail")
	}
}
