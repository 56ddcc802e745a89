package mockapi

import (
	"testing"
	"time"
)

func TestAuth_GenerateAndValidate(t *testing.T) {
	// Arrange
	a := NewAuth("test-secret")

	// Act
	token, err := a.GenerateToken("alice", RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	claims, err := a.ValidateToken(token)

	// Assert
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims.Subject != "alice" || claims.Role != RoleAdmin {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestAuth_RejectsOtherSecret(t *testing.T) {
	token, _ := NewAuth("one").GenerateToken("alice", RoleAdmin, time.Hour)

	if _, err := NewAuth("two").ValidateToken(token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestAuth_RejectsExpired(t *testing.T) {
	a := NewAuth("test-secret")
	token, _ := a.GenerateToken("alice", RoleAdmin, -time.Minute)

	if _, err := a.ValidateToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestAuth_RejectsGarbage(t *testing.T) {
	if _, err := NewAuth("test-secret").ValidateToken("not-a-jwt"); err == nil {
		t.Error("expected malformed token to be rejected")
	}
}

func TestAuth_RequiresSubject(t *testing.T) {
	if _, err := NewAuth("test-secret").GenerateToken("", RoleAdmin, time.Hour); err == nil {
		t.Error("expected error for empty subject")
	}
}
