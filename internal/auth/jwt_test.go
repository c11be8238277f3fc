package auth

import (
	"testing"
	"time"
)

func TestMintAndParseClaims(t *testing.T) {
	token, err := Mint("user-1", "tenant-1", "user@example.com", "secret", time.Hour)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	claims, err := ParseClaims(token, "secret")
	if err != nil {
		t.Fatalf("ParseClaims() error = %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.TenantID != "tenant-1" {
		t.Errorf("TenantID = %q, want tenant-1", claims.TenantID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q, want user@example.com", claims.Email)
	}
}

func TestParseClaims_WrongSecret(t *testing.T) {
	token, err := Mint("user-1", "tenant-1", "user@example.com", "secret", time.Hour)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	if _, err := ParseClaims(token, "other-secret"); err == nil {
		t.Error("ParseClaims() with wrong secret succeeded")
	}
}

func TestParseClaims_Expired(t *testing.T) {
	token, err := Mint("user-1", "tenant-1", "user@example.com", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	if _, err := ParseClaims(token, "secret"); err == nil {
		t.Error("ParseClaims() with expired token succeeded")
	}
}

func TestParseClaims_Garbage(t *testing.T) {
	if _, err := ParseClaims("not-a-token", "secret"); err == nil {
		t.Error("ParseClaims() with garbage succeeded")
	}
}
