package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenIssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue("66b1f0c2a4d3e8f901234567")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	userID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != "66b1f0c2a4d3e8f901234567" {
		t.Fatalf("got userID %q", userID)
	}
}

func TestTokenVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret")

	for _, tok := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := svc.Verify(tok); err == nil {
			t.Errorf("expected error for token %q", tok)
		}
	}
}

func TestTokenVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").Issue("66b1f0c2a4d3e8f901234567")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewTokenService("secret-b").Verify(token); err == nil {
		t.Fatal("token signed with a different secret verified")
	}
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	svc := NewTokenService("test-secret")
	svc.ttl = -time.Minute

	token, err := svc.Issue("66b1f0c2a4d3e8f901234567")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestTokenVerifyRejectsMissingUserID(t *testing.T) {
	svc := NewTokenService("test-secret")

	claims := AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Fatal("token without userId claim verified")
	}
}
