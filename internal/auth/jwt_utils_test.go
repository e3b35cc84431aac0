package auth

import (
	"testing"

	"go-pos-client/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, models.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 || claims.Role != models.RoleAdmin {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := ValidateToken(tok); err == nil {
			t.Fatalf("token %q should have been rejected", tok)
		}
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken(1, models.RoleCashier)
	if err != nil {
		t.Fatal(err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Fatal("tampered signature should have been rejected")
	}
}
