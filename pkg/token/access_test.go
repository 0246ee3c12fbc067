package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndVerify(t *testing.T) {
	secret := []byte("secret")
	tok, err := GenerateAccessToken("operator", secret, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Subject != "operator" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "operator")
	}
	if claims.ID == "" {
		t.Error("token id is empty")
	}
}

func TestVerifyRejects(t *testing.T) {
	secret := []byte("secret")
	expired, err := GenerateAccessToken("operator", secret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	valid, _ := GenerateAccessToken("operator", secret, time.Minute)
	other, _ := GenerateAccessToken("admin", secret, time.Minute)
	vp, op := strings.Split(valid, "."), strings.Split(other, ".")
	tampered := vp[0] + "." + op[1] + "." + vp[2]

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Issuer: issuer})
	noneStr, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	tests := map[string]struct {
		token  string
		secret []byte
	}{
		"expired":      {expired, secret},
		"wrong secret": {valid, []byte("other")},
		"garbage":      {"not-a-token", secret},
		"none alg":     {noneStr, secret},
		"tampered":     {tampered, secret},
	}
	for name, tt := range tests {
		if _, err := VerifyToken(tt.token, tt.secret); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestGenerateEmptySecret(t *testing.T) {
	if _, err := GenerateAccessToken("operator", nil, time.Minute); err == nil {
		t.Error("expected error for empty secret")
	}
}
