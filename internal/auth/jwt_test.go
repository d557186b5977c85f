package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("ops", RoleAdmin, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT() unexpected error: %v", err)
	}

	claims, err := ValidateJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateJWT() unexpected error: %v", err)
	}
	if claims.Subject != "ops" || claims.Role != RoleAdmin {
		t.Errorf("claims = subject %q role %q", claims.Subject, claims.Role)
	}
}

func TestValidateJWT_Rejects(t *testing.T) {
	valid, _ := GenerateJWT("ops", RoleAdmin, testSecret, time.Hour)
	expired, _ := GenerateJWT("ops", RoleAdmin, testSecret, -time.Minute)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: RoleAdmin})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, strings.Repeat("x", 32)},
		{"expired", expired, testSecret},
		{"garbage", "not.a.token", testSecret},
		{"unsigned", unsigned, testSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateJWT(tt.token, tt.secret); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateJWT() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestJWTSecretChecks(t *testing.T) {
	if _, err := GenerateJWT("ops", RoleAdmin, "short", time.Hour); err == nil {
		t.Error("GenerateJWT() accepted a short secret")
	}
	if _, err := ValidateJWT("x", ""); err == nil || errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateJWT() with empty secret error = %v, want configuration error", err)
	}
}
