package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avolkov/minibank/internal/domain"
	"github.com/avolkov/minibank/internal/infrastructure/auth"
)

func signClaims(t *testing.T, secret string, claims auth.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestJWTManagerRoundtrip(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("super-secret", time.Minute)
	user := &domain.User{ID: "user-123", Email: "user@example.com"}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Errorf("claims = %+v, want identity of %+v", claims, user)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Minute {
		t.Errorf("expiry = %v, want at most the configured duration", claims.ExpiresAt)
	}
}

func TestJWTManagerVerify(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)

	past := jwt.NewNumericDate(time.Now().Add(-2 * time.Minute))
	expired := signClaims(t, "secret", auth.Claims{
		UserID: "user-1",
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  past,
			NotBefore: past,
		},
	})

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"expired token", expired, domain.ErrExpiredToken},
		{"wrong secret", signClaims(t, "other-secret", auth.Claims{
			UserID: "user-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		}), domain.ErrInvalidToken},
		{"malformed token", "not-a-token", domain.ErrInvalidToken},
		{"empty token", "", domain.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Verify(tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
