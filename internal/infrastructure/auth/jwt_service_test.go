package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/you/ordersvc/domain"
)

func TestJWTServiceImpl_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", "ordersvc", time.Hour, 30*time.Minute)

	token, expiresIn, err := svc.Generate(42, domain.RoleVendor, "vendor@example.test")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if expiresIn != int64(time.Hour.Seconds()) {
		t.Errorf("Generate() expiresIn = %d, want %d", expiresIn, int64(time.Hour.Seconds()))
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.AccountID != 42 {
		t.Errorf("Validate() AccountID = %d, want 42", claims.AccountID)
	}
	if claims.Role != domain.RoleVendor {
		t.Errorf("Validate() Role = %q, want %q", claims.Role, domain.RoleVendor)
	}
	if claims.Email != "vendor@example.test" {
		t.Errorf("Validate() Email = %q, want %q", claims.Email, "vendor@example.test")
	}
}

func TestJWTServiceImpl_Validate_Expired(t *testing.T) {
	// Negative TTLs mint tokens that are already past their exp claim.
	svc := NewJWTService("test-secret", "ordersvc", -time.Minute, -time.Minute)

	token, _, err := svc.Generate(7, domain.RoleCustomer, "guest@example.test")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	_, err = svc.Validate(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("Validate() error = %v, want %v", err, domain.ErrTokenExpired)
	}
}

func TestJWTServiceImpl_Validate_Invalid(t *testing.T) {
	svc := NewJWTService("test-secret", "ordersvc", time.Hour, time.Hour)

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name:  "garbage token",
			token: func() string { return "not.a.token" },
		},
		{
			name: "wrong signing key",
			token: func() string {
				other := NewJWTService("different-secret", "ordersvc", time.Hour, time.Hour)
				tok, _, _ := other.Generate(1, domain.RoleCustomer, "a@example.test")
				return tok
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token())
			if !errors.Is(err, domain.ErrTokenInvalid) {
				t.Errorf("Validate() error = %v, want %v", err, domain.ErrTokenInvalid)
			}
		})
	}
}

func TestJWTServiceImpl_TTL(t *testing.T) {
	svc := NewJWTService("test-secret", "ordersvc", 2*time.Hour, 15*time.Minute)

	if got := svc.TTL(domain.RoleGeneralAdmin); got != 15*time.Minute {
		t.Errorf("TTL(admin) = %v, want %v", got, 15*time.Minute)
	}
	if got := svc.TTL(domain.RoleVendor); got != 2*time.Hour {
		t.Errorf("TTL(vendor) = %v, want %v", got, 2*time.Hour)
	}
}
