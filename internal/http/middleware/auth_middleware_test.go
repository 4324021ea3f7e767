package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/you/ordersvc/domain"
	"github.com/you/ordersvc/internal/mocks"
)

func verifyingAuthSvc(valid map[string]*domain.TokenClaims, err error) *mocks.MockAuthService {
	svc := mocks.NewMockAuthService()
	svc.VerifyFunc = func(ctx context.Context, token string) (*domain.TokenClaims, error) {
		if claims, ok := valid[token]; ok {
			return claims, nil
		}
		if err != nil {
			return nil, err
		}
		return nil, domain.ErrTokenInvalid
	}
	return svc
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	claims := &domain.TokenClaims{AccountID: 7, Role: domain.RoleVendor, Email: "v@example.com"}

	tests := []struct {
		name           string
		authHeader     string
		verifyErr      error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "valid bearer token",
			authHeader:     "Bearer good",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Authorization header required",
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic Zm9vOmJhcg==",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Authorization header required",
		},
		{
			name:           "expired token",
			authHeader:     "Bearer stale",
			verifyErr:      domain.ErrTokenExpired,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Token expired",
		},
		{
			name:           "revoked token",
			authHeader:     "Bearer revoked",
			verifyErr:      domain.ErrTokenRevoked,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Token has been invalidated",
		},
		{
			name:           "deactivated account",
			authHeader:     "Bearer gone",
			verifyErr:      domain.ErrAccountInactive,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Account is deactivated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := verifyingAuthSvc(map[string]*domain.TokenClaims{"good": claims}, tt.verifyErr)

			r := gin.New()
			r.Use(AuthMiddleware(authSvc))
			r.GET("/protected", func(c *gin.Context) {
				assert.Equal(t, uint(7), c.GetUint(CtxAccountID))
				assert.Equal(t, domain.RoleVendor, c.GetString(CtxRole))
				assert.Equal(t, "good", c.GetString(CtxToken))
				c.JSON(http.StatusOK, gin.H{"success": true})
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMsg != "" {
				assert.Contains(t, w.Body.String(), tt.expectedMsg)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	claims := &domain.TokenClaims{AccountID: 42, Role: domain.RoleCustomer}
	authSvc := verifyingAuthSvc(map[string]*domain.TokenClaims{"good": claims}, nil)

	r := gin.New()
	r.Use(OptionalAuth(authSvc))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"accountId": c.GetUint(CtxAccountID)})
	})

	// Anonymous callers pass through with no identity.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accountId":0`)

	// A bad token is ignored rather than rejected.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer junk")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accountId":0`)

	// A good token attaches the caller.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accountId":42`)
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		role           string
		allowed        []string
		expectedStatus int
	}{
		{name: "allowed role", role: domain.RoleVendor, allowed: []string{domain.RoleVendor}, expectedStatus: http.StatusOK},
		{name: "one of several", role: domain.RoleGeneralAdmin, allowed: []string{domain.RoleVendor, domain.RoleGeneralAdmin}, expectedStatus: http.StatusOK},
		{name: "wrong role", role: domain.RoleCustomer, allowed: []string{domain.RoleVendor}, expectedStatus: http.StatusForbidden},
		{name: "no role at all", role: "", allowed: []string{domain.RoleVendor}, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.role != "" {
					c.Set(CtxRole, tt.role)
				}
			})
			r.Use(RequireRoles(tt.allowed...))
			r.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
