package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/ordersvc/domain"
)

// Context keys set by the auth middleware.
const (
	CtxAccountID = "account_id"
	CtxRole      = "account_role"
	CtxEmail     = "account_email"
	CtxToken     = "bearer_token"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
	c.Abort()
}

// AuthMiddleware creates authentication middleware. Verification covers
// signature, expiry, revocation under the token's role, and the account still
// being active.
func AuthMiddleware(authSvc domain.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		claims, err := authSvc.Verify(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				abortUnauthorized(c, "Token expired")
			case errors.Is(err, domain.ErrTokenRevoked):
				abortUnauthorized(c, "Token has been invalidated")
			case errors.Is(err, domain.ErrAccountInactive):
				abortUnauthorized(c, "Account is deactivated")
			default:
				abortUnauthorized(c, "Invalid token")
			}
			return
		}

		c.Set(CtxAccountID, claims.AccountID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxToken, token)

		c.Next()
	}
}

// OptionalAuth populates the caller's identity when a valid bearer token is
// present and stays silent otherwise. Used on endpoints guests may hit.
func OptionalAuth(authSvc domain.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		if claims, err := authSvc.Verify(c.Request.Context(), token); err == nil {
			c.Set(CtxAccountID, claims.AccountID)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxToken, token)
		}

		c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allowed set. Must run
// after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if !allowed[role] {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}
