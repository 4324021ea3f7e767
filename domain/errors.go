package domain

import "errors"

// Authentication errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("account with this email already exists")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrAccountLocked      = errors.New("account is temporarily locked due to too many failed login attempts")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenRevoked   = errors.New("token has been invalidated")
	ErrTokenMalformed = errors.New("malformed token")
)

// Access grant errors
var (
	ErrGrantNotFound  = errors.New("access grant not found")
	ErrGrantExists    = errors.New("access already granted to this user")
	ErrGrantExpired   = errors.New("access token has expired")
	ErrGrantRevoked   = errors.New("access has been revoked")
	ErrEmailMismatch  = errors.New("email does not match invitation")
	ErrNotGrantOwner  = errors.New("access denied")
	ErrResetTokenUsed = errors.New("invalid or expired reset token")
	ErrInviteNotSent  = errors.New("failed to queue invitation email")
)

// Order errors
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuItemUnavailable = errors.New("menu item is not available")
	ErrMixedVendorCart     = errors.New("all items must belong to the same vendor")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrInvalidTransition   = errors.New("invalid order status transition")
	ErrValidation          = errors.New("validation failed")
)

// Catalog errors
var (
	ErrTableNotFound  = errors.New("table not found")
	ErrDuplicateTable = errors.New("table number already exists for this vendor")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("access denied")
	ErrRateLimited  = errors.New("too many requests")
)
