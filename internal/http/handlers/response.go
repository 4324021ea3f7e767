package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/ordersvc/domain"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// respondOK writes a success envelope.
func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// respondError writes a failure envelope with the given status.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

// respondValidation writes a 400 with field errors from binding.
func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  err.Error(),
	})
}

// respondDomainError maps a domain error onto the HTTP taxonomy. Anything
// unrecognized is logged in full and reported as a generic 500.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrMixedVendorCart),
		errors.Is(err, domain.ErrMenuItemUnavailable),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrGrantExpired),
		errors.Is(err, domain.ErrGrantRevoked),
		errors.Is(err, domain.ErrResetTokenUsed):
		respondError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenRevoked),
		errors.Is(err, domain.ErrTokenMalformed):
		respondError(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotGrantOwner),
		errors.Is(err, domain.ErrEmailMismatch):
		respondError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound),
		errors.Is(err, domain.ErrTableNotFound),
		errors.Is(err, domain.ErrGrantNotFound):
		respondError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrGrantExists),
		errors.Is(err, domain.ErrDuplicateTable):
		respondError(c, http.StatusConflict, err.Error())

	case errors.Is(err, domain.ErrAccountLocked):
		respondError(c, http.StatusLocked, err.Error())

	case errors.Is(err, domain.ErrRateLimited):
		respondError(c, http.StatusTooManyRequests, err.Error())

	default:
		log.Printf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
	}
}
