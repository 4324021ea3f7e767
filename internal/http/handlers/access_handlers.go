package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/ordersvc/domain"
	"github.com/you/ordersvc/internal/http/middleware"
)

// AccessHandlers handles access grant HTTP requests
type AccessHandlers struct {
	accessSvc domain.AccessService
}

// NewAccessHandlers creates new access handlers
func NewAccessHandlers(accessSvc domain.AccessService) *AccessHandlers {
	return &AccessHandlers{accessSvc: accessSvc}
}

// GrantRequest represents an access grant request
type GrantRequest struct {
	Email     string     `json:"email" binding:"required,email"`
	Name      string     `json:"name" binding:"required"`
	ExpiresAt *time.Time `json:"expiresAt"`
	Notes     string     `json:"notes"`
}

// RedeemRequest represents a grant token redemption request
type RedeemRequest struct {
	Token    string `json:"token" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

// AcceptRequest represents an accept-by-id request
type AcceptRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func grantView(g *domain.AccessGrant) gin.H {
	return gin.H{
		"id":             g.ID,
		"vendorId":       g.VendorID,
		"userEmail":      g.UserEmail,
		"userName":       g.UserName,
		"accessType":     g.AccessType,
		"status":         g.Status,
		"invitedAt":      g.InvitedAt,
		"acceptedAt":     g.AcceptedAt,
		"lastAccessedAt": g.LastAccessedAt,
		"expiresAt":      g.ExpiresAt,
		"notes":          g.Notes,
	}
}

// Grant invites a named admin identity to manage the calling vendor.
func (h *AccessHandlers) Grant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	vendorID := c.GetUint(middleware.CtxAccountID)
	grant, err := h.accessSvc.Grant(c.Request.Context(), vendorID, req.Email, req.Name, req.ExpiresAt, req.Notes)
	if errors.Is(err, domain.ErrInviteNotSent) && grant != nil {
		// The grant was created. Answer success and tell the admin to
		// resend or share the link manually.
		c.JSON(http.StatusCreated, Response{
			Success: true,
			Message: "Access granted",
			Data:    grantView(grant),
			Warning: "Invitation email could not be queued, resend it or share the link manually",
		})
		return
	}
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Access granted, invitation sent", grantView(grant))
}

// ListMine lists the calling vendor's grants.
func (h *AccessHandlers) ListMine(c *gin.Context) {
	vendorID := c.GetUint(middleware.CtxAccountID)
	grants, err := h.accessSvc.ListForVendor(c.Request.Context(), vendorID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	views := make([]gin.H, 0, len(grants))
	for _, g := range grants {
		views = append(views, grantView(g))
	}
	respondOK(c, http.StatusOK, "", views)
}

// VerifyToken checks an invitation token without consuming it.
func (h *AccessHandlers) VerifyToken(c *gin.Context) {
	grant, err := h.accessSvc.VerifyToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Token is valid", gin.H{
		"vendorId":  grant.VendorID,
		"userEmail": grant.UserEmail,
		"userName":  grant.UserName,
		"expiresAt": grant.ExpiresAt,
	})
}

// Redeem consumes an invitation token and registers the grantee.
func (h *AccessHandlers) Redeem(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	account, err := h.accessSvc.RedeemToken(c.Request.Context(), req.Token, req.Email, req.Password, req.Name)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Access activated", accountView(account))
}

// Accept activates a pending grant for an already registered admin.
func (h *AccessHandlers) Accept(c *gin.Context) {
	grantID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid grant id")
		return
	}

	var req AcceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	grant, err := h.accessSvc.Accept(c.Request.Context(), uint(grantID), req.Email)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Access accepted", grantView(grant))
}

// Revoke withdraws a grant. Only the granting vendor may revoke, and revoking
// twice is not an error.
func (h *AccessHandlers) Revoke(c *gin.Context) {
	grantID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid grant id")
		return
	}

	vendorID := c.GetUint(middleware.CtxAccountID)
	if err := h.accessSvc.Revoke(c.Request.Context(), uint(grantID), vendorID); err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Access revoked", nil)
}
