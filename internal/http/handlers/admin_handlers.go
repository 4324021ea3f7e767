package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/ordersvc/domain"
	"github.com/you/ordersvc/internal/http/middleware"
)

// AdminHandlers handles the role-scoped dashboard HTTP requests
type AdminHandlers struct {
	analyticsSvc domain.AnalyticsService
	accessSvc    domain.AccessService
	accountRepo  domain.AccountRepository
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(
	analyticsSvc domain.AnalyticsService,
	accessSvc domain.AccessService,
	accountRepo domain.AccountRepository,
) *AdminHandlers {
	return &AdminHandlers{
		analyticsSvc: analyticsSvc,
		accessSvc:    accessSvc,
		accountRepo:  accountRepo,
	}
}

// callerScope derives the analytics visibility of the caller. General admins
// see everything; multi-vendor admins see exactly their live grants, resolved
// fresh on every request so a revocation takes effect immediately.
func (h *AdminHandlers) callerScope(c *gin.Context) (domain.Scope, bool) {
	switch c.GetString(middleware.CtxRole) {
	case domain.RoleGeneralAdmin:
		return domain.Scope{Unrestricted: true}, true
	case domain.RoleMultiVendorAdmin:
		ids, err := h.accessSvc.ResolveVendorScope(c.Request.Context(), c.GetString(middleware.CtxEmail))
		if err != nil {
			respondDomainError(c, err)
			return domain.Scope{}, false
		}
		return domain.Scope{VendorIDs: ids}, true
	default:
		respondError(c, http.StatusForbidden, "Access denied")
		return domain.Scope{}, false
	}
}

// DashboardStats returns the top-level rollup for the caller's scope.
func (h *AdminHandlers) DashboardStats(c *gin.Context) {
	scope, ok := h.callerScope(c)
	if !ok {
		return
	}

	stats, err := h.analyticsSvc.DashboardStats(c.Request.Context(), scope)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", stats)
}

// VendorDashboardStats returns one vendor's rollup, scope-checked.
func (h *AdminHandlers) VendorDashboardStats(c *gin.Context) {
	scope, ok := h.callerScope(c)
	if !ok {
		return
	}

	vendorID, err := strconv.ParseUint(c.Param("vendorId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid vendor id")
		return
	}

	stats, err := h.analyticsSvc.VendorDashboardStats(c.Request.Context(), scope, uint(vendorID))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", stats)
}

// RevenueStats returns the zero-filled revenue time series.
func (h *AdminHandlers) RevenueStats(c *gin.Context) {
	scope, ok := h.callerScope(c)
	if !ok {
		return
	}

	var vendorID *uint
	if raw := c.Query("vendorId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid vendor id")
			return
		}
		id := uint(parsed)
		vendorID = &id
	}

	series, err := h.analyticsSvc.RevenueSeries(c.Request.Context(), scope, c.DefaultQuery("period", "30d"), vendorID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", gin.H{"series": series})
}

// VendorStats returns vendor population rollups.
func (h *AdminHandlers) VendorStats(c *gin.Context) {
	scope, ok := h.callerScope(c)
	if !ok {
		return
	}

	stats, err := h.analyticsSvc.VendorStats(c.Request.Context(), scope, c.DefaultQuery("period", "30d"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", stats)
}

// CustomerStats returns customer population rollups.
func (h *AdminHandlers) CustomerStats(c *gin.Context) {
	scope, ok := h.callerScope(c)
	if !ok {
		return
	}

	stats, err := h.analyticsSvc.CustomerStats(c.Request.Context(), scope, c.DefaultQuery("period", "30d"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", stats)
}

// OrderStats returns order volume rollups.
func (h *AdminHandlers) OrderStats(c *gin.Context) {
	scope, ok := h.callerScope(c)
	if !ok {
		return
	}

	stats, err := h.analyticsSvc.OrderStats(c.Request.Context(), scope, c.DefaultQuery("period", "30d"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", stats)
}

// ListVendors lists the vendors visible to the caller.
func (h *AdminHandlers) ListVendors(c *gin.Context) {
	scope, ok := h.callerScope(c)
	if !ok {
		return
	}
	if !scope.Unrestricted && len(scope.VendorIDs) == 0 {
		respondOK(c, http.StatusOK, "", []gin.H{})
		return
	}

	vendors, err := h.accountRepo.ListVendors(c.Request.Context(), scope.VendorIDs)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	views := make([]gin.H, 0, len(vendors))
	for _, v := range vendors {
		views = append(views, accountView(v))
	}
	respondOK(c, http.StatusOK, "", views)
}
