package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/ordersvc/domain"
	"github.com/you/ordersvc/internal/http/middleware"
)

// MenuHandlers handles menu catalog HTTP requests
type MenuHandlers struct {
	menuRepo domain.MenuRepository
}

// NewMenuHandlers creates new menu handlers
func NewMenuHandlers(menuRepo domain.MenuRepository) *MenuHandlers {
	return &MenuHandlers{menuRepo: menuRepo}
}

// MenuItemRequest represents a create or update request for a catalog entry
type MenuItemRequest struct {
	Category    string  `json:"category" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Available   *bool   `json:"available"`
}

func menuItemView(item *domain.MenuItem) gin.H {
	return gin.H{
		"id":          item.ID,
		"vendorId":    item.VendorID,
		"category":    item.Category,
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"available":   item.Available,
	}
}

// Create adds a catalog entry for the calling vendor.
func (h *MenuHandlers) Create(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	item := &domain.MenuItem{
		VendorID:    c.GetUint(middleware.CtxAccountID),
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   available,
	}

	if err := h.menuRepo.Create(c.Request.Context(), item); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Menu item created", menuItemView(item))
}

// ListMine lists the calling vendor's catalog.
func (h *MenuHandlers) ListMine(c *gin.Context) {
	h.listFor(c, c.GetUint(middleware.CtxAccountID))
}

// ListByVendor lists a vendor's catalog for guests browsing the menu.
func (h *MenuHandlers) ListByVendor(c *gin.Context) {
	vendorID, err := strconv.ParseUint(c.Param("vendorId"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid vendor id")
		return
	}
	h.listFor(c, uint(vendorID))
}

func (h *MenuHandlers) listFor(c *gin.Context, vendorID uint) {
	items, err := h.menuRepo.ListByVendor(c.Request.Context(), vendorID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	views := make([]gin.H, 0, len(items))
	for _, item := range items {
		views = append(views, menuItemView(item))
	}
	respondOK(c, http.StatusOK, "", views)
}

// Update rewrites a catalog entry. Existing order lines keep their snapshot.
func (h *MenuHandlers) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	item := &domain.MenuItem{
		ID:          uint(id),
		VendorID:    c.GetUint(middleware.CtxAccountID),
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   available,
	}

	if err := h.menuRepo.Update(c.Request.Context(), item); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Menu item updated", menuItemView(item))
}

// Delete removes a catalog entry.
func (h *MenuHandlers) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	if err := h.menuRepo.Delete(c.Request.Context(), uint(id), c.GetUint(middleware.CtxAccountID)); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Menu item deleted", nil)
}
