package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/ordersvc/domain"
	"github.com/you/ordersvc/internal/http/middleware"
)

// TableHandlers handles table HTTP requests
type TableHandlers struct {
	tableRepo domain.TableRepository
}

// NewTableHandlers creates new table handlers
func NewTableHandlers(tableRepo domain.TableRepository) *TableHandlers {
	return &TableHandlers{tableRepo: tableRepo}
}

// TableRequest represents a create or update request for a table
type TableRequest struct {
	Number   string `json:"number" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
	Status   string `json:"status"`
}

func tableView(t *domain.Table) gin.H {
	return gin.H{
		"id":       t.ID,
		"vendorId": t.VendorID,
		"number":   t.Number,
		"capacity": t.Capacity,
		"status":   t.Status,
	}
}

func validTableStatus(s string) bool {
	switch s {
	case domain.TableAvailable, domain.TableOccupied, domain.TableReserved, domain.TableMaintenance:
		return true
	}
	return false
}

// Create adds a table for the calling vendor.
func (h *TableHandlers) Create(c *gin.Context) {
	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	status := req.Status
	if status == "" {
		status = domain.TableAvailable
	}
	if !validTableStatus(status) {
		respondError(c, http.StatusBadRequest, "Invalid table status")
		return
	}

	table := &domain.Table{
		VendorID: c.GetUint(middleware.CtxAccountID),
		Number:   req.Number,
		Capacity: req.Capacity,
		Status:   status,
	}
	if err := h.tableRepo.Create(c.Request.Context(), table); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Table created", tableView(table))
}

// ListMine lists the calling vendor's tables.
func (h *TableHandlers) ListMine(c *gin.Context) {
	tables, err := h.tableRepo.ListByVendor(c.Request.Context(), c.GetUint(middleware.CtxAccountID))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	views := make([]gin.H, 0, len(tables))
	for _, t := range tables {
		views = append(views, tableView(t))
	}
	respondOK(c, http.StatusOK, "", views)
}

// Update rewrites a table.
func (h *TableHandlers) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid table id")
		return
	}

	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	if req.Status != "" && !validTableStatus(req.Status) {
		respondError(c, http.StatusBadRequest, "Invalid table status")
		return
	}

	table := &domain.Table{
		ID:       uint(id),
		VendorID: c.GetUint(middleware.CtxAccountID),
		Number:   req.Number,
		Capacity: req.Capacity,
		Status:   req.Status,
	}
	if table.Status == "" {
		table.Status = domain.TableAvailable
	}

	if err := h.tableRepo.Update(c.Request.Context(), table); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Table updated", tableView(table))
}

// Delete removes a table.
func (h *TableHandlers) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid table id")
		return
	}

	if err := h.tableRepo.Delete(c.Request.Context(), uint(id), c.GetUint(middleware.CtxAccountID)); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Table deleted", nil)
}
