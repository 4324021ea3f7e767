package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/ordersvc/domain"
	"github.com/you/ordersvc/internal/http/middleware"
)

// OrderHandlers handles order HTTP requests
type OrderHandlers struct {
	orderSvc domain.OrderService
}

// NewOrderHandlers creates new order handlers
func NewOrderHandlers(orderSvc domain.OrderService) *OrderHandlers {
	return &OrderHandlers{orderSvc: orderSvc}
}

// OrderLineRequest is one cart line in a create or edit request
type OrderLineRequest struct {
	MenuItemID uint   `json:"menuItemId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	Notes      string `json:"notes"`
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	TableNumber     string             `json:"tableNumber" binding:"required"`
	Items           []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod   string             `json:"paymentMethod"`
	TipAmount       float64            `json:"tipAmount" binding:"gte=0"`
	TipPercentage   float64            `json:"tipPercentage" binding:"gte=0,lte=100"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerEmail   string             `json:"customerEmail"`
	SpecialRequests string             `json:"specialRequests"`
	Notes           string             `json:"notes"`
}

// UpdateOrderRequest represents an order edit request
type UpdateOrderRequest struct {
	Items                    []OrderLineRequest `json:"items" binding:"omitempty,min=1,dive"`
	Notes                    *string            `json:"notes"`
	EstimatedPreparationTime *int               `json:"estimatedPreparationTime"`
}

// StatusRequest represents a status move request
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func toLineInputs(items []OrderLineRequest) []domain.OrderLineInput {
	if items == nil {
		return nil
	}
	lines := make([]domain.OrderLineInput, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.OrderLineInput{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Notes:      item.Notes,
		})
	}
	return lines
}

func orderView(o *domain.Order) gin.H {
	lines := make([]gin.H, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, gin.H{
			"menuItemId": l.MenuItemID,
			"name":       l.Name,
			"price":      l.Price,
			"quantity":   l.Quantity,
			"notes":      l.Notes,
		})
	}
	return gin.H{
		"id":                       o.ID,
		"orderNumber":              o.OrderNumber,
		"vendorId":                 o.VendorID,
		"customerId":               o.CustomerID,
		"tableNumber":              o.TableNumber,
		"items":                    lines,
		"subtotal":                 o.Subtotal,
		"taxAmount":                o.TaxAmount,
		"serviceChargeAmount":      o.ServiceChargeAmount,
		"tipAmount":                o.TipAmount,
		"totalAmount":              o.TotalAmount,
		"status":                   o.Status,
		"paymentStatus":            o.PaymentStatus,
		"paymentMethod":            o.PaymentMethod,
		"specialRequests":          o.SpecialRequests,
		"notes":                    o.Notes,
		"estimatedPreparationTime": o.EstimatedPreparationTime,
		"actualPreparationTime":    o.ActualPreparationTime,
		"createdAt":                o.CreatedAt,
	}
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order id")
		return 0, false
	}
	return uint(id), true
}

// Create opens an order. Guests may order; a logged-in customer gets linked.
func (h *OrderHandlers) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	input := domain.CreateOrderInput{
		TableNumber:     req.TableNumber,
		Lines:           toLineInputs(req.Items),
		PaymentMethod:   req.PaymentMethod,
		TipAmount:       req.TipAmount,
		TipPercentage:   req.TipPercentage,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		SpecialRequests: req.SpecialRequests,
		Notes:           req.Notes,
	}
	if c.GetString(middleware.CtxRole) == domain.RoleCustomer {
		id := c.GetUint(middleware.CtxAccountID)
		input.CustomerID = &id
	}

	order, err := h.orderSvc.Create(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Order placed successfully", orderView(order))
}

// Get fetches one order by id.
func (h *OrderHandlers) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.orderSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", orderView(order))
}

func (h *OrderHandlers) list(c *gin.Context, filter domain.OrderFilter) {
	vendorID := c.GetUint(middleware.CtxAccountID)

	orders, total, err := h.orderSvc.List(c.Request.Context(), vendorID, filter)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	views := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView(o))
	}
	respondOK(c, http.StatusOK, "", gin.H{
		"orders": views,
		"total":  total,
	})
}

// List returns the calling vendor's orders with optional filters.
func (h *OrderHandlers) List(c *gin.Context) {
	filter := domain.OrderFilter{
		Status:      c.Query("status"),
		TableNumber: c.Query("tableNumber"),
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.Limit = limit
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	h.list(c, filter)
}

// Today returns the calling vendor's orders since local midnight.
func (h *OrderHandlers) Today(c *gin.Context) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	h.list(c, domain.OrderFilter{Since: &midnight, Status: c.Query("status")})
}

// Update edits an order's cart, notes, or estimated preparation time. Edited
// lines are re-priced from the current catalog.
func (h *OrderHandlers) Update(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	vendorID := c.GetUint(middleware.CtxAccountID)
	order, err := h.orderSvc.RecalculateOnEdit(c.Request.Context(), id, vendorID,
		toLineInputs(req.Items), req.Notes, req.EstimatedPreparationTime)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Order updated", orderView(order))
}

// UpdateStatus moves an order through the status machine.
func (h *OrderHandlers) UpdateStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	vendorID := c.GetUint(middleware.CtxAccountID)
	order, err := h.orderSvc.UpdateStatus(c.Request.Context(), id, vendorID, req.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Order status updated", orderView(order))
}

// UpdatePaymentStatus sets an order's payment state.
func (h *OrderHandlers) UpdatePaymentStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	vendorID := c.GetUint(middleware.CtxAccountID)
	order, err := h.orderSvc.UpdatePaymentStatus(c.Request.Context(), id, vendorID, req.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Payment status updated", orderView(order))
}

// Delete removes an order.
func (h *OrderHandlers) Delete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	vendorID := c.GetUint(middleware.CtxAccountID)
	if err := h.orderSvc.Delete(c.Request.Context(), id, vendorID); err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Order deleted", nil)
}
