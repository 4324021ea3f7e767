package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/ordersvc/domain"
	"github.com/you/ordersvc/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc   domain.AuthService
	adminCode string
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, adminCode string) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, adminCode: adminCode}
}

// VendorRegisterRequest represents vendor registration request
type VendorRegisterRequest struct {
	Name              string  `json:"name" binding:"required"`
	Email             string  `json:"email" binding:"required,email"`
	Password          string  `json:"password" binding:"required,min=6"`
	Address           string  `json:"address"`
	City              string  `json:"city"`
	State             string  `json:"state"`
	ZipCode           string  `json:"zipCode"`
	Phone             string  `json:"phone"`
	Cuisine           string  `json:"cuisine"`
	Description       string  `json:"description"`
	TaxRate           float64 `json:"taxRate" binding:"gte=0,lte=100"`
	ServiceChargeRate float64 `json:"serviceChargeRate" binding:"gte=0,lte=100"`
}

// RegisterRequest represents customer and admin registration requests
type RegisterRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	AdminCode string `json:"adminCode"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ForgotPasswordRequest represents a reset initiation request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents a reset completion request
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func accountView(a *domain.Account) gin.H {
	view := gin.H{
		"id":    a.ID,
		"role":  a.Role,
		"name":  a.Name,
		"email": a.Email,
	}
	if a.Vendor != nil {
		view["cuisine"] = a.Vendor.Cuisine
		view["taxRate"] = a.Vendor.TaxRate
		view["serviceChargeRate"] = a.Vendor.ServiceChargeRate
	}
	return view
}

// RegisterVendor handles vendor registration
func (h *AuthHandlers) RegisterVendor(c *gin.Context) {
	var req VendorRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	account := &domain.Account{
		Name:  req.Name,
		Email: req.Email,
		Vendor: &domain.VendorProfile{
			Address:           req.Address,
			City:              req.City,
			State:             req.State,
			ZipCode:           req.ZipCode,
			Phone:             req.Phone,
			Cuisine:           req.Cuisine,
			Description:       req.Description,
			TaxRate:           req.TaxRate,
			ServiceChargeRate: req.ServiceChargeRate,
		},
	}

	created, err := h.authSvc.Register(c.Request.Context(), domain.RoleVendor, account, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Vendor registered successfully", accountView(created))
}

// RegisterCustomer handles customer registration
func (h *AuthHandlers) RegisterCustomer(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	account := &domain.Account{Name: req.Name, Email: req.Email}
	created, err := h.authSvc.Register(c.Request.Context(), domain.RoleCustomer, account, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Account created successfully", accountView(created))
}

// RegisterAdmin handles general admin registration, gated by a shared code.
func (h *AuthHandlers) RegisterAdmin(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	if req.AdminCode != h.adminCode {
		respondError(c, http.StatusForbidden, "Invalid admin registration code")
		return
	}

	account := &domain.Account{Name: req.Name, Email: req.Email}
	created, err := h.authSvc.Register(c.Request.Context(), domain.RoleGeneralAdmin, account, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Admin registered successfully", accountView(created))
}

// Login returns a login handler bound to one role.
func (h *AuthHandlers) Login(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}

		result, err := h.authSvc.Login(c.Request.Context(), role, req.Email, req.Password)
		if err != nil {
			respondDomainError(c, err)
			return
		}

		data := gin.H{
			"token":     result.Token,
			"expiresIn": result.ExpiresIn,
			"account":   accountView(result.Account),
		}
		if role == domain.RoleMultiVendorAdmin {
			data["vendorScope"] = result.VendorScope
		}
		respondOK(c, http.StatusOK, "Login successful", data)
	}
}

// Logout revokes the presented token for the caller's role.
func (h *AuthHandlers) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxToken)
	role := c.GetString(middleware.CtxRole)

	if err := h.authSvc.Logout(c.Request.Context(), token, role); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Logged out successfully", nil)
}

// ChangePassword rotates the caller's password.
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	role := c.GetString(middleware.CtxRole)
	accountID := c.GetUint(middleware.CtxAccountID)

	if err := h.authSvc.ChangePassword(c.Request.Context(), role, accountID, req.CurrentPassword, req.NewPassword); err != nil {
		respondDomainError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Password changed successfully", nil)
}

// ForgotPassword returns a reset-initiation handler bound to one role. The
// response is success-shaped whether or not the address exists.
func (h *AuthHandlers) ForgotPassword(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}

		if err := h.authSvc.ForgotPassword(c.Request.Context(), role, req.Email); err != nil {
			respondDomainError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "If that email is registered, a reset link has been sent", nil)
	}
}

// ResetPassword returns a reset-completion handler bound to one role.
func (h *AuthHandlers) ResetPassword(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}

		if err := h.authSvc.ResetPassword(c.Request.Context(), role, req.Token, req.Password); err != nil {
			respondDomainError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "Password has been reset", nil)
	}
}
