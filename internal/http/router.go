package httpx

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/ordersvc/domain"
	"github.com/you/ordersvc/internal/http/handlers"
	"github.com/you/ordersvc/internal/http/middleware"
)

// RouterDeps bundles everything the route table needs.
type RouterDeps struct {
	Auth   *handlers.AuthHandlers
	Access *handlers.AccessHandlers
	Orders *handlers.OrderHandlers
	Menu   *handlers.MenuHandlers
	Tables *handlers.TableHandlers
	Admin  *handlers.AdminHandlers

	AuthSvc domain.AuthService
	Casbin  *middleware.CasbinMW
	Limiter domain.RateLimiter

	ForgotPasswordLimit int
	ResetPasswordLimit  int
	RateLimitWindow     time.Duration
}

// BuildRouter wires the HTTP surface.
func BuildRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"success": true, "message": "ok"}) })

	forgotLimited := middleware.RateLimit(d.Limiter, "forgot", d.ForgotPasswordLimit, d.RateLimitWindow)
	resetLimited := middleware.RateLimit(d.Limiter, "reset", d.ResetPasswordLimit, d.RateLimitWindow)

	auth := r.Group("/auth")
	{
		auth.POST("/vendor/register", d.Auth.RegisterVendor)
		auth.POST("/vendor/login", d.Auth.Login(domain.RoleVendor))
		auth.POST("/user/register", d.Auth.RegisterCustomer)
		auth.POST("/user/login", d.Auth.Login(domain.RoleCustomer))
		auth.POST("/admin/register", d.Auth.RegisterAdmin)
		auth.POST("/admin/login", d.Auth.Login(domain.RoleGeneralAdmin))
		auth.POST("/admin/multi-vendor-login", d.Auth.Login(domain.RoleMultiVendorAdmin))

		// Reset flows are rate limited per client IP and per role surface.
		auth.POST("/forgot-password", forgotLimited, d.Auth.ForgotPassword(domain.RoleVendor))
		auth.POST("/reset-password", resetLimited, d.Auth.ResetPassword(domain.RoleVendor))
		auth.POST("/customer/forgot-password", forgotLimited, d.Auth.ForgotPassword(domain.RoleCustomer))
		auth.POST("/customer/reset-password", resetLimited, d.Auth.ResetPassword(domain.RoleCustomer))
		auth.POST("/admin/forgot-password", forgotLimited, d.Auth.ForgotPassword(domain.RoleGeneralAdmin))
		auth.POST("/admin/reset-password", resetLimited, d.Auth.ResetPassword(domain.RoleGeneralAdmin))

		authed := auth.Group("").Use(middleware.AuthMiddleware(d.AuthSvc))
		authed.POST("/logout", d.Auth.Logout)
		authed.PUT("/change-password", d.Auth.ChangePassword)
	}

	access := r.Group("/vendor-access")
	{
		access.GET("/verify/:token", d.Access.VerifyToken)
		access.POST("/register", d.Access.Redeem)
		access.POST("/:id/accept", d.Access.Accept)

		vendorOnly := access.Group("").Use(
			middleware.AuthMiddleware(d.AuthSvc),
			middleware.RequireRoles(domain.RoleVendor),
		)
		vendorOnly.POST("/grant", d.Access.Grant)
		vendorOnly.GET("/vendor", d.Access.ListMine)
		vendorOnly.DELETE("/:id", d.Access.Revoke)
	}

	orders := r.Group("/orders")
	{
		orders.POST("", middleware.OptionalAuth(d.AuthSvc), d.Orders.Create)

		vendorOrders := orders.Group("").Use(
			middleware.AuthMiddleware(d.AuthSvc),
			middleware.RequireRoles(domain.RoleVendor),
		)
		vendorOrders.GET("", d.Orders.List)
		vendorOrders.GET("/today", d.Orders.Today)
		vendorOrders.PUT("/:id", d.Orders.Update)
		vendorOrders.PATCH("/:id/status", d.Orders.UpdateStatus)
		vendorOrders.PATCH("/:id/payment-status", d.Orders.UpdatePaymentStatus)
		vendorOrders.DELETE("/:id", d.Orders.Delete)

		// Registered after the vendor routes so /today wins over /:id.
		orders.GET("/:id", d.Orders.Get)
	}

	menu := r.Group("/menu")
	{
		menu.GET("/vendor/:vendorId", d.Menu.ListByVendor)

		vendorMenu := menu.Group("").Use(
			middleware.AuthMiddleware(d.AuthSvc),
			middleware.RequireRoles(domain.RoleVendor),
		)
		vendorMenu.POST("", d.Menu.Create)
		vendorMenu.GET("", d.Menu.ListMine)
		vendorMenu.PUT("/:id", d.Menu.Update)
		vendorMenu.DELETE("/:id", d.Menu.Delete)
	}

	tables := r.Group("/tables").Use(
		middleware.AuthMiddleware(d.AuthSvc),
		middleware.RequireRoles(domain.RoleVendor),
	)
	{
		tables.POST("", d.Tables.Create)
		tables.GET("", d.Tables.ListMine)
		tables.PUT("/:id", d.Tables.Update)
		tables.DELETE("/:id", d.Tables.Delete)
	}

	admin := r.Group("/admin").Use(
		middleware.AuthMiddleware(d.AuthSvc),
		d.Casbin.Enforce(),
	)
	{
		admin.GET("/dashboard-stats", d.Admin.DashboardStats)
		admin.GET("/vendor-dashboard-stats/:vendorId", d.Admin.VendorDashboardStats)
		admin.GET("/revenue-stats", d.Admin.RevenueStats)
		admin.GET("/vendor-stats", d.Admin.VendorStats)
		admin.GET("/customer-stats", d.Admin.CustomerStats)
		admin.GET("/order-stats", d.Admin.OrderStats)
		admin.GET("/vendors", d.Admin.ListVendors)
	}

	return r
}
