package domain

import (
	"context"
	"time"
)

// AccountRepository defines account persistence. Email lookups are always
// scoped by role: each role owns its own email namespace.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, role, email string) (*Account, error)
	FindByID(ctx context.Context, role string, id uint) (*Account, error)
	FindByResetTokenHash(ctx context.Context, role, tokenHash string) (*Account, error)
	Update(ctx context.Context, account *Account) error
	CountByRole(ctx context.Context, role string, activeOnly bool, since, until *time.Time) (int64, error)
	CountLoggedInSince(ctx context.Context, role string, since time.Time) (int64, error)
	ListVendors(ctx context.Context, ids []uint) ([]*Account, error)
}

// GrantRepository defines access-grant persistence.
type GrantRepository interface {
	Create(ctx context.Context, grant *AccessGrant) error
	FindByID(ctx context.Context, id uint) (*AccessGrant, error)
	FindByToken(ctx context.Context, token string) (*AccessGrant, error)
	FindByVendorAndEmail(ctx context.Context, vendorID uint, email string) (*AccessGrant, error)
	ListByVendor(ctx context.Context, vendorID uint) ([]*AccessGrant, error)
	ListByEmail(ctx context.Context, email string, statuses []string) ([]*AccessGrant, error)
	Update(ctx context.Context, grant *AccessGrant) error
}

// MenuRepository defines menu catalog persistence.
type MenuRepository interface {
	Create(ctx context.Context, item *MenuItem) error
	FindByID(ctx context.Context, id uint) (*MenuItem, error)
	ListByVendor(ctx context.Context, vendorID uint) ([]*MenuItem, error)
	Update(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id, vendorID uint) error
}

// TableRepository defines table persistence.
type TableRepository interface {
	Create(ctx context.Context, table *Table) error
	FindByID(ctx context.Context, id, vendorID uint) (*Table, error)
	ListByVendor(ctx context.Context, vendorID uint) ([]*Table, error)
	Update(ctx context.Context, table *Table) error
	Delete(ctx context.Context, id, vendorID uint) error
}

// OrderFilter narrows vendor-scoped order listings.
type OrderFilter struct {
	Status      string
	TableNumber string
	CustomerID  *uint
	Since       *time.Time
	Until       *time.Time
	Limit       int
	Page        int
}

// OrderRepository defines order persistence. Vendor-scoped lookups return
// ErrOrderNotFound for foreign orders so existence never leaks across
// tenants.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uint) (*Order, error)
	FindByIDForVendor(ctx context.Context, id, vendorID uint) (*Order, error)
	ListByVendor(ctx context.Context, vendorID uint, filter OrderFilter) ([]*Order, int64, error)
	Update(ctx context.Context, order *Order) error
	ReplaceLines(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id, vendorID uint) error
}

// RevenueBucket is one calendar day of the revenue time series.
type RevenueBucket struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// GroupTotal is a count+sum rollup keyed by an enum value.
type GroupTotal struct {
	Key         string  `json:"key"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

// AnalyticsRepository runs the aggregation queries behind the dashboards.
// A nil or empty vendorIDs slice means "all vendors"; a non-empty slice
// restricts every figure to those vendors.
type AnalyticsRepository interface {
	CountOrders(ctx context.Context, vendorIDs []uint, since, until *time.Time) (int64, error)
	SumRevenue(ctx context.Context, vendorIDs []uint, since, until *time.Time) (float64, error)
	RevenueByDay(ctx context.Context, vendorIDs []uint, since time.Time) ([]RevenueBucket, error)
	OrdersByStatus(ctx context.Context, vendorIDs []uint, since *time.Time) ([]GroupTotal, error)
	OrdersByPaymentMethod(ctx context.Context, vendorIDs []uint, since *time.Time) ([]GroupTotal, error)
	VendorsByCuisine(ctx context.Context, vendorIDs []uint) ([]GroupTotal, error)
	ActiveVendorsInPeriod(ctx context.Context, vendorIDs []uint, since time.Time) (int64, error)
	ActiveCustomersInPeriod(ctx context.Context, vendorIDs []uint, since time.Time) (int64, error)
	AvgOrderValue(ctx context.Context, vendorIDs []uint, since *time.Time) (float64, error)
}

// RevocationStore is the injected token revocation set. Entries are scoped by
// role so a token string is only dead under the role it was issued for, and
// carry a TTL bounded by the token's own expiry.
type RevocationStore interface {
	Add(ctx context.Context, token, role string, ttl time.Duration) error
	Contains(ctx context.Context, token, role string) (bool, error)
	Sweep(ctx context.Context) error
}

// RateLimiter is a fixed-window request limiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// PasswordService defines credential hashing.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	Generate(accountID uint, role, email string) (token string, expiresIn int64, err error)
	Validate(token string) (*TokenClaims, error)
	// TTL reports the configured lifetime for a role's tokens.
	TTL(role string) time.Duration
}

// Mailer dispatches a templated email. Implementations must not be called on
// the request path; the Notifier owns dispatch.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMSSender dispatches a text message.
type SMSSender interface {
	SendSMS(to, message string) error
}

// Notifier accepts notification events for asynchronous, at-most-once,
// best-effort delivery. Enqueue never blocks request handling and never
// returns delivery errors. It reports whether the event was accepted for
// delivery, so callers can warn when an event was dropped on the spot.
type Notifier interface {
	Enqueue(event Event) bool
}

// AuthService defines credential and session business logic.
type AuthService interface {
	Register(ctx context.Context, role string, account *Account, password string) (*Account, error)
	Login(ctx context.Context, role, email, password string) (*AuthResult, error)
	ChangePassword(ctx context.Context, role string, accountID uint, current, next string) error
	ForgotPassword(ctx context.Context, role, email string) error
	ResetPassword(ctx context.Context, role, token, password string) error
	Logout(ctx context.Context, token, role string) error
	Verify(ctx context.Context, token string) (*TokenClaims, error)
}

// AccessService defines the access grant registry.
type AccessService interface {
	Grant(ctx context.Context, vendorID uint, email, name string, expiresAt *time.Time, notes string) (*AccessGrant, error)
	VerifyToken(ctx context.Context, token string) (*AccessGrant, error)
	RedeemToken(ctx context.Context, token, email, password, name string) (*Account, error)
	Accept(ctx context.Context, grantID uint, email string) (*AccessGrant, error)
	Revoke(ctx context.Context, grantID, byVendorID uint) error
	ListForVendor(ctx context.Context, vendorID uint) ([]*AccessGrant, error)
	ResolveVendorScope(ctx context.Context, email string) ([]uint, error)
}

// OrderLineInput is a client-supplied order line reference.
type OrderLineInput struct {
	MenuItemID uint
	Quantity   int
	Notes      string
}

// CreateOrderInput carries everything needed to open an order.
type CreateOrderInput struct {
	TableNumber     string
	Lines           []OrderLineInput
	PaymentMethod   string
	TipAmount       float64
	TipPercentage   float64
	CustomerID      *uint
	CustomerPhone   string
	CustomerEmail   string
	SpecialRequests string
	Notes           string
}

// OrderService defines the order engine.
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
	GetByID(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context, vendorID uint, filter OrderFilter) ([]*Order, int64, error)
	UpdateStatus(ctx context.Context, orderID, vendorID uint, status string) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID, vendorID uint, status string) (*Order, error)
	RecalculateOnEdit(ctx context.Context, orderID, vendorID uint, lines []OrderLineInput, notes *string, estPrepTime *int) (*Order, error)
	Delete(ctx context.Context, orderID, vendorID uint) error
}

// Scope restricts analytics queries to the caller's visibility.
type Scope struct {
	// Unrestricted means every vendor is visible (general admin).
	Unrestricted bool
	// VendorIDs is the visible set when restricted.
	VendorIDs []uint
}

// DashboardStats is the top-level rollup.
type DashboardStats struct {
	TotalVendors   int64            `json:"totalVendors"`
	TotalCustomers int64            `json:"totalCustomers"`
	TotalOrders    int64            `json:"totalOrders"`
	TotalRevenue   float64          `json:"totalRevenue"`
	Growth         DashboardGrowth  `json:"growth"`
}

// DashboardGrowth is period-over-period growth, percent, two decimals.
type DashboardGrowth struct {
	Vendors   float64 `json:"vendors"`
	Customers float64 `json:"customers"`
	Orders    float64 `json:"orders"`
	Revenue   float64 `json:"revenue"`
}

// VendorDashboardStats is the single-vendor rollup.
type VendorDashboardStats struct {
	VendorID     uint    `json:"vendorId"`
	VendorName   string  `json:"vendorName"`
	TotalOrders  int64   `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
	OrderGrowth  float64 `json:"orderGrowth"`
	RevenueGrowth float64 `json:"revenueGrowth"`
}

// AnalyticsService defines the role-scoped read-only rollups.
type AnalyticsService interface {
	DashboardStats(ctx context.Context, scope Scope) (*DashboardStats, error)
	VendorDashboardStats(ctx context.Context, scope Scope, vendorID uint) (*VendorDashboardStats, error)
	RevenueSeries(ctx context.Context, scope Scope, period string, vendorID *uint) ([]RevenueBucket, error)
	VendorStats(ctx context.Context, scope Scope, period string) (map[string]any, error)
	CustomerStats(ctx context.Context, scope Scope, period string) (map[string]any, error)
	OrderStats(ctx context.Context, scope Scope, period string) (map[string]any, error)
}
