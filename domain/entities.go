package domain

import "time"

// Account roles. Each role owns its own email namespace: a vendor and a
// customer may register with the same address.
const (
	RoleVendor           = "vendor"
	RoleCustomer         = "customer"
	RoleGeneralAdmin     = "general_admin"
	RoleMultiVendorAdmin = "multi_vendor_admin"
)

// Lockout policy: MaxLoginAttempts consecutive failures lock the account
// until LockDuration has elapsed. A successful login resets the counter.
const (
	MaxLoginAttempts = 5
	LockDuration     = 2 * time.Hour
)

// Account represents a credentialed identity of any role.
type Account struct {
	ID           uint
	Role         string
	Name         string
	Email        string
	PasswordHash string
	IsActive     bool
	LastLogin    *time.Time

	LoginAttempts int
	LockUntil     *time.Time

	ResetTokenHash   string
	ResetTokenExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Vendor is set only for RoleVendor accounts.
	Vendor *VendorProfile
}

// IsLocked reports whether the lockout window is still open.
func (a *Account) IsLocked() bool {
	return a.LockUntil != nil && a.LockUntil.After(time.Now())
}

// VendorProfile holds the vendor-only payload of an Account.
type VendorProfile struct {
	AccountID         uint
	Address           string
	City              string
	State             string
	ZipCode           string
	Phone             string
	Cuisine           string
	Description       string
	Logo              string
	TaxRate           float64 // percent, 0-100
	ServiceChargeRate float64 // percent, 0-100
}

// AccessGrant statuses.
const (
	GrantStatusPending = "pending"
	GrantStatusActive  = "active"
	GrantStatusRevoked = "revoked"
)

// AccessTypeAdmin is the only access type currently issued.
const AccessTypeAdmin = "admin_access"

// AccessGrant delegates one vendor's data to a named multi-vendor admin
// identity, addressed by email since the grantee may not have registered yet.
type AccessGrant struct {
	ID          uint
	VendorID    uint
	UserEmail   string
	UserName    string
	AccessType  string
	AccessToken string // one-time registration token, cleared on redemption
	Status      string

	InvitedAt      time.Time
	AcceptedAt     *time.Time
	LastAccessedAt *time.Time
	ExpiresAt      *time.Time
	Notes          string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLive reports whether the grant currently confers access.
func (g *AccessGrant) IsLive() bool {
	if g.Status != GrantStatusActive {
		return false
	}
	if g.ExpiresAt != nil && g.ExpiresAt.Before(time.Now()) {
		return false
	}
	return true
}

// MenuItem is a catalog entry owned by a vendor.
type MenuItem struct {
	ID          uint
	VendorID    uint
	Category    string
	Name        string
	Description string
	Price       float64
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Table statuses.
const (
	TableAvailable   = "available"
	TableOccupied    = "occupied"
	TableReserved    = "reserved"
	TableMaintenance = "maintenance"
)

// Table is a physical table, unique per (vendor, number).
type Table struct {
	ID        uint
	VendorID  uint
	Number    string
	Capacity  int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order statuses.
const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderServed    = "served"
	OrderCancelled = "cancelled"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Payment methods.
const (
	PayCash   = "cash"
	PayCard   = "card"
	PayMobile = "mobile"
)

// OrderLine is a snapshot of a menu item at a point in time. Name and price
// are copied when the line is written and do not follow later catalog edits.
type OrderLine struct {
	ID         uint
	OrderID    uint
	MenuItemID uint
	Name       string
	Price      float64
	Quantity   int
	Notes      string
}

// Order is the root aggregate of the order engine.
type Order struct {
	ID          uint
	OrderNumber string
	VendorID    uint
	CustomerID  *uint
	TableNumber string
	Lines       []OrderLine

	Subtotal            float64
	TaxRate             float64
	TaxAmount           float64
	ServiceChargeRate   float64
	ServiceChargeAmount float64
	TipPercentage       float64
	TipAmount           float64
	TotalAmount         float64

	Status        string
	PaymentStatus string
	PaymentMethod string

	CustomerPhone   string
	CustomerEmail   string
	SpecialRequests string
	Notes           string

	EstimatedPreparationTime int // minutes
	ActualPreparationTime    int // minutes

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineSubtotal is the sum of price x quantity across lines, before charges.
func (o *Order) LineSubtotal() float64 {
	var sum float64
	for _, l := range o.Lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

// ItemCount is the total quantity across lines.
func (o *Order) ItemCount() int {
	var n int
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

// RecalculateTotals rederives every monetary field from the lines and the
// configured rates. Percentage tip wins over a fixed tip amount when both are
// set. Must be called on every mutation that touches lines or charges so that
// total = subtotal + tax + service charge + tip always holds.
func (o *Order) RecalculateTotals() {
	o.Subtotal = o.LineSubtotal()
	o.TaxAmount = o.Subtotal * o.TaxRate / 100
	o.ServiceChargeAmount = o.Subtotal * o.ServiceChargeRate / 100
	if o.TipPercentage > 0 {
		o.TipAmount = o.Subtotal * o.TipPercentage / 100
	}
	o.TotalAmount = o.Subtotal + o.TaxAmount + o.ServiceChargeAmount + o.TipAmount
}

// IsTerminal reports whether the order status admits no further transitions.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderServed || o.Status == OrderCancelled
}

// orderTransitions is the forward-only status machine. Cancellation is
// reachable from every non-terminal state.
var orderTransitions = map[string][]string{
	OrderPending:   {OrderPreparing, OrderReady, OrderServed, OrderCancelled},
	OrderPreparing: {OrderReady, OrderServed, OrderCancelled},
	OrderReady:     {OrderServed, OrderCancelled},
	OrderServed:    {},
	OrderCancelled: {},
}

// ValidOrderStatus reports membership in the status enum.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is an allowed status move.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidPaymentStatus reports membership in the payment status enum.
func ValidPaymentStatus(s string) bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentRefunded
}

// ValidPaymentMethod reports membership in the payment method enum.
func ValidPaymentMethod(s string) bool {
	return s == PayCash || s == PayCard || s == PayMobile
}

// SettlementPolicy decides how a status transition affects payment state.
type SettlementPolicy func(order *Order, newStatus string) (paymentStatus string, changed bool)

// ServedImpliesPaid is the default settlement policy: serving an order
// settles it.
func ServedImpliesPaid(order *Order, newStatus string) (string, bool) {
	if newStatus == OrderServed && order.PaymentStatus == PaymentPending {
		return PaymentPaid, true
	}
	return order.PaymentStatus, false
}

// AuthResult is the outcome of a successful authentication.
type AuthResult struct {
	Account   *Account
	Token     string
	ExpiresIn int64 // seconds
	// VendorScope is populated for multi-vendor admins.
	VendorScope []uint
}

// TokenClaims are the verified contents of a bearer token.
type TokenClaims struct {
	AccountID uint   `json:"account_id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
