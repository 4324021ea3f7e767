package mocks

import (
	"context"

	"github.com/you/ordersvc/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, role string, account *domain.Account, password string) (*domain.Account, error)
	LoginFunc          func(ctx context.Context, role, email, password string) (*domain.AuthResult, error)
	ChangePasswordFunc func(ctx context.Context, role string, accountID uint, current, next string) error
	ForgotPasswordFunc func(ctx context.Context, role, email string) error
	ResetPasswordFunc  func(ctx context.Context, role, token, password string) error
	LogoutFunc         func(ctx context.Context, token, role string) error
	VerifyFunc         func(ctx context.Context, token string) (*domain.TokenClaims, error)
}

func NewMockAuthService() *MockAuthService { return &MockAuthService{} }

func (m *MockAuthService) Register(ctx context.Context, role string, account *domain.Account, password string) (*domain.Account, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, role, account, password)
	}
	account.ID = 1
	account.Role = role
	return account, nil
}

func (m *MockAuthService) Login(ctx context.Context, role, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, role, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) ChangePassword(ctx context.Context, role string, accountID uint, current, next string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, role, accountID, current, next)
	}
	return nil
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, role, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, role, email)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, role, token, password string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, role, token, password)
	}
	return nil
}

func (m *MockAuthService) Logout(ctx context.Context, token, role string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token, role)
	}
	return nil
}

func (m *MockAuthService) Verify(ctx context.Context, token string) (*domain.TokenClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return nil, domain.ErrTokenInvalid
}

// MockOrderService implements domain.OrderService interface for testing
type MockOrderService struct {
	CreateFunc              func(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error)
	GetByIDFunc             func(ctx context.Context, id uint) (*domain.Order, error)
	ListFunc                func(ctx context.Context, vendorID uint, filter domain.OrderFilter) ([]*domain.Order, int64, error)
	UpdateStatusFunc        func(ctx context.Context, orderID, vendorID uint, status string) (*domain.Order, error)
	UpdatePaymentStatusFunc func(ctx context.Context, orderID, vendorID uint, status string) (*domain.Order, error)
	RecalculateOnEditFunc   func(ctx context.Context, orderID, vendorID uint, lines []domain.OrderLineInput, notes *string, estPrepTime *int) (*domain.Order, error)
	DeleteFunc              func(ctx context.Context, orderID, vendorID uint) error
}

func NewMockOrderService() *MockOrderService { return &MockOrderService{} }

func (m *MockOrderService) Create(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, input)
	}
	return nil, domain.ErrValidation
}

func (m *MockOrderService) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderService) List(ctx context.Context, vendorID uint, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, vendorID, filter)
	}
	return nil, 0, nil
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID, vendorID uint, status string) (*domain.Order, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, orderID, vendorID, status)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderService) UpdatePaymentStatus(ctx context.Context, orderID, vendorID uint, status string) (*domain.Order, error) {
	if m.UpdatePaymentStatusFunc != nil {
		return m.UpdatePaymentStatusFunc(ctx, orderID, vendorID, status)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderService) RecalculateOnEdit(ctx context.Context, orderID, vendorID uint, lines []domain.OrderLineInput, notes *string, estPrepTime *int) (*domain.Order, error) {
	if m.RecalculateOnEditFunc != nil {
		return m.RecalculateOnEditFunc(ctx, orderID, vendorID, lines, notes, estPrepTime)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderService) Delete(ctx context.Context, orderID, vendorID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, orderID, vendorID)
	}
	return nil
}

// MockAnalyticsService implements domain.AnalyticsService interface for testing
type MockAnalyticsService struct {
	DashboardStatsFunc       func(ctx context.Context, scope domain.Scope) (*domain.DashboardStats, error)
	VendorDashboardStatsFunc func(ctx context.Context, scope domain.Scope, vendorID uint) (*domain.VendorDashboardStats, error)
	RevenueSeriesFunc        func(ctx context.Context, scope domain.Scope, period string, vendorID *uint) ([]domain.RevenueBucket, error)
	VendorStatsFunc          func(ctx context.Context, scope domain.Scope, period string) (map[string]any, error)
	CustomerStatsFunc        func(ctx context.Context, scope domain.Scope, period string) (map[string]any, error)
	OrderStatsFunc           func(ctx context.Context, scope domain.Scope, period string) (map[string]any, error)
}

func NewMockAnalyticsService() *MockAnalyticsService { return &MockAnalyticsService{} }

func (m *MockAnalyticsService) DashboardStats(ctx context.Context, scope domain.Scope) (*domain.DashboardStats, error) {
	if m.DashboardStatsFunc != nil {
		return m.DashboardStatsFunc(ctx, scope)
	}
	return &domain.DashboardStats{}, nil
}

func (m *MockAnalyticsService) VendorDashboardStats(ctx context.Context, scope domain.Scope, vendorID uint) (*domain.VendorDashboardStats, error) {
	if m.VendorDashboardStatsFunc != nil {
		return m.VendorDashboardStatsFunc(ctx, scope, vendorID)
	}
	return &domain.VendorDashboardStats{VendorID: vendorID}, nil
}

func (m *MockAnalyticsService) RevenueSeries(ctx context.Context, scope domain.Scope, period string, vendorID *uint) ([]domain.RevenueBucket, error) {
	if m.RevenueSeriesFunc != nil {
		return m.RevenueSeriesFunc(ctx, scope, period, vendorID)
	}
	return nil, nil
}

func (m *MockAnalyticsService) VendorStats(ctx context.Context, scope domain.Scope, period string) (map[string]any, error) {
	if m.VendorStatsFunc != nil {
		return m.VendorStatsFunc(ctx, scope, period)
	}
	return map[string]any{}, nil
}

func (m *MockAnalyticsService) CustomerStats(ctx context.Context, scope domain.Scope, period string) (map[string]any, error) {
	if m.CustomerStatsFunc != nil {
		return m.CustomerStatsFunc(ctx, scope, period)
	}
	return map[string]any{}, nil
}

func (m *MockAnalyticsService) OrderStats(ctx context.Context, scope domain.Scope, period string) (map[string]any, error) {
	if m.OrderStatsFunc != nil {
		return m.OrderStatsFunc(ctx, scope, period)
	}
	return map[string]any{}, nil
}

// Ensure interface compliance
var (
	_ domain.AuthService      = (*MockAuthService)(nil)
	_ domain.OrderService     = (*MockOrderService)(nil)
	_ domain.AnalyticsService = (*MockAnalyticsService)(nil)
)
