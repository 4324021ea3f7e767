package mocks

import (
	"context"
	"time"

	"github.com/you/ordersvc/domain"
)

// MockGrantRepository implements domain.GrantRepository interface for testing
type MockGrantRepository struct {
	CreateFunc               func(ctx context.Context, grant *domain.AccessGrant) error
	FindByIDFunc             func(ctx context.Context, id uint) (*domain.AccessGrant, error)
	FindByTokenFunc          func(ctx context.Context, token string) (*domain.AccessGrant, error)
	FindByVendorAndEmailFunc func(ctx context.Context, vendorID uint, email string) (*domain.AccessGrant, error)
	ListByVendorFunc         func(ctx context.Context, vendorID uint) ([]*domain.AccessGrant, error)
	ListByEmailFunc          func(ctx context.Context, email string, statuses []string) ([]*domain.AccessGrant, error)
	UpdateFunc               func(ctx context.Context, grant *domain.AccessGrant) error
}

func NewMockGrantRepository() *MockGrantRepository { return &MockGrantRepository{} }

func (m *MockGrantRepository) Create(ctx context.Context, grant *domain.AccessGrant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, grant)
	}
	return nil
}

func (m *MockGrantRepository) FindByID(ctx context.Context, id uint) (*domain.AccessGrant, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrGrantNotFound
}

func (m *MockGrantRepository) FindByToken(ctx context.Context, token string) (*domain.AccessGrant, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, domain.ErrGrantNotFound
}

func (m *MockGrantRepository) FindByVendorAndEmail(ctx context.Context, vendorID uint, email string) (*domain.AccessGrant, error) {
	if m.FindByVendorAndEmailFunc != nil {
		return m.FindByVendorAndEmailFunc(ctx, vendorID, email)
	}
	return nil, domain.ErrGrantNotFound
}

func (m *MockGrantRepository) ListByVendor(ctx context.Context, vendorID uint) ([]*domain.AccessGrant, error) {
	if m.ListByVendorFunc != nil {
		return m.ListByVendorFunc(ctx, vendorID)
	}
	return nil, nil
}

func (m *MockGrantRepository) ListByEmail(ctx context.Context, email string, statuses []string) ([]*domain.AccessGrant, error) {
	if m.ListByEmailFunc != nil {
		return m.ListByEmailFunc(ctx, email, statuses)
	}
	return nil, nil
}

func (m *MockGrantRepository) Update(ctx context.Context, grant *domain.AccessGrant) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, grant)
	}
	return nil
}

// MockMenuRepository implements domain.MenuRepository interface for testing
type MockMenuRepository struct {
	CreateFunc       func(ctx context.Context, item *domain.MenuItem) error
	FindByIDFunc     func(ctx context.Context, id uint) (*domain.MenuItem, error)
	ListByVendorFunc func(ctx context.Context, vendorID uint) ([]*domain.MenuItem, error)
	UpdateFunc       func(ctx context.Context, item *domain.MenuItem) error
	DeleteFunc       func(ctx context.Context, id, vendorID uint) error
}

func NewMockMenuRepository() *MockMenuRepository { return &MockMenuRepository{} }

func (m *MockMenuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return nil
}

func (m *MockMenuRepository) FindByID(ctx context.Context, id uint) (*domain.MenuItem, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrMenuItemNotFound
}

func (m *MockMenuRepository) ListByVendor(ctx context.Context, vendorID uint) ([]*domain.MenuItem, error) {
	if m.ListByVendorFunc != nil {
		return m.ListByVendorFunc(ctx, vendorID)
	}
	return nil, nil
}

func (m *MockMenuRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, item)
	}
	return nil
}

func (m *MockMenuRepository) Delete(ctx context.Context, id, vendorID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, vendorID)
	}
	return nil
}

// MockOrderRepository implements domain.OrderRepository interface for testing
type MockOrderRepository struct {
	CreateFunc            func(ctx context.Context, order *domain.Order) error
	FindByIDFunc          func(ctx context.Context, id uint) (*domain.Order, error)
	FindByIDForVendorFunc func(ctx context.Context, id, vendorID uint) (*domain.Order, error)
	ListByVendorFunc      func(ctx context.Context, vendorID uint, filter domain.OrderFilter) ([]*domain.Order, int64, error)
	UpdateFunc            func(ctx context.Context, order *domain.Order) error
	ReplaceLinesFunc      func(ctx context.Context, order *domain.Order) error
	DeleteFunc            func(ctx context.Context, id, vendorID uint) error
}

func NewMockOrderRepository() *MockOrderRepository { return &MockOrderRepository{} }

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	return nil
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderRepository) FindByIDForVendor(ctx context.Context, id, vendorID uint) (*domain.Order, error) {
	if m.FindByIDForVendorFunc != nil {
		return m.FindByIDForVendorFunc(ctx, id, vendorID)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderRepository) ListByVendor(ctx context.Context, vendorID uint, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	if m.ListByVendorFunc != nil {
		return m.ListByVendorFunc(ctx, vendorID, filter)
	}
	return nil, 0, nil
}

func (m *MockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, order)
	}
	return nil
}

func (m *MockOrderRepository) ReplaceLines(ctx context.Context, order *domain.Order) error {
	if m.ReplaceLinesFunc != nil {
		return m.ReplaceLinesFunc(ctx, order)
	}
	return nil
}

func (m *MockOrderRepository) Delete(ctx context.Context, id, vendorID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, vendorID)
	}
	return nil
}

// MockAnalyticsRepository implements domain.AnalyticsRepository interface for testing
type MockAnalyticsRepository struct {
	CountOrdersFunc             func(ctx context.Context, vendorIDs []uint, since, until *time.Time) (int64, error)
	SumRevenueFunc              func(ctx context.Context, vendorIDs []uint, since, until *time.Time) (float64, error)
	RevenueByDayFunc            func(ctx context.Context, vendorIDs []uint, since time.Time) ([]domain.RevenueBucket, error)
	OrdersByStatusFunc          func(ctx context.Context, vendorIDs []uint, since *time.Time) ([]domain.GroupTotal, error)
	OrdersByPaymentMethodFunc   func(ctx context.Context, vendorIDs []uint, since *time.Time) ([]domain.GroupTotal, error)
	VendorsByCuisineFunc        func(ctx context.Context, vendorIDs []uint) ([]domain.GroupTotal, error)
	ActiveVendorsInPeriodFunc   func(ctx context.Context, vendorIDs []uint, since time.Time) (int64, error)
	ActiveCustomersInPeriodFunc func(ctx context.Context, vendorIDs []uint, since time.Time) (int64, error)
	AvgOrderValueFunc           func(ctx context.Context, vendorIDs []uint, since *time.Time) (float64, error)
}

func NewMockAnalyticsRepository() *MockAnalyticsRepository { return &MockAnalyticsRepository{} }

func (m *MockAnalyticsRepository) CountOrders(ctx context.Context, vendorIDs []uint, since, until *time.Time) (int64, error) {
	if m.CountOrdersFunc != nil {
		return m.CountOrdersFunc(ctx, vendorIDs, since, until)
	}
	return 0, nil
}

func (m *MockAnalyticsRepository) SumRevenue(ctx context.Context, vendorIDs []uint, since, until *time.Time) (float64, error) {
	if m.SumRevenueFunc != nil {
		return m.SumRevenueFunc(ctx, vendorIDs, since, until)
	}
	return 0, nil
}

func (m *MockAnalyticsRepository) RevenueByDay(ctx context.Context, vendorIDs []uint, since time.Time) ([]domain.RevenueBucket, error) {
	if m.RevenueByDayFunc != nil {
		return m.RevenueByDayFunc(ctx, vendorIDs, since)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) OrdersByStatus(ctx context.Context, vendorIDs []uint, since *time.Time) ([]domain.GroupTotal, error) {
	if m.OrdersByStatusFunc != nil {
		return m.OrdersByStatusFunc(ctx, vendorIDs, since)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) OrdersByPaymentMethod(ctx context.Context, vendorIDs []uint, since *time.Time) ([]domain.GroupTotal, error) {
	if m.OrdersByPaymentMethodFunc != nil {
		return m.OrdersByPaymentMethodFunc(ctx, vendorIDs, since)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) VendorsByCuisine(ctx context.Context, vendorIDs []uint) ([]domain.GroupTotal, error) {
	if m.VendorsByCuisineFunc != nil {
		return m.VendorsByCuisineFunc(ctx, vendorIDs)
	}
	return nil, nil
}

func (m *MockAnalyticsRepository) ActiveVendorsInPeriod(ctx context.Context, vendorIDs []uint, since time.Time) (int64, error) {
	if m.ActiveVendorsInPeriodFunc != nil {
		return m.ActiveVendorsInPeriodFunc(ctx, vendorIDs, since)
	}
	return 0, nil
}

func (m *MockAnalyticsRepository) ActiveCustomersInPeriod(ctx context.Context, vendorIDs []uint, since time.Time) (int64, error) {
	if m.ActiveCustomersInPeriodFunc != nil {
		return m.ActiveCustomersInPeriodFunc(ctx, vendorIDs, since)
	}
	return 0, nil
}

func (m *MockAnalyticsRepository) AvgOrderValue(ctx context.Context, vendorIDs []uint, since *time.Time) (float64, error) {
	if m.AvgOrderValueFunc != nil {
		return m.AvgOrderValueFunc(ctx, vendorIDs, since)
	}
	return 0, nil
}

// Ensure interface compliance
var (
	_ domain.GrantRepository     = (*MockGrantRepository)(nil)
	_ domain.MenuRepository      = (*MockMenuRepository)(nil)
	_ domain.OrderRepository     = (*MockOrderRepository)(nil)
	_ domain.AnalyticsRepository = (*MockAnalyticsRepository)(nil)
)
