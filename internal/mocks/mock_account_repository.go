package mocks

import (
	"context"
	"time"

	"github.com/you/ordersvc/domain"
)

// MockAccountRepository implements domain.AccountRepository interface for testing
type MockAccountRepository struct {
	CreateFunc               func(ctx context.Context, account *domain.Account) error
	FindByEmailFunc          func(ctx context.Context, role, email string) (*domain.Account, error)
	FindByIDFunc             func(ctx context.Context, role string, id uint) (*domain.Account, error)
	FindByResetTokenHashFunc func(ctx context.Context, role, tokenHash string) (*domain.Account, error)
	UpdateFunc               func(ctx context.Context, account *domain.Account) error
	CountByRoleFunc          func(ctx context.Context, role string, activeOnly bool, since, until *time.Time) (int64, error)
	CountLoggedInSinceFunc   func(ctx context.Context, role string, since time.Time) (int64, error)
	ListVendorsFunc          func(ctx context.Context, ids []uint) ([]*domain.Account, error)
}

// NewMockAccountRepository creates a new MockAccountRepository with default behaviors
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{}
}

// Create creates a new account
func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return nil
}

// FindByEmail finds an account by role and email
func (m *MockAccountRepository) FindByEmail(ctx context.Context, role, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, role, email)
	}
	return nil, domain.ErrAccountNotFound
}

// FindByID finds an account by role and id
func (m *MockAccountRepository) FindByID(ctx context.Context, role string, id uint) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, role, id)
	}
	return nil, domain.ErrAccountNotFound
}

// FindByResetTokenHash finds an account by a live reset token digest
func (m *MockAccountRepository) FindByResetTokenHash(ctx context.Context, role, tokenHash string) (*domain.Account, error) {
	if m.FindByResetTokenHashFunc != nil {
		return m.FindByResetTokenHashFunc(ctx, role, tokenHash)
	}
	return nil, domain.ErrAccountNotFound
}

// Update updates an existing account
func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	return nil
}

// CountByRole counts accounts of a role
func (m *MockAccountRepository) CountByRole(ctx context.Context, role string, activeOnly bool, since, until *time.Time) (int64, error) {
	if m.CountByRoleFunc != nil {
		return m.CountByRoleFunc(ctx, role, activeOnly, since, until)
	}
	return 0, nil
}

// CountLoggedInSince counts accounts with a recent login
func (m *MockAccountRepository) CountLoggedInSince(ctx context.Context, role string, since time.Time) (int64, error) {
	if m.CountLoggedInSinceFunc != nil {
		return m.CountLoggedInSinceFunc(ctx, role, since)
	}
	return 0, nil
}

// ListVendors lists active vendor accounts
func (m *MockAccountRepository) ListVendors(ctx context.Context, ids []uint) ([]*domain.Account, error) {
	if m.ListVendorsFunc != nil {
		return m.ListVendorsFunc(ctx, ids)
	}
	return nil, nil
}

// Ensure interface compliance
var _ domain.AccountRepository = (*MockAccountRepository)(nil)
