package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/you/ordersvc/domain"
)

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

func NewMockPasswordService() *MockPasswordService { return &MockPasswordService{} }

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed_"+password
}

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateFunc func(accountID uint, role, email string) (string, int64, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
	TTLFunc      func(role string) time.Duration
}

func NewMockTokenService() *MockTokenService { return &MockTokenService{} }

func (m *MockTokenService) Generate(accountID uint, role, email string) (string, int64, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(accountID, role, email)
	}
	return "mock_token", 3600, nil
}

func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) TTL(role string) time.Duration {
	if m.TTLFunc != nil {
		return m.TTLFunc(role)
	}
	return time.Hour
}

// MockRevocationStore implements domain.RevocationStore with an in-memory map
type MockRevocationStore struct {
	mu      sync.Mutex
	entries map[string]bool

	AddFunc      func(ctx context.Context, token, role string, ttl time.Duration) error
	ContainsFunc func(ctx context.Context, token, role string) (bool, error)
}

func NewMockRevocationStore() *MockRevocationStore {
	return &MockRevocationStore{entries: make(map[string]bool)}
}

func (m *MockRevocationStore) Add(ctx context.Context, token, role string, ttl time.Duration) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, token, role, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[role+":"+token] = true
	return nil
}

func (m *MockRevocationStore) Contains(ctx context.Context, token, role string) (bool, error) {
	if m.ContainsFunc != nil {
		return m.ContainsFunc(ctx, token, role)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[role+":"+token], nil
}

func (m *MockRevocationStore) Sweep(ctx context.Context) error { return nil }

// MockRateLimiter implements domain.RateLimiter interface for testing
type MockRateLimiter struct {
	AllowFunc func(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

func NewMockRateLimiter() *MockRateLimiter { return &MockRateLimiter{} }

func (m *MockRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, key, limit, window)
	}
	return true, nil
}

// MockNotifier implements domain.Notifier and records every enqueued event
type MockNotifier struct {
	mu     sync.Mutex
	Events []domain.Event
	// Reject makes Enqueue drop events and report false, mimicking a
	// full queue.
	Reject bool
}

func NewMockNotifier() *MockNotifier { return &MockNotifier{} }

func (m *MockNotifier) Enqueue(event domain.Event) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Reject {
		return false
	}
	m.Events = append(m.Events, event)
	return true
}

// Recorded returns a copy of the events seen so far.
func (m *MockNotifier) Recorded() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Event, len(m.Events))
	copy(out, m.Events)
	return out
}

// MockMailer implements domain.Mailer and records sent messages
type MockMailer struct {
	mu       sync.Mutex
	SendFunc func(to, subject, htmlBody string) error
	Sent     []string
}

func NewMockMailer() *MockMailer { return &MockMailer{} }

func (m *MockMailer) Send(to, subject, htmlBody string) error {
	if m.SendFunc != nil {
		return m.SendFunc(to, subject, htmlBody)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, to+"|"+subject)
	return nil
}

// SentCount returns how many messages were delivered.
func (m *MockMailer) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// MockSMSSender implements domain.SMSSender and records sent messages
type MockSMSSender struct {
	mu          sync.Mutex
	SendSMSFunc func(to, message string) error
	Sent        []string
}

func NewMockSMSSender() *MockSMSSender { return &MockSMSSender{} }

func (m *MockSMSSender) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, to+"|"+message)
	return nil
}

// SentCount returns how many messages were delivered.
func (m *MockSMSSender) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// MockAccessService implements domain.AccessService interface for testing
type MockAccessService struct {
	GrantFunc              func(ctx context.Context, vendorID uint, email, name string, expiresAt *time.Time, notes string) (*domain.AccessGrant, error)
	VerifyTokenFunc        func(ctx context.Context, token string) (*domain.AccessGrant, error)
	RedeemTokenFunc        func(ctx context.Context, token, email, password, name string) (*domain.Account, error)
	AcceptFunc             func(ctx context.Context, grantID uint, email string) (*domain.AccessGrant, error)
	RevokeFunc             func(ctx context.Context, grantID, byVendorID uint) error
	ListForVendorFunc      func(ctx context.Context, vendorID uint) ([]*domain.AccessGrant, error)
	ResolveVendorScopeFunc func(ctx context.Context, email string) ([]uint, error)
}

func NewMockAccessService() *MockAccessService { return &MockAccessService{} }

func (m *MockAccessService) Grant(ctx context.Context, vendorID uint, email, name string, expiresAt *time.Time, notes string) (*domain.AccessGrant, error) {
	if m.GrantFunc != nil {
		return m.GrantFunc(ctx, vendorID, email, name, expiresAt, notes)
	}
	return &domain.AccessGrant{VendorID: vendorID, UserEmail: email}, nil
}

func (m *MockAccessService) VerifyToken(ctx context.Context, token string) (*domain.AccessGrant, error) {
	if m.VerifyTokenFunc != nil {
		return m.VerifyTokenFunc(ctx, token)
	}
	return nil, domain.ErrGrantNotFound
}

func (m *MockAccessService) RedeemToken(ctx context.Context, token, email, password, name string) (*domain.Account, error) {
	if m.RedeemTokenFunc != nil {
		return m.RedeemTokenFunc(ctx, token, email, password, name)
	}
	return nil, domain.ErrGrantNotFound
}

func (m *MockAccessService) Accept(ctx context.Context, grantID uint, email string) (*domain.AccessGrant, error) {
	if m.AcceptFunc != nil {
		return m.AcceptFunc(ctx, grantID, email)
	}
	return nil, domain.ErrGrantNotFound
}

func (m *MockAccessService) Revoke(ctx context.Context, grantID, byVendorID uint) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, grantID, byVendorID)
	}
	return nil
}

func (m *MockAccessService) ListForVendor(ctx context.Context, vendorID uint) ([]*domain.AccessGrant, error) {
	if m.ListForVendorFunc != nil {
		return m.ListForVendorFunc(ctx, vendorID)
	}
	return nil, nil
}

func (m *MockAccessService) ResolveVendorScope(ctx context.Context, email string) ([]uint, error) {
	if m.ResolveVendorScopeFunc != nil {
		return m.ResolveVendorScopeFunc(ctx, email)
	}
	return nil, nil
}

// Ensure interface compliance
var (
	_ domain.PasswordService = (*MockPasswordService)(nil)
	_ domain.TokenService    = (*MockTokenService)(nil)
	_ domain.RevocationStore = (*MockRevocationStore)(nil)
	_ domain.RateLimiter     = (*MockRateLimiter)(nil)
	_ domain.Notifier        = (*MockNotifier)(nil)
	_ domain.Mailer          = (*MockMailer)(nil)
	_ domain.SMSSender       = (*MockSMSSender)(nil)
	_ domain.AccessService   = (*MockAccessService)(nil)
)
