package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/you/ordersvc/domain"
)

// AccountRepositoryImpl implements domain.AccountRepository using GORM
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// DBAccount represents the database model for Account. One table holds every
// role; email uniqueness is enforced per (role, email) so namespaces stay
// independent across roles.
type DBAccount struct {
	ID           uint   `gorm:"primaryKey"`
	Role         string `gorm:"uniqueIndex:idx_role_email;index;size:32"`
	Name         string `gorm:"size:100"`
	Email        string `gorm:"uniqueIndex:idx_role_email;size:255"`
	PasswordHash string `gorm:"column:password"`
	IsActive     bool   `gorm:"index"`
	LastLogin    *time.Time

	LoginAttempts int
	LockUntil     *time.Time

	ResetTokenHash   string `gorm:"index;size:64"`
	ResetTokenExpiry *time.Time

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Vendor *DBVendorProfile `gorm:"foreignKey:AccountID"`
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "accounts"
}

// DBVendorProfile is the vendor-only payload row.
type DBVendorProfile struct {
	AccountID         uint   `gorm:"primaryKey"`
	Address           string `gorm:"size:255"`
	City              string `gorm:"size:100"`
	State             string `gorm:"size:100"`
	ZipCode           string `gorm:"size:20"`
	Phone             string `gorm:"size:32"`
	Cuisine           string `gorm:"index;size:64"`
	Description       string `gorm:"size:500"`
	Logo              string
	TaxRate           float64
	ServiceChargeRate float64
}

func (DBVendorProfile) TableName() string {
	return "vendor_profiles"
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// Create implements domain.AccountRepository
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.Account) error {
	dbAccount := r.domainToDB(account)
	if err := r.db.WithContext(ctx).Create(dbAccount).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	account.ID = dbAccount.ID
	account.CreatedAt = dbAccount.CreatedAt
	return nil
}

// FindByEmail implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, role, email string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Preload("Vendor").
		Where("role = ? AND email = ?", role, strings.ToLower(email)).
		First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// FindByID implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, role string, id uint) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Preload("Vendor").
		Where("role = ? AND id = ?", role, id).
		First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// FindByResetTokenHash implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByResetTokenHash(ctx context.Context, role, tokenHash string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).
		Where("role = ? AND reset_token_hash = ? AND reset_token_expiry > ?", role, tokenHash, time.Now()).
		First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// Update implements domain.AccountRepository
func (r *AccountRepositoryImpl) Update(ctx context.Context, account *domain.Account) error {
	dbAccount := r.domainToDB(account)
	if err := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(dbAccount).Error; err != nil {
		return err
	}
	return nil
}

// CountByRole implements domain.AccountRepository
func (r *AccountRepositoryImpl) CountByRole(ctx context.Context, role string, activeOnly bool, since, until *time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&DBAccount{}).Where("role = ?", role)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	if until != nil {
		q = q.Where("created_at < ?", *until)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

// CountLoggedInSince implements domain.AccountRepository
func (r *AccountRepositoryImpl) CountLoggedInSince(ctx context.Context, role string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBAccount{}).
		Where("role = ? AND last_login >= ?", role, since).
		Count(&count).Error
	return count, err
}

// ListVendors implements domain.AccountRepository. A nil ids slice lists all
// active vendors.
func (r *AccountRepositoryImpl) ListVendors(ctx context.Context, ids []uint) ([]*domain.Account, error) {
	q := r.db.WithContext(ctx).Preload("Vendor").
		Where("role = ? AND is_active = ?", domain.RoleVendor, true).
		Order("name ASC")
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	var dbAccounts []DBAccount
	if err := q.Find(&dbAccounts).Error; err != nil {
		return nil, err
	}
	accounts := make([]*domain.Account, 0, len(dbAccounts))
	for i := range dbAccounts {
		accounts = append(accounts, r.dbToDomain(&dbAccounts[i]))
	}
	return accounts, nil
}

// domainToDB converts domain account to database account
func (r *AccountRepositoryImpl) domainToDB(account *domain.Account) *DBAccount {
	dbAccount := &DBAccount{
		ID:               account.ID,
		Role:             account.Role,
		Name:             account.Name,
		Email:            strings.ToLower(account.Email),
		PasswordHash:     account.PasswordHash,
		IsActive:         account.IsActive,
		LastLogin:        account.LastLogin,
		LoginAttempts:    account.LoginAttempts,
		LockUntil:        account.LockUntil,
		ResetTokenHash:   account.ResetTokenHash,
		ResetTokenExpiry: account.ResetTokenExpiry,
		CreatedAt:        account.CreatedAt,
	}
	if account.Vendor != nil {
		dbAccount.Vendor = &DBVendorProfile{
			AccountID:         account.ID,
			Address:           account.Vendor.Address,
			City:              account.Vendor.City,
			State:             account.Vendor.State,
			ZipCode:           account.Vendor.ZipCode,
			Phone:             account.Vendor.Phone,
			Cuisine:           account.Vendor.Cuisine,
			Description:       account.Vendor.Description,
			Logo:              account.Vendor.Logo,
			TaxRate:           account.Vendor.TaxRate,
			ServiceChargeRate: account.Vendor.ServiceChargeRate,
		}
	}
	return dbAccount
}

// dbToDomain converts database account to domain account
func (r *AccountRepositoryImpl) dbToDomain(dbAccount *DBAccount) *domain.Account {
	account := &domain.Account{
		ID:               dbAccount.ID,
		Role:             dbAccount.Role,
		Name:             dbAccount.Name,
		Email:            dbAccount.Email,
		PasswordHash:     dbAccount.PasswordHash,
		IsActive:         dbAccount.IsActive,
		LastLogin:        dbAccount.LastLogin,
		LoginAttempts:    dbAccount.LoginAttempts,
		LockUntil:        dbAccount.LockUntil,
		ResetTokenHash:   dbAccount.ResetTokenHash,
		ResetTokenExpiry: dbAccount.ResetTokenExpiry,
		CreatedAt:        dbAccount.CreatedAt,
		UpdatedAt:        dbAccount.UpdatedAt,
	}
	if dbAccount.Vendor != nil {
		account.Vendor = &domain.VendorProfile{
			AccountID:         dbAccount.Vendor.AccountID,
			Address:           dbAccount.Vendor.Address,
			City:              dbAccount.Vendor.City,
			State:             dbAccount.Vendor.State,
			ZipCode:           dbAccount.Vendor.ZipCode,
			Phone:             dbAccount.Vendor.Phone,
			Cuisine:           dbAccount.Vendor.Cuisine,
			Description:       dbAccount.Vendor.Description,
			Logo:              dbAccount.Vendor.Logo,
			TaxRate:           dbAccount.Vendor.TaxRate,
			ServiceChargeRate: dbAccount.Vendor.ServiceChargeRate,
		}
	}
	return account
}
