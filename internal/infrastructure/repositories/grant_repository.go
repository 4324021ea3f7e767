package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/you/ordersvc/domain"
)

// GrantRepositoryImpl implements domain.GrantRepository using GORM
type GrantRepositoryImpl struct {
	db *gorm.DB
}

// DBAccessGrant represents the database model for AccessGrant. One row per
// (vendor, grantee email); revoked rows are reactivated in place rather than
// duplicated.
type DBAccessGrant struct {
	ID          uint   `gorm:"primaryKey"`
	VendorID    uint   `gorm:"uniqueIndex:idx_vendor_email;index"`
	UserEmail   string `gorm:"uniqueIndex:idx_vendor_email;index;size:255"`
	UserName    string `gorm:"size:100"`
	AccessType  string `gorm:"size:32"`
	AccessToken string `gorm:"index;size:64"`
	Status      string `gorm:"index;size:16"`

	InvitedAt      time.Time
	AcceptedAt     *time.Time
	LastAccessedAt *time.Time
	ExpiresAt      *time.Time
	Notes          string `gorm:"size:500"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBAccessGrant) TableName() string {
	return "access_grants"
}

// NewGrantRepository creates a new grant repository
func NewGrantRepository(db *gorm.DB) domain.GrantRepository {
	return &GrantRepositoryImpl{db: db}
}

// Create implements domain.GrantRepository
func (r *GrantRepositoryImpl) Create(ctx context.Context, grant *domain.AccessGrant) error {
	dbGrant := r.domainToDB(grant)
	if err := r.db.WithContext(ctx).Create(dbGrant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrGrantExists
		}
		return err
	}
	grant.ID = dbGrant.ID
	grant.CreatedAt = dbGrant.CreatedAt
	return nil
}

// FindByID implements domain.GrantRepository
func (r *GrantRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.AccessGrant, error) {
	var dbGrant DBAccessGrant
	if err := r.db.WithContext(ctx).First(&dbGrant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGrantNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbGrant), nil
}

// FindByToken implements domain.GrantRepository
func (r *GrantRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.AccessGrant, error) {
	var dbGrant DBAccessGrant
	err := r.db.WithContext(ctx).
		Where("access_token = ? AND access_token <> ''", token).
		First(&dbGrant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGrantNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbGrant), nil
}

// FindByVendorAndEmail implements domain.GrantRepository
func (r *GrantRepositoryImpl) FindByVendorAndEmail(ctx context.Context, vendorID uint, email string) (*domain.AccessGrant, error) {
	var dbGrant DBAccessGrant
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND user_email = ?", vendorID, strings.ToLower(email)).
		First(&dbGrant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGrantNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbGrant), nil
}

// ListByVendor implements domain.GrantRepository
func (r *GrantRepositoryImpl) ListByVendor(ctx context.Context, vendorID uint) ([]*domain.AccessGrant, error) {
	var dbGrants []DBAccessGrant
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&dbGrants).Error
	if err != nil {
		return nil, err
	}
	return r.dbToDomainSlice(dbGrants), nil
}

// ListByEmail implements domain.GrantRepository. An empty statuses slice
// matches every status.
func (r *GrantRepositoryImpl) ListByEmail(ctx context.Context, email string, statuses []string) ([]*domain.AccessGrant, error) {
	q := r.db.WithContext(ctx).Where("user_email = ?", strings.ToLower(email))
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var dbGrants []DBAccessGrant
	if err := q.Order("created_at DESC").Find(&dbGrants).Error; err != nil {
		return nil, err
	}
	return r.dbToDomainSlice(dbGrants), nil
}

// Update implements domain.GrantRepository
func (r *GrantRepositoryImpl) Update(ctx context.Context, grant *domain.AccessGrant) error {
	return r.db.WithContext(ctx).Save(r.domainToDB(grant)).Error
}

func (r *GrantRepositoryImpl) domainToDB(grant *domain.AccessGrant) *DBAccessGrant {
	return &DBAccessGrant{
		ID:             grant.ID,
		VendorID:       grant.VendorID,
		UserEmail:      strings.ToLower(grant.UserEmail),
		UserName:       grant.UserName,
		AccessType:     grant.AccessType,
		AccessToken:    grant.AccessToken,
		Status:         grant.Status,
		InvitedAt:      grant.InvitedAt,
		AcceptedAt:     grant.AcceptedAt,
		LastAccessedAt: grant.LastAccessedAt,
		ExpiresAt:      grant.ExpiresAt,
		Notes:          grant.Notes,
		CreatedAt:      grant.CreatedAt,
	}
}

func (r *GrantRepositoryImpl) dbToDomain(dbGrant *DBAccessGrant) *domain.AccessGrant {
	return &domain.AccessGrant{
		ID:             dbGrant.ID,
		VendorID:       dbGrant.VendorID,
		UserEmail:      dbGrant.UserEmail,
		UserName:       dbGrant.UserName,
		AccessType:     dbGrant.AccessType,
		AccessToken:    dbGrant.AccessToken,
		Status:         dbGrant.Status,
		InvitedAt:      dbGrant.InvitedAt,
		AcceptedAt:     dbGrant.AcceptedAt,
		LastAccessedAt: dbGrant.LastAccessedAt,
		ExpiresAt:      dbGrant.ExpiresAt,
		Notes:          dbGrant.Notes,
		CreatedAt:      dbGrant.CreatedAt,
		UpdatedAt:      dbGrant.UpdatedAt,
	}
}

func (r *GrantRepositoryImpl) dbToDomainSlice(dbGrants []DBAccessGrant) []*domain.AccessGrant {
	grants := make([]*domain.AccessGrant, 0, len(dbGrants))
	for i := range dbGrants {
		grants = append(grants, r.dbToDomain(&dbGrants[i]))
	}
	return grants
}
