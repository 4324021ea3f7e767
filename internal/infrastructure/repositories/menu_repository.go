package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/ordersvc/domain"
)

// MenuRepositoryImpl implements domain.MenuRepository using GORM
type MenuRepositoryImpl struct {
	db *gorm.DB
}

// DBMenuItem represents the database model for MenuItem
type DBMenuItem struct {
	ID          uint   `gorm:"primaryKey"`
	VendorID    uint   `gorm:"index"`
	Category    string `gorm:"index;size:64"`
	Name        string `gorm:"size:100"`
	Description string `gorm:"size:500"`
	Price       float64
	Available   bool `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBMenuItem) TableName() string {
	return "menu_items"
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *gorm.DB) domain.MenuRepository {
	return &MenuRepositoryImpl{db: db}
}

// Create implements domain.MenuRepository
func (r *MenuRepositoryImpl) Create(ctx context.Context, item *domain.MenuItem) error {
	dbItem := r.domainToDB(item)
	if err := r.db.WithContext(ctx).Create(dbItem).Error; err != nil {
		return err
	}
	item.ID = dbItem.ID
	item.CreatedAt = dbItem.CreatedAt
	return nil
}

// FindByID implements domain.MenuRepository
func (r *MenuRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.MenuItem, error) {
	var dbItem DBMenuItem
	if err := r.db.WithContext(ctx).First(&dbItem, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbItem), nil
}

// ListByVendor implements domain.MenuRepository
func (r *MenuRepositoryImpl) ListByVendor(ctx context.Context, vendorID uint) ([]*domain.MenuItem, error) {
	var dbItems []DBMenuItem
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("category ASC, name ASC").
		Find(&dbItems).Error
	if err != nil {
		return nil, err
	}
	items := make([]*domain.MenuItem, 0, len(dbItems))
	for i := range dbItems {
		items = append(items, r.dbToDomain(&dbItems[i]))
	}
	return items, nil
}

// Update implements domain.MenuRepository
func (r *MenuRepositoryImpl) Update(ctx context.Context, item *domain.MenuItem) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", item.ID, item.VendorID).
		Select("Category", "Name", "Description", "Price", "Available").
		Updates(r.domainToDB(item))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

// Delete implements domain.MenuRepository. Vendor-scoped so a vendor can only
// delete its own catalog entries.
func (r *MenuRepositoryImpl) Delete(ctx context.Context, id, vendorID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		Delete(&DBMenuItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (r *MenuRepositoryImpl) domainToDB(item *domain.MenuItem) *DBMenuItem {
	return &DBMenuItem{
		ID:          item.ID,
		VendorID:    item.VendorID,
		Category:    item.Category,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Available:   item.Available,
		CreatedAt:   item.CreatedAt,
	}
}

func (r *MenuRepositoryImpl) dbToDomain(dbItem *DBMenuItem) *domain.MenuItem {
	return &domain.MenuItem{
		ID:          dbItem.ID,
		VendorID:    dbItem.VendorID,
		Category:    dbItem.Category,
		Name:        dbItem.Name,
		Description: dbItem.Description,
		Price:       dbItem.Price,
		Available:   dbItem.Available,
		CreatedAt:   dbItem.CreatedAt,
		UpdatedAt:   dbItem.UpdatedAt,
	}
}
