package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/ordersvc/domain"
)

// TableRepositoryImpl implements domain.TableRepository using GORM
type TableRepositoryImpl struct {
	db *gorm.DB
}

// DBTable represents the database model for Table
type DBTable struct {
	ID        uint   `gorm:"primaryKey"`
	VendorID  uint   `gorm:"uniqueIndex:idx_vendor_number;index"`
	Number    string `gorm:"uniqueIndex:idx_vendor_number;size:16"`
	Capacity  int
	Status    string `gorm:"index;size:16"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBTable) TableName() string {
	return "tables"
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *gorm.DB) domain.TableRepository {
	return &TableRepositoryImpl{db: db}
}

// Create implements domain.TableRepository
func (r *TableRepositoryImpl) Create(ctx context.Context, table *domain.Table) error {
	dbTable := r.domainToDB(table)
	if err := r.db.WithContext(ctx).Create(dbTable).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateTable
		}
		return err
	}
	table.ID = dbTable.ID
	table.CreatedAt = dbTable.CreatedAt
	return nil
}

// FindByID implements domain.TableRepository
func (r *TableRepositoryImpl) FindByID(ctx context.Context, id, vendorID uint) (*domain.Table, error) {
	var dbTable DBTable
	err := r.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		First(&dbTable).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTableNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbTable), nil
}

// ListByVendor implements domain.TableRepository
func (r *TableRepositoryImpl) ListByVendor(ctx context.Context, vendorID uint) ([]*domain.Table, error) {
	var dbTables []DBTable
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("number ASC").
		Find(&dbTables).Error
	if err != nil {
		return nil, err
	}
	tables := make([]*domain.Table, 0, len(dbTables))
	for i := range dbTables {
		tables = append(tables, r.dbToDomain(&dbTables[i]))
	}
	return tables, nil
}

// Update implements domain.TableRepository
func (r *TableRepositoryImpl) Update(ctx context.Context, table *domain.Table) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", table.ID, table.VendorID).
		Select("Number", "Capacity", "Status").
		Updates(r.domainToDB(table))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateTable
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTableNotFound
	}
	return nil
}

// Delete implements domain.TableRepository
func (r *TableRepositoryImpl) Delete(ctx context.Context, id, vendorID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		Delete(&DBTable{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrTableNotFound
	}
	return nil
}

func (r *TableRepositoryImpl) domainToDB(table *domain.Table) *DBTable {
	return &DBTable{
		ID:        table.ID,
		VendorID:  table.VendorID,
		Number:    table.Number,
		Capacity:  table.Capacity,
		Status:    table.Status,
		CreatedAt: table.CreatedAt,
	}
}

func (r *TableRepositoryImpl) dbToDomain(dbTable *DBTable) *domain.Table {
	return &domain.Table{
		ID:        dbTable.ID,
		VendorID:  dbTable.VendorID,
		Number:    dbTable.Number,
		Capacity:  dbTable.Capacity,
		Status:    dbTable.Status,
		CreatedAt: dbTable.CreatedAt,
		UpdatedAt: dbTable.UpdatedAt,
	}
}
