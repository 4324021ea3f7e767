package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/ordersvc/domain"
)

// OrderRepositoryImpl implements domain.OrderRepository using GORM
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// DBOrder represents the database model for Order
type DBOrder struct {
	ID          uint   `gorm:"primaryKey"`
	OrderNumber string `gorm:"uniqueIndex;size:32"`
	VendorID    uint   `gorm:"index"`
	CustomerID  *uint  `gorm:"index"`
	TableNumber string `gorm:"index;size:16"`

	Subtotal            float64
	TaxRate             float64
	TaxAmount           float64
	ServiceChargeRate   float64
	ServiceChargeAmount float64
	TipPercentage       float64
	TipAmount           float64
	TotalAmount         float64

	Status        string `gorm:"index;size:16"`
	PaymentStatus string `gorm:"index;size:16"`
	PaymentMethod string `gorm:"size:16"`

	CustomerPhone   string `gorm:"size:32"`
	CustomerEmail   string `gorm:"size:255"`
	SpecialRequests string `gorm:"size:500"`
	Notes           string `gorm:"size:500"`

	EstimatedPreparationTime int
	ActualPreparationTime    int

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Lines []DBOrderLine `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (DBOrder) TableName() string {
	return "orders"
}

// DBOrderLine is a priced snapshot of one menu item on an order.
type DBOrderLine struct {
	ID         uint `gorm:"primaryKey"`
	OrderID    uint `gorm:"index"`
	MenuItemID uint
	Name       string `gorm:"size:100"`
	Price      float64
	Quantity   int
	Notes      string `gorm:"size:255"`
}

func (DBOrderLine) TableName() string {
	return "order_lines"
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// Create implements domain.OrderRepository. Lines are written in the same
// transaction as the order row.
func (r *OrderRepositoryImpl) Create(ctx context.Context, order *domain.Order) error {
	dbOrder := r.domainToDB(order)
	if err := r.db.WithContext(ctx).Create(dbOrder).Error; err != nil {
		return err
	}
	order.ID = dbOrder.ID
	order.CreatedAt = dbOrder.CreatedAt
	for i := range dbOrder.Lines {
		order.Lines[i].ID = dbOrder.Lines[i].ID
		order.Lines[i].OrderID = dbOrder.ID
	}
	return nil
}

// FindByID implements domain.OrderRepository
func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	var dbOrder DBOrder
	if err := r.db.WithContext(ctx).Preload("Lines").First(&dbOrder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbOrder), nil
}

// FindByIDForVendor implements domain.OrderRepository. A foreign vendor's
// order comes back as not found, never as forbidden.
func (r *OrderRepositoryImpl) FindByIDForVendor(ctx context.Context, id, vendorID uint) (*domain.Order, error) {
	var dbOrder DBOrder
	err := r.db.WithContext(ctx).Preload("Lines").
		Where("id = ? AND vendor_id = ?", id, vendorID).
		First(&dbOrder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbOrder), nil
}

// ListByVendor implements domain.OrderRepository
func (r *OrderRepositoryImpl) ListByVendor(ctx context.Context, vendorID uint, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&DBOrder{}).Where("vendor_id = ?", vendorID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.TableNumber != "" {
		q = q.Where("table_number = ?", filter.TableNumber)
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Since != nil {
		q = q.Where("created_at >= ?", *filter.Since)
	}
	if filter.Until != nil {
		q = q.Where("created_at < ?", *filter.Until)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var dbOrders []DBOrder
	err := q.Preload("Lines").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&dbOrders).Error
	if err != nil {
		return nil, 0, err
	}

	orders := make([]*domain.Order, 0, len(dbOrders))
	for i := range dbOrders {
		orders = append(orders, r.dbToDomain(&dbOrders[i]))
	}
	return orders, total, nil
}

// Update implements domain.OrderRepository. Lines are left alone; use
// ReplaceLines when the cart itself changes.
func (r *OrderRepositoryImpl) Update(ctx context.Context, order *domain.Order) error {
	dbOrder := r.domainToDB(order)
	dbOrder.Lines = nil
	return r.db.WithContext(ctx).Omit("Lines").Save(dbOrder).Error
}

// ReplaceLines implements domain.OrderRepository. The old lines are dropped
// and the order's current lines written in one transaction together with the
// recalculated totals.
func (r *OrderRepositoryImpl) ReplaceLines(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&DBOrderLine{}).Error; err != nil {
			return err
		}
		dbOrder := r.domainToDB(order)
		for i := range dbOrder.Lines {
			dbOrder.Lines[i].ID = 0
			dbOrder.Lines[i].OrderID = order.ID
		}
		if len(dbOrder.Lines) > 0 {
			if err := tx.Create(&dbOrder.Lines).Error; err != nil {
				return err
			}
		}
		dbOrder.Lines = nil
		return tx.Omit("Lines").Save(dbOrder).Error
	})
}

// Delete implements domain.OrderRepository. Lines go with the order.
func (r *OrderRepositoryImpl) Delete(ctx context.Context, id, vendorID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND vendor_id = ?", id, vendorID).Delete(&DBOrder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrOrderNotFound
		}
		return tx.Where("order_id = ?", id).Delete(&DBOrderLine{}).Error
	})
}

func (r *OrderRepositoryImpl) domainToDB(order *domain.Order) *DBOrder {
	dbOrder := &DBOrder{
		ID:                       order.ID,
		OrderNumber:              order.OrderNumber,
		VendorID:                 order.VendorID,
		CustomerID:               order.CustomerID,
		TableNumber:              order.TableNumber,
		Subtotal:                 order.Subtotal,
		TaxRate:                  order.TaxRate,
		TaxAmount:                order.TaxAmount,
		ServiceChargeRate:        order.ServiceChargeRate,
		ServiceChargeAmount:      order.ServiceChargeAmount,
		TipPercentage:            order.TipPercentage,
		TipAmount:                order.TipAmount,
		TotalAmount:              order.TotalAmount,
		Status:                   order.Status,
		PaymentStatus:            order.PaymentStatus,
		PaymentMethod:            order.PaymentMethod,
		CustomerPhone:            order.CustomerPhone,
		CustomerEmail:            order.CustomerEmail,
		SpecialRequests:          order.SpecialRequests,
		Notes:                    order.Notes,
		EstimatedPreparationTime: order.EstimatedPreparationTime,
		ActualPreparationTime:    order.ActualPreparationTime,
		CreatedAt:                order.CreatedAt,
	}
	for _, line := range order.Lines {
		dbOrder.Lines = append(dbOrder.Lines, DBOrderLine{
			ID:         line.ID,
			OrderID:    line.OrderID,
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Price:      line.Price,
			Quantity:   line.Quantity,
			Notes:      line.Notes,
		})
	}
	return dbOrder
}

func (r *OrderRepositoryImpl) dbToDomain(dbOrder *DBOrder) *domain.Order {
	order := &domain.Order{
		ID:                       dbOrder.ID,
		OrderNumber:              dbOrder.OrderNumber,
		VendorID:                 dbOrder.VendorID,
		CustomerID:               dbOrder.CustomerID,
		TableNumber:              dbOrder.TableNumber,
		Subtotal:                 dbOrder.Subtotal,
		TaxRate:                  dbOrder.TaxRate,
		TaxAmount:                dbOrder.TaxAmount,
		ServiceChargeRate:        dbOrder.ServiceChargeRate,
		ServiceChargeAmount:      dbOrder.ServiceChargeAmount,
		TipPercentage:            dbOrder.TipPercentage,
		TipAmount:                dbOrder.TipAmount,
		TotalAmount:              dbOrder.TotalAmount,
		Status:                   dbOrder.Status,
		PaymentStatus:            dbOrder.PaymentStatus,
		PaymentMethod:            dbOrder.PaymentMethod,
		CustomerPhone:            dbOrder.CustomerPhone,
		CustomerEmail:            dbOrder.CustomerEmail,
		SpecialRequests:          dbOrder.SpecialRequests,
		Notes:                    dbOrder.Notes,
		EstimatedPreparationTime: dbOrder.EstimatedPreparationTime,
		ActualPreparationTime:    dbOrder.ActualPreparationTime,
		CreatedAt:                dbOrder.CreatedAt,
		UpdatedAt:                dbOrder.UpdatedAt,
	}
	for _, line := range dbOrder.Lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ID:         line.ID,
			OrderID:    line.OrderID,
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Price:      line.Price,
			Quantity:   line.Quantity,
			Notes:      line.Notes,
		})
	}
	return order
}
