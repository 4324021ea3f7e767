package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/ordersvc/domain"
)

// AnalyticsRepositoryImpl implements domain.AnalyticsRepository with GORM
// aggregate queries over the orders and accounts tables. Revenue figures are
// gross order value over every order regardless of payment state.
type AnalyticsRepositoryImpl struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domain.AnalyticsRepository {
	return &AnalyticsRepositoryImpl{db: db}
}

func (r *AnalyticsRepositoryImpl) scopedOrders(ctx context.Context, vendorIDs []uint) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&DBOrder{})
	if len(vendorIDs) > 0 {
		q = q.Where("vendor_id IN ?", vendorIDs)
	}
	return q
}

func applyPeriod(q *gorm.DB, since, until *time.Time) *gorm.DB {
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	if until != nil {
		q = q.Where("created_at < ?", *until)
	}
	return q
}

// CountOrders implements domain.AnalyticsRepository
func (r *AnalyticsRepositoryImpl) CountOrders(ctx context.Context, vendorIDs []uint, since, until *time.Time) (int64, error) {
	var count int64
	err := applyPeriod(r.scopedOrders(ctx, vendorIDs), since, until).Count(&count).Error
	return count, err
}

// SumRevenue implements domain.AnalyticsRepository
func (r *AnalyticsRepositoryImpl) SumRevenue(ctx context.Context, vendorIDs []uint, since, until *time.Time) (float64, error) {
	var revenue *float64
	err := applyPeriod(r.scopedOrders(ctx, vendorIDs), since, until).
		Select("SUM(total_amount)").
		Scan(&revenue).Error
	if err != nil {
		return 0, err
	}
	if revenue == nil {
		return 0, nil
	}
	return *revenue, nil
}

// RevenueByDay implements domain.AnalyticsRepository. Buckets are calendar
// days in database time; days with no orders are absent from the result and
// zero-filled by the service layer.
func (r *AnalyticsRepositoryImpl) RevenueByDay(ctx context.Context, vendorIDs []uint, since time.Time) ([]domain.RevenueBucket, error) {
	var buckets []domain.RevenueBucket
	err := r.scopedOrders(ctx, vendorIDs).
		Where("created_at >= ?", since).
		Select("DATE(created_at) AS date, SUM(total_amount) AS revenue, COUNT(*) AS orders").
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&buckets).Error
	return buckets, err
}

// OrdersByStatus implements domain.AnalyticsRepository
func (r *AnalyticsRepositoryImpl) OrdersByStatus(ctx context.Context, vendorIDs []uint, since *time.Time) ([]domain.GroupTotal, error) {
	var totals []domain.GroupTotal
	err := applyPeriod(r.scopedOrders(ctx, vendorIDs), since, nil).
		Select("status AS key, COUNT(*) AS count, SUM(total_amount) AS total_amount").
		Group("status").
		Scan(&totals).Error
	return totals, err
}

// OrdersByPaymentMethod implements domain.AnalyticsRepository
func (r *AnalyticsRepositoryImpl) OrdersByPaymentMethod(ctx context.Context, vendorIDs []uint, since *time.Time) ([]domain.GroupTotal, error) {
	var totals []domain.GroupTotal
	err := applyPeriod(r.scopedOrders(ctx, vendorIDs), since, nil).
		Select("payment_method AS key, COUNT(*) AS count, SUM(total_amount) AS total_amount").
		Group("payment_method").
		Scan(&totals).Error
	return totals, err
}

// VendorsByCuisine implements domain.AnalyticsRepository
func (r *AnalyticsRepositoryImpl) VendorsByCuisine(ctx context.Context, vendorIDs []uint) ([]domain.GroupTotal, error) {
	q := r.db.WithContext(ctx).Model(&DBVendorProfile{})
	if len(vendorIDs) > 0 {
		q = q.Where("account_id IN ?", vendorIDs)
	}
	var totals []domain.GroupTotal
	err := q.Select("cuisine AS key, COUNT(*) AS count, 0 AS total_amount").
		Group("cuisine").
		Scan(&totals).Error
	return totals, err
}

// ActiveVendorsInPeriod implements domain.AnalyticsRepository. A vendor is
// active when it received at least one order in the period.
func (r *AnalyticsRepositoryImpl) ActiveVendorsInPeriod(ctx context.Context, vendorIDs []uint, since time.Time) (int64, error) {
	var count int64
	err := r.scopedOrders(ctx, vendorIDs).
		Where("created_at >= ?", since).
		Distinct("vendor_id").
		Count(&count).Error
	return count, err
}

// ActiveCustomersInPeriod implements domain.AnalyticsRepository. Walk-in
// orders carry no customer id and are excluded.
func (r *AnalyticsRepositoryImpl) ActiveCustomersInPeriod(ctx context.Context, vendorIDs []uint, since time.Time) (int64, error) {
	var count int64
	err := r.scopedOrders(ctx, vendorIDs).
		Where("created_at >= ? AND customer_id IS NOT NULL", since).
		Distinct("customer_id").
		Count(&count).Error
	return count, err
}

// AvgOrderValue implements domain.AnalyticsRepository
func (r *AnalyticsRepositoryImpl) AvgOrderValue(ctx context.Context, vendorIDs []uint, since *time.Time) (float64, error) {
	var avg *float64
	err := applyPeriod(r.scopedOrders(ctx, vendorIDs), since, nil).
		Select("AVG(total_amount)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
