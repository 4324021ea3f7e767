package services

import (
	"context"
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/you/ordersvc/domain"
)

// AnalyticsServiceImpl implements domain.AnalyticsService. Every figure is
// filtered through the caller's scope before it leaves this package; a
// restricted scope with no vendors sees zeros everywhere.
type AnalyticsServiceImpl struct {
	analyticsRepo domain.AnalyticsRepository
	accountRepo   domain.AccountRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	analyticsRepo domain.AnalyticsRepository,
	accountRepo domain.AccountRepository,
) domain.AnalyticsService {
	return &AnalyticsServiceImpl{
		analyticsRepo: analyticsRepo,
		accountRepo:   accountRepo,
	}
}

// scopeIDs translates a Scope into the repository's vendor filter. The second
// return is false when the scope can see nothing at all.
func scopeIDs(scope domain.Scope) ([]uint, bool) {
	if scope.Unrestricted {
		return nil, true
	}
	if len(scope.VendorIDs) == 0 {
		return nil, false
	}
	return scope.VendorIDs, true
}

// growth is period-over-period change in percent, rounded to two decimals.
// A zero baseline reports 0 rather than infinity.
func growth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return math.Round((current-previous)/previous*10000) / 100
}

// parsePeriod maps a period name to its duration. Unknown values fall back to
// 30 days.
func parsePeriod(period string) time.Duration {
	switch period {
	case "7d", "week":
		return 7 * 24 * time.Hour
	case "90d", "quarter":
		return 90 * 24 * time.Hour
	case "365d", "year":
		return 365 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// DashboardStats implements domain.AnalyticsService
func (s *AnalyticsServiceImpl) DashboardStats(ctx context.Context, scope domain.Scope) (*domain.DashboardStats, error) {
	ids, visible := scopeIDs(scope)
	if !visible {
		return &domain.DashboardStats{}, nil
	}

	stats := &domain.DashboardStats{}
	var err error

	if scope.Unrestricted {
		if stats.TotalVendors, err = s.accountRepo.CountByRole(ctx, domain.RoleVendor, true, nil, nil); err != nil {
			return nil, err
		}
	} else {
		stats.TotalVendors = int64(len(ids))
	}
	// Customer counts are global for every scope: customers belong to the
	// platform, not to a vendor.
	if stats.TotalCustomers, err = s.accountRepo.CountByRole(ctx, domain.RoleCustomer, true, nil, nil); err != nil {
		return nil, err
	}

	if stats.TotalOrders, err = s.analyticsRepo.CountOrders(ctx, ids, nil, nil); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.analyticsRepo.SumRevenue(ctx, ids, nil, nil); err != nil {
		return nil, err
	}

	// Growth compares the last 30 days against the 30 days before that.
	now := time.Now()
	periodStart := now.Add(-30 * 24 * time.Hour)
	prevStart := now.Add(-60 * 24 * time.Hour)

	curOrders, err := s.analyticsRepo.CountOrders(ctx, ids, &periodStart, nil)
	if err != nil {
		return nil, err
	}
	prevOrders, err := s.analyticsRepo.CountOrders(ctx, ids, &prevStart, &periodStart)
	if err != nil {
		return nil, err
	}
	curRevenue, err := s.analyticsRepo.SumRevenue(ctx, ids, &periodStart, nil)
	if err != nil {
		return nil, err
	}
	prevRevenue, err := s.analyticsRepo.SumRevenue(ctx, ids, &prevStart, &periodStart)
	if err != nil {
		return nil, err
	}

	stats.Growth.Orders = growth(float64(curOrders), float64(prevOrders))
	stats.Growth.Revenue = growth(curRevenue, prevRevenue)

	if scope.Unrestricted {
		curVendors, err := s.accountRepo.CountByRole(ctx, domain.RoleVendor, false, &periodStart, nil)
		if err != nil {
			return nil, err
		}
		prevVendors, err := s.accountRepo.CountByRole(ctx, domain.RoleVendor, false, &prevStart, &periodStart)
		if err != nil {
			return nil, err
		}
		curCustomers, err := s.accountRepo.CountByRole(ctx, domain.RoleCustomer, false, &periodStart, nil)
		if err != nil {
			return nil, err
		}
		prevCustomers, err := s.accountRepo.CountByRole(ctx, domain.RoleCustomer, false, &prevStart, &periodStart)
		if err != nil {
			return nil, err
		}
		stats.Growth.Vendors = growth(float64(curVendors), float64(prevVendors))
		stats.Growth.Customers = growth(float64(curCustomers), float64(prevCustomers))
	}

	return stats, nil
}

// VendorDashboardStats implements domain.AnalyticsService
func (s *AnalyticsServiceImpl) VendorDashboardStats(ctx context.Context, scope domain.Scope, vendorID uint) (*domain.VendorDashboardStats, error) {
	if !scope.Unrestricted && !lo.Contains(scope.VendorIDs, vendorID) {
		return nil, domain.ErrForbidden
	}

	vendor, err := s.accountRepo.FindByID(ctx, domain.RoleVendor, vendorID)
	if err != nil {
		return nil, err
	}

	ids := []uint{vendorID}
	stats := &domain.VendorDashboardStats{
		VendorID:   vendorID,
		VendorName: vendor.Name,
	}

	if stats.TotalOrders, err = s.analyticsRepo.CountOrders(ctx, ids, nil, nil); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.analyticsRepo.SumRevenue(ctx, ids, nil, nil); err != nil {
		return nil, err
	}

	now := time.Now()
	periodStart := now.Add(-30 * 24 * time.Hour)
	prevStart := now.Add(-60 * 24 * time.Hour)

	curOrders, err := s.analyticsRepo.CountOrders(ctx, ids, &periodStart, nil)
	if err != nil {
		return nil, err
	}
	prevOrders, err := s.analyticsRepo.CountOrders(ctx, ids, &prevStart, &periodStart)
	if err != nil {
		return nil, err
	}
	curRevenue, err := s.analyticsRepo.SumRevenue(ctx, ids, &periodStart, nil)
	if err != nil {
		return nil, err
	}
	prevRevenue, err := s.analyticsRepo.SumRevenue(ctx, ids, &prevStart, &periodStart)
	if err != nil {
		return nil, err
	}

	stats.OrderGrowth = growth(float64(curOrders), float64(prevOrders))
	stats.RevenueGrowth = growth(curRevenue, prevRevenue)

	return stats, nil
}

// RevenueSeries implements domain.AnalyticsService. The series always spans
// the whole period: days without settled orders come back as zero buckets.
func (s *AnalyticsServiceImpl) RevenueSeries(ctx context.Context, scope domain.Scope, period string, vendorID *uint) ([]domain.RevenueBucket, error) {
	ids, visible := scopeIDs(scope)
	if !visible {
		ids = nil
	}
	if vendorID != nil {
		if !scope.Unrestricted && !lo.Contains(scope.VendorIDs, *vendorID) {
			return nil, domain.ErrForbidden
		}
		ids = []uint{*vendorID}
		visible = true
	}

	days := int(parsePeriod(period).Hours() / 24)
	since := time.Now().AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)

	var buckets []domain.RevenueBucket
	if visible {
		var err error
		if buckets, err = s.analyticsRepo.RevenueByDay(ctx, ids, since); err != nil {
			return nil, err
		}
	}

	byDate := lo.KeyBy(buckets, func(b domain.RevenueBucket) string { return b.Date })
	series := make([]domain.RevenueBucket, 0, days)
	for i := 0; i < days; i++ {
		date := since.AddDate(0, 0, i).Format("2006-01-02")
		if b, ok := byDate[date]; ok {
			series = append(series, b)
		} else {
			series = append(series, domain.RevenueBucket{Date: date})
		}
	}
	return series, nil
}

// VendorStats implements domain.AnalyticsService
func (s *AnalyticsServiceImpl) VendorStats(ctx context.Context, scope domain.Scope, period string) (map[string]any, error) {
	ids, visible := scopeIDs(scope)
	if !visible {
		return map[string]any{
			"totalVendors":  0,
			"activeVendors": 0,
			"byCuisine":     []domain.GroupTotal{},
		}, nil
	}

	since := time.Now().Add(-parsePeriod(period))

	var totalVendors int64
	var err error
	if scope.Unrestricted {
		if totalVendors, err = s.accountRepo.CountByRole(ctx, domain.RoleVendor, true, nil, nil); err != nil {
			return nil, err
		}
	} else {
		totalVendors = int64(len(ids))
	}

	activeVendors, err := s.analyticsRepo.ActiveVendorsInPeriod(ctx, ids, since)
	if err != nil {
		return nil, err
	}
	byCuisine, err := s.analyticsRepo.VendorsByCuisine(ctx, ids)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"totalVendors":  totalVendors,
		"activeVendors": activeVendors,
		"byCuisine":     byCuisine,
		"period":        period,
	}, nil
}

// CustomerStats implements domain.AnalyticsService
func (s *AnalyticsServiceImpl) CustomerStats(ctx context.Context, scope domain.Scope, period string) (map[string]any, error) {
	ids, visible := scopeIDs(scope)
	if !visible {
		return map[string]any{
			"totalCustomers":  0,
			"activeCustomers": 0,
		}, nil
	}

	since := time.Now().Add(-parsePeriod(period))

	result := map[string]any{"period": period}

	// Customer population figures stay global regardless of scope.
	total, err := s.accountRepo.CountByRole(ctx, domain.RoleCustomer, true, nil, nil)
	if err != nil {
		return nil, err
	}
	newInPeriod, err := s.accountRepo.CountByRole(ctx, domain.RoleCustomer, false, &since, nil)
	if err != nil {
		return nil, err
	}
	result["totalCustomers"] = total
	result["newCustomers"] = newInPeriod

	active, err := s.analyticsRepo.ActiveCustomersInPeriod(ctx, ids, since)
	if err != nil {
		return nil, err
	}
	result["activeCustomers"] = active

	return result, nil
}

// OrderStats implements domain.AnalyticsService
func (s *AnalyticsServiceImpl) OrderStats(ctx context.Context, scope domain.Scope, period string) (map[string]any, error) {
	ids, visible := scopeIDs(scope)
	if !visible {
		return map[string]any{
			"totalOrders":     0,
			"byStatus":        []domain.GroupTotal{},
			"byPaymentMethod": []domain.GroupTotal{},
			"avgOrderValue":   0.0,
		}, nil
	}

	since := time.Now().Add(-parsePeriod(period))

	total, err := s.analyticsRepo.CountOrders(ctx, ids, &since, nil)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.analyticsRepo.OrdersByStatus(ctx, ids, &since)
	if err != nil {
		return nil, err
	}
	byMethod, err := s.analyticsRepo.OrdersByPaymentMethod(ctx, ids, &since)
	if err != nil {
		return nil, err
	}
	avg, err := s.analyticsRepo.AvgOrderValue(ctx, ids, &since)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"totalOrders":     total,
		"byStatus":        byStatus,
		"byPaymentMethod": byMethod,
		"avgOrderValue":   math.Round(avg*100) / 100,
		"period":          period,
	}, nil
}
