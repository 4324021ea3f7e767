package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/you/ordersvc/domain"
)

func seedOrder(t *testing.T, db *gorm.DB, repo domain.OrderRepository, vendorID uint, number string) *domain.Order {
	t.Helper()
	order := &domain.Order{
		OrderNumber: number,
		VendorID:    vendorID,
		TableNumber: "7",
		Lines: []domain.OrderLine{
			{MenuItemID: 1, Name: "Pad Thai", Price: 12.5, Quantity: 2},
			{MenuItemID: 2, Name: "Spring Rolls", Price: 6, Quantity: 1},
		},
		TaxRate:           10,
		ServiceChargeRate: 5,
		Status:            domain.OrderPending,
		PaymentStatus:     domain.PaymentPending,
		PaymentMethod:     domain.PayCash,
	}
	order.RecalculateTotals()
	if err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestOrderRepositoryImpl_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, repo, 1, "ORD-1001")

	got, err := repo.FindByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(got.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got.Lines))
	}
	if got.Subtotal != 31 {
		t.Errorf("expected subtotal 31, got %v", got.Subtotal)
	}
	if got.TotalAmount != got.Subtotal+got.TaxAmount+got.ServiceChargeAmount+got.TipAmount {
		t.Errorf("total identity broken: %+v", got)
	}
}

func TestOrderRepositoryImpl_FindByIDForVendor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, repo, 1, "ORD-1002")

	if _, err := repo.FindByIDForVendor(ctx, order.ID, 1); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}

	// A foreign vendor gets not-found, not forbidden.
	if _, err := repo.FindByIDForVendor(ctx, order.ID, 99); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound for foreign vendor, got %v", err)
	}
}

func TestOrderRepositoryImpl_ListByVendor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	seedOrder(t, db, repo, 1, "ORD-2001")
	o2 := seedOrder(t, db, repo, 1, "ORD-2002")
	seedOrder(t, db, repo, 2, "ORD-2003")

	o2.Status = domain.OrderReady
	if err := repo.Update(ctx, o2); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	all, total, err := repo.ListByVendor(ctx, 1, domain.OrderFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("expected 2 vendor-1 orders, got total=%d len=%d", total, len(all))
	}

	ready, total, err := repo.ListByVendor(ctx, 1, domain.OrderFilter{Status: domain.OrderReady})
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if total != 1 || len(ready) != 1 || ready[0].OrderNumber != "ORD-2002" {
		t.Errorf("status filter wrong: total=%d %+v", total, ready)
	}

	// Pagination.
	paged, total, err := repo.ListByVendor(ctx, 1, domain.OrderFilter{Limit: 1, Page: 2})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if total != 2 || len(paged) != 1 {
		t.Errorf("expected page of 1 with total 2, got total=%d len=%d", total, len(paged))
	}
}

func TestOrderRepositoryImpl_ListByVendor_TimeWindow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	old := seedOrder(t, db, repo, 1, "ORD-3001")
	db.Model(&DBOrder{}).Where("id = ?", old.ID).Update("created_at", time.Now().Add(-48*time.Hour))
	seedOrder(t, db, repo, 1, "ORD-3002")

	since := time.Now().Add(-time.Hour)
	recent, total, err := repo.ListByVendor(ctx, 1, domain.OrderFilter{Since: &since})
	if err != nil {
		t.Fatalf("windowed list failed: %v", err)
	}
	if total != 1 || len(recent) != 1 || recent[0].OrderNumber != "ORD-3002" {
		t.Errorf("time window wrong: total=%d %+v", total, recent)
	}
}

func TestOrderRepositoryImpl_ReplaceLines(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, repo, 1, "ORD-4001")

	order.Lines = []domain.OrderLine{
		{MenuItemID: 3, Name: "Green Curry", Price: 14, Quantity: 1},
	}
	order.RecalculateTotals()
	if err := repo.ReplaceLines(ctx, order); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	got, err := repo.FindByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(got.Lines) != 1 || got.Lines[0].Name != "Green Curry" {
		t.Fatalf("lines not replaced: %+v", got.Lines)
	}
	if got.Subtotal != 14 {
		t.Errorf("totals not rewritten, subtotal %v", got.Subtotal)
	}

	// Old lines are gone from the table, not just unlinked.
	var count int64
	db.Model(&DBOrderLine{}).Where("order_id = ?", order.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 stored line, got %d", count)
	}
}

func TestOrderRepositoryImpl_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, repo, 1, "ORD-5001")

	if err := repo.Delete(ctx, order.ID, 99); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("foreign vendor delete should be not-found, got %v", err)
	}

	if err := repo.Delete(ctx, order.ID, 1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := repo.FindByID(ctx, order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("order should be gone, got %v", err)
	}
	var lines int64
	db.Model(&DBOrderLine{}).Where("order_id = ?", order.ID).Count(&lines)
	if lines != 0 {
		t.Errorf("expected no leftover lines, got %d", lines)
	}
}
