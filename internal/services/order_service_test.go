package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/you/ordersvc/domain"
	"github.com/you/ordersvc/internal/mocks"
)

func newOrderFixture() (*mocks.MockOrderRepository, *mocks.MockMenuRepository, *mocks.MockAccountRepository, *mocks.MockNotifier, domain.OrderService) {
	orders := mocks.NewMockOrderRepository()
	menu := mocks.NewMockMenuRepository()
	accounts := mocks.NewMockAccountRepository()
	notifier := mocks.NewMockNotifier()
	svc := NewOrderService(orders, menu, accounts, domain.ServedImpliesPaid, notifier)
	return orders, menu, accounts, notifier, svc
}

func catalog(items ...*domain.MenuItem) func(ctx context.Context, id uint) (*domain.MenuItem, error) {
	return func(ctx context.Context, id uint) (*domain.MenuItem, error) {
		for _, item := range items {
			if item.ID == id {
				return item, nil
			}
		}
		return nil, domain.ErrMenuItemNotFound
	}
}

func vendorWithRates(taxRate, serviceRate float64) func(ctx context.Context, role string, id uint) (*domain.Account, error) {
	return func(ctx context.Context, role string, id uint) (*domain.Account, error) {
		return &domain.Account{
			ID: id, Role: role, Name: "Casa Uno", Email: "casa@example.test", IsActive: true,
			Vendor: &domain.VendorProfile{TaxRate: taxRate, ServiceChargeRate: serviceRate},
		}, nil
	}
}

func TestOrderServiceImpl_Create(t *testing.T) {
	_, menu, accounts, notifier, svc := newOrderFixture()

	menu.FindByIDFunc = catalog(
		&domain.MenuItem{ID: 1, VendorID: 5, Name: "Burger", Price: 10, Available: true},
		&domain.MenuItem{ID: 2, VendorID: 5, Name: "Fries", Price: 4, Available: true},
	)
	accounts.FindByIDFunc = vendorWithRates(10, 5)

	order, err := svc.Create(context.Background(), domain.CreateOrderInput{
		TableNumber: "3",
		Lines: []domain.OrderLineInput{
			{MenuItemID: 1, Quantity: 2},
			{MenuItemID: 2, Quantity: 1},
		},
		PaymentMethod: domain.PayCard,
		CustomerEmail: "guest@example.test",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if order.VendorID != 5 {
		t.Errorf("vendor not derived from the cart, got %d", order.VendorID)
	}
	if order.Subtotal != 24 {
		t.Errorf("expected subtotal 24, got %v", order.Subtotal)
	}
	if order.TaxAmount != 2.4 || order.ServiceChargeAmount != 1.2 {
		t.Errorf("charges wrong: tax=%v service=%v", order.TaxAmount, order.ServiceChargeAmount)
	}
	if order.TotalAmount != order.Subtotal+order.TaxAmount+order.ServiceChargeAmount+order.TipAmount {
		t.Error("total identity broken")
	}
	if order.Status != domain.OrderPending || order.PaymentStatus != domain.PaymentPending {
		t.Errorf("fresh order in wrong state: %s/%s", order.Status, order.PaymentStatus)
	}
	if order.OrderNumber == "" {
		t.Error("order number missing")
	}
	// Snapshot, not reference.
	if order.Lines[0].Name != "Burger" || order.Lines[0].Price != 10 {
		t.Errorf("line not snapshotted: %+v", order.Lines[0])
	}

	events := notifier.Recorded()
	if len(events) != 2 {
		t.Fatalf("expected vendor alert and customer confirmation, got %+v", events)
	}
	if events[0].Type != domain.OrderAlertEvent || events[0].Email != "casa@example.test" {
		t.Errorf("expected a vendor-addressed alert, got %+v", events[0])
	}
	if events[1].Type != domain.OrderCreatedEvent || events[1].Email != "guest@example.test" {
		t.Errorf("expected a customer confirmation, got %+v", events[1])
	}
}

func TestOrderServiceImpl_Create_WalkInStillAlertsVendor(t *testing.T) {
	_, menu, accounts, notifier, svc := newOrderFixture()

	menu.FindByIDFunc = catalog(
		&domain.MenuItem{ID: 1, VendorID: 5, Name: "Burger", Price: 10, Available: true},
	)
	accounts.FindByIDFunc = vendorWithRates(0, 0)

	// Walk-in order: no customer email or phone at all.
	_, err := svc.Create(context.Background(), domain.CreateOrderInput{
		TableNumber: "9",
		Lines:       []domain.OrderLineInput{{MenuItemID: 1, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	events := notifier.Recorded()
	var alert *domain.Event
	for i := range events {
		if events[i].Type == domain.OrderAlertEvent {
			alert = &events[i]
		}
	}
	if alert == nil {
		t.Fatalf("vendor never alerted: %+v", events)
	}
	if alert.Email != "casa@example.test" {
		t.Errorf("alert addressed to %q, want the vendor's email", alert.Email)
	}
}

func TestOrderServiceImpl_Create_Validation(t *testing.T) {
	tests := []struct {
		name          string
		items         []*domain.MenuItem
		input         domain.CreateOrderInput
		expectedError error
	}{
		{
			name:          "empty cart",
			input:         domain.CreateOrderInput{},
			expectedError: domain.ErrValidation,
		},
		{
			name: "mixed vendors",
			items: []*domain.MenuItem{
				{ID: 1, VendorID: 5, Name: "A", Price: 1, Available: true},
				{ID: 2, VendorID: 6, Name: "B", Price: 1, Available: true},
			},
			input: domain.CreateOrderInput{Lines: []domain.OrderLineInput{
				{MenuItemID: 1, Quantity: 1}, {MenuItemID: 2, Quantity: 1},
			}},
			expectedError: domain.ErrMixedVendorCart,
		},
		{
			name: "unavailable item",
			items: []*domain.MenuItem{
				{ID: 1, VendorID: 5, Name: "A", Price: 1, Available: false},
			},
			input: domain.CreateOrderInput{Lines: []domain.OrderLineInput{
				{MenuItemID: 1, Quantity: 1},
			}},
			expectedError: domain.ErrMenuItemUnavailable,
		},
		{
			name: "zero quantity",
			items: []*domain.MenuItem{
				{ID: 1, VendorID: 5, Name: "A", Price: 1, Available: true},
			},
			input: domain.CreateOrderInput{Lines: []domain.OrderLineInput{
				{MenuItemID: 1, Quantity: 0},
			}},
			expectedError: domain.ErrValidation,
		},
		{
			name: "unknown item",
			input: domain.CreateOrderInput{Lines: []domain.OrderLineInput{
				{MenuItemID: 42, Quantity: 1},
			}},
			expectedError: domain.ErrMenuItemNotFound,
		},
		{
			name: "bad payment method",
			input: domain.CreateOrderInput{
				PaymentMethod: "barter",
				Lines:         []domain.OrderLineInput{{MenuItemID: 1, Quantity: 1}},
			},
			expectedError: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, menu, accounts, _, svc := newOrderFixture()
			menu.FindByIDFunc = catalog(tt.items...)
			accounts.FindByIDFunc = vendorWithRates(0, 0)

			_, err := svc.Create(context.Background(), tt.input)
			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected %v, got %v", tt.expectedError, err)
			}
		})
	}
}

func TestOrderServiceImpl_Create_TipPercentageWins(t *testing.T) {
	_, menu, accounts, _, svc := newOrderFixture()
	menu.FindByIDFunc = catalog(&domain.MenuItem{ID: 1, VendorID: 5, Name: "A", Price: 100, Available: true})
	accounts.FindByIDFunc = vendorWithRates(0, 0)

	order, err := svc.Create(context.Background(), domain.CreateOrderInput{
		Lines:         []domain.OrderLineInput{{MenuItemID: 1, Quantity: 1}},
		TipAmount:     3,
		TipPercentage: 10,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if math.Abs(order.TipAmount-10) > 1e-9 {
		t.Errorf("percentage tip should override the fixed amount, got %v", order.TipAmount)
	}
}

func TestOrderServiceImpl_UpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		from          string
		to            string
		expectedError error
	}{
		{"pending to preparing", domain.OrderPending, domain.OrderPreparing, nil},
		{"preparing to ready", domain.OrderPreparing, domain.OrderReady, nil},
		{"ready to served", domain.OrderReady, domain.OrderServed, nil},
		{"pending to cancelled", domain.OrderPending, domain.OrderCancelled, nil},
		{"served is terminal", domain.OrderServed, domain.OrderPreparing, domain.ErrInvalidTransition},
		{"cancelled is terminal", domain.OrderCancelled, domain.OrderPending, domain.ErrInvalidTransition},
		{"no going backwards", domain.OrderReady, domain.OrderPreparing, domain.ErrInvalidTransition},
		{"unknown status", domain.OrderPending, "simmering", domain.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, _, _, _, svc := newOrderFixture()
			orders.FindByIDForVendorFunc = func(ctx context.Context, id, vendorID uint) (*domain.Order, error) {
				return &domain.Order{ID: id, VendorID: vendorID, Status: tt.from, PaymentStatus: domain.PaymentPending, CreatedAt: time.Now()}, nil
			}

			_, err := svc.UpdateStatus(context.Background(), 1, 5, tt.to)
			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected %v, got %v", tt.expectedError, err)
			}
		})
	}
}

func TestOrderServiceImpl_UpdateStatus_ServedSettles(t *testing.T) {
	orders, _, _, _, svc := newOrderFixture()
	orders.FindByIDForVendorFunc = func(ctx context.Context, id, vendorID uint) (*domain.Order, error) {
		return &domain.Order{ID: id, VendorID: vendorID, Status: domain.OrderReady, PaymentStatus: domain.PaymentPending, CreatedAt: time.Now()}, nil
	}

	order, err := svc.UpdateStatus(context.Background(), 1, 5, domain.OrderServed)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if order.PaymentStatus != domain.PaymentPaid {
		t.Errorf("serving should settle payment, got %s", order.PaymentStatus)
	}
}

func TestOrderServiceImpl_UpdateStatus_ReadyStampsPrepTimeAndNotifies(t *testing.T) {
	orders, _, _, notifier, svc := newOrderFixture()
	created := time.Now().Add(-25 * time.Minute)
	orders.FindByIDForVendorFunc = func(ctx context.Context, id, vendorID uint) (*domain.Order, error) {
		return &domain.Order{
			ID: id, VendorID: vendorID, OrderNumber: "ORD-X",
			Status: domain.OrderPreparing, PaymentStatus: domain.PaymentPending,
			CustomerPhone: "+15550002222", CreatedAt: created,
		}, nil
	}

	order, err := svc.UpdateStatus(context.Background(), 1, 5, domain.OrderReady)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if order.ActualPreparationTime < 24 || order.ActualPreparationTime > 26 {
		t.Errorf("expected ~25 minutes of prep time, got %d", order.ActualPreparationTime)
	}

	events := notifier.Recorded()
	if len(events) != 1 || events[0].Type != domain.OrderReadyEvent {
		t.Fatalf("expected an order ready event, got %+v", events)
	}
	if events[0].Phone != "+15550002222" {
		t.Errorf("event should target the customer phone, got %q", events[0].Phone)
	}
}

func TestOrderServiceImpl_RecalculateOnEdit(t *testing.T) {
	orders, menu, _, _, svc := newOrderFixture()

	existing := &domain.Order{
		ID: 1, VendorID: 5, Status: domain.OrderPending,
		TaxRate: 10, ServiceChargeRate: 0,
		Lines: []domain.OrderLine{{MenuItemID: 1, Name: "Old", Price: 8, Quantity: 1}},
	}
	existing.RecalculateTotals()
	orders.FindByIDForVendorFunc = func(ctx context.Context, id, vendorID uint) (*domain.Order, error) {
		return existing, nil
	}
	var replaced *domain.Order
	orders.ReplaceLinesFunc = func(ctx context.Context, order *domain.Order) error {
		replaced = order
		return nil
	}
	// The catalog price moved since the order was placed.
	menu.FindByIDFunc = catalog(&domain.MenuItem{ID: 1, VendorID: 5, Name: "New Name", Price: 12, Available: true})

	order, err := svc.RecalculateOnEdit(context.Background(), 1, 5, []domain.OrderLineInput{{MenuItemID: 1, Quantity: 2}}, nil, nil)
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if replaced == nil {
		t.Fatal("lines should be replaced")
	}
	if order.Lines[0].Price != 12 || order.Lines[0].Name != "New Name" {
		t.Errorf("edit should re-snapshot the catalog: %+v", order.Lines[0])
	}
	if order.Subtotal != 24 || order.TotalAmount != 26.4 {
		t.Errorf("totals not rederived: subtotal=%v total=%v", order.Subtotal, order.TotalAmount)
	}
}

func TestOrderServiceImpl_RecalculateOnEdit_TerminalOrder(t *testing.T) {
	orders, _, _, _, svc := newOrderFixture()
	orders.FindByIDForVendorFunc = func(ctx context.Context, id, vendorID uint) (*domain.Order, error) {
		return &domain.Order{ID: id, VendorID: vendorID, Status: domain.OrderServed}, nil
	}

	_, err := svc.RecalculateOnEdit(context.Background(), 1, 5, nil, nil, nil)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("terminal orders must not be editable, got %v", err)
	}
}

func TestOrderServiceImpl_CrossVendorAccessReadsAsMissing(t *testing.T) {
	_, _, _, _, svc := newOrderFixture()

	if _, err := svc.UpdateStatus(context.Background(), 1, 99, domain.OrderPreparing); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}
