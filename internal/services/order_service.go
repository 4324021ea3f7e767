package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/you/ordersvc/domain"
)

// OrderServiceImpl implements domain.OrderService
type OrderServiceImpl struct {
	orderRepo   domain.OrderRepository
	menuRepo    domain.MenuRepository
	accountRepo domain.AccountRepository
	settlement  domain.SettlementPolicy
	notifier    domain.Notifier
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo domain.OrderRepository,
	menuRepo domain.MenuRepository,
	accountRepo domain.AccountRepository,
	settlement domain.SettlementPolicy,
	notifier domain.Notifier,
) domain.OrderService {
	return &OrderServiceImpl{
		orderRepo:   orderRepo,
		menuRepo:    menuRepo,
		accountRepo: accountRepo,
		settlement:  settlement,
		notifier:    notifier,
	}
}

// Create implements domain.OrderService. Every line snapshots the catalog
// item's current name and price, all lines must come from one vendor's
// catalog, and the vendor's rates at creation time are baked into the order.
func (s *OrderServiceImpl) Create(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error) {
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", domain.ErrValidation)
	}
	if input.PaymentMethod != "" && !domain.ValidPaymentMethod(input.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, input.PaymentMethod)
	}

	var vendorID uint
	lines := make([]domain.OrderLine, 0, len(input.Lines))
	for _, in := range input.Lines {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
		}
		item, err := s.menuRepo.FindByID(ctx, in.MenuItemID)
		if err != nil {
			return nil, err
		}
		if vendorID == 0 {
			vendorID = item.VendorID
		} else if item.VendorID != vendorID {
			return nil, domain.ErrMixedVendorCart
		}
		if !item.Available {
			return nil, fmt.Errorf("%w: %s", domain.ErrMenuItemUnavailable, item.Name)
		}
		lines = append(lines, domain.OrderLine{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   in.Quantity,
			Notes:      in.Notes,
		})
	}

	vendor, err := s.accountRepo.FindByID(ctx, domain.RoleVendor, vendorID)
	if err != nil {
		return nil, err
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PayCash
	}

	order := &domain.Order{
		OrderNumber:     newOrderNumber(),
		VendorID:        vendorID,
		CustomerID:      input.CustomerID,
		TableNumber:     input.TableNumber,
		Lines:           lines,
		TipPercentage:   input.TipPercentage,
		TipAmount:       input.TipAmount,
		Status:          domain.OrderPending,
		PaymentStatus:   domain.PaymentPending,
		PaymentMethod:   paymentMethod,
		CustomerPhone:   input.CustomerPhone,
		CustomerEmail:   input.CustomerEmail,
		SpecialRequests: input.SpecialRequests,
		Notes:           input.Notes,
		CreatedAt:       time.Now(),
	}
	if vendor.Vendor != nil {
		order.TaxRate = vendor.Vendor.TaxRate
		order.ServiceChargeRate = vendor.Vendor.ServiceChargeRate
	}
	order.RecalculateTotals()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	// The vendor is always alerted; the confirmation goes out only when the
	// customer left an address.
	alert := domain.NewEvent(domain.OrderAlertEvent)
	alert.Email = vendor.Email
	alert.Name = vendor.Name
	alert.Order = order
	alert.VendorName = vendor.Name
	s.notifier.Enqueue(alert)

	ev := domain.NewEvent(domain.OrderCreatedEvent)
	ev.Email = order.CustomerEmail
	ev.Phone = order.CustomerPhone
	ev.Order = order
	ev.VendorName = vendor.Name
	s.notifier.Enqueue(ev)

	return order, nil
}

// GetByID implements domain.OrderService
func (s *OrderServiceImpl) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// List implements domain.OrderService
func (s *OrderServiceImpl) List(ctx context.Context, vendorID uint, filter domain.OrderFilter) ([]*domain.Order, int64, error) {
	return s.orderRepo.ListByVendor(ctx, vendorID, filter)
}

// UpdateStatus implements domain.OrderService. Moves follow the forward-only
// machine; reaching ready stamps the measured preparation time and the
// settlement policy decides whether the move settles payment.
func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, orderID, vendorID uint, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.orderRepo.FindByIDForVendor(ctx, orderID, vendorID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, order.Status, status)
	}

	if status == domain.OrderReady {
		order.ActualPreparationTime = int(time.Since(order.CreatedAt).Minutes())
	}

	if paymentStatus, changed := s.settlement(order, status); changed {
		order.PaymentStatus = paymentStatus
	}
	order.Status = status

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if status == domain.OrderReady && (order.CustomerPhone != "" || order.CustomerEmail != "") {
		ev := domain.NewEvent(domain.OrderReadyEvent)
		ev.Email = order.CustomerEmail
		ev.Phone = order.CustomerPhone
		ev.Order = order
		s.notifier.Enqueue(ev)
	}

	return order, nil
}

// UpdatePaymentStatus implements domain.OrderService
func (s *OrderServiceImpl) UpdatePaymentStatus(ctx context.Context, orderID, vendorID uint, status string) (*domain.Order, error) {
	if !domain.ValidPaymentStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.orderRepo.FindByIDForVendor(ctx, orderID, vendorID)
	if err != nil {
		return nil, err
	}

	order.PaymentStatus = status
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// RecalculateOnEdit implements domain.OrderService. Replacing the cart
// re-snapshots every line from the current catalog, so edited orders pick up
// price changes made since creation. Terminal orders cannot be edited.
func (s *OrderServiceImpl) RecalculateOnEdit(ctx context.Context, orderID, vendorID uint, lines []domain.OrderLineInput, notes *string, estPrepTime *int) (*domain.Order, error) {
	order, err := s.orderRepo.FindByIDForVendor(ctx, orderID, vendorID)
	if err != nil {
		return nil, err
	}
	if order.IsTerminal() {
		return nil, fmt.Errorf("%w: order is %s", domain.ErrInvalidTransition, order.Status)
	}

	if lines != nil {
		if len(lines) == 0 {
			return nil, fmt.Errorf("%w: order needs at least one item", domain.ErrValidation)
		}
		newLines := make([]domain.OrderLine, 0, len(lines))
		for _, in := range lines {
			if in.Quantity <= 0 {
				return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
			}
			item, err := s.menuRepo.FindByID(ctx, in.MenuItemID)
			if err != nil {
				return nil, err
			}
			if item.VendorID != order.VendorID {
				return nil, domain.ErrMixedVendorCart
			}
			newLines = append(newLines, domain.OrderLine{
				OrderID:    order.ID,
				MenuItemID: item.ID,
				Name:       item.Name,
				Price:      item.Price,
				Quantity:   in.Quantity,
				Notes:      in.Notes,
			})
		}
		order.Lines = newLines
	}

	if notes != nil {
		order.Notes = *notes
	}
	if estPrepTime != nil {
		order.EstimatedPreparationTime = *estPrepTime
	}

	order.RecalculateTotals()

	if lines != nil {
		if err := s.orderRepo.ReplaceLines(ctx, order); err != nil {
			return nil, err
		}
	} else if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// Delete implements domain.OrderService
func (s *OrderServiceImpl) Delete(ctx context.Context, orderID, vendorID uint) error {
	return s.orderRepo.Delete(ctx, orderID, vendorID)
}

// newOrderNumber builds a human-readable unique order reference.
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
