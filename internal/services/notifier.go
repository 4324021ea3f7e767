package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/you/ordersvc/domain"
)

// NotifierImpl implements domain.Notifier as a buffered in-process queue with
// a single delivery worker. Delivery is at-most-once: a failed or dropped
// event is logged and forgotten, and nothing propagates back to the request
// that enqueued it.
type NotifierImpl struct {
	mailer domain.Mailer
	sms    domain.SMSSender

	events chan domain.Event
	wg     sync.WaitGroup
	once   sync.Once
}

// NewNotifier creates a notifier with the given queue depth and starts its
// worker.
func NewNotifier(mailer domain.Mailer, sms domain.SMSSender, depth int) *NotifierImpl {
	if depth <= 0 {
		depth = 256
	}
	n := &NotifierImpl{
		mailer: mailer,
		sms:    sms,
		events: make(chan domain.Event, depth),
	}
	n.wg.Add(1)
	go n.run()
	return n
}

// Enqueue implements domain.Notifier. Never blocks: when the queue is full
// the event is dropped and Enqueue reports false.
func (n *NotifierImpl) Enqueue(event domain.Event) bool {
	select {
	case n.events <- event:
		return true
	default:
		log.Printf("notifier: queue full, dropping %s for %s", event.Type, event.Email)
		return false
	}
}

// Close drains the queue and stops the worker.
func (n *NotifierImpl) Close(ctx context.Context) error {
	n.once.Do(func() {
		close(n.events)
	})

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *NotifierImpl) run() {
	defer n.wg.Done()
	for event := range n.events {
		if err := n.deliver(event); err != nil {
			log.Printf("notifier: %s to %s failed: %v", event.Type, event.Email, err)
		}
	}
}

func (n *NotifierImpl) deliver(event domain.Event) error {
	switch event.Type {
	case domain.WelcomeEvent:
		return n.mailer.Send(event.Email, "Welcome!",
			fmt.Sprintf("<p>Hi %s,</p><p>Your account is ready.</p>", event.Name))

	case domain.PasswordResetEvent:
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>Use this token to reset your password: <b>%s</b></p>",
			event.Name, event.ResetToken)
		if event.ExpiresAt != nil {
			body += fmt.Sprintf("<p>The token expires at %s.</p>", event.ExpiresAt.Format("15:04 MST"))
		}
		return n.mailer.Send(event.Email, "Password reset", body)

	case domain.AccessInviteEvent:
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>%s invited you to manage their restaurant.</p><p><a href=%q>Accept the invitation</a></p>",
			event.Name, event.VendorName, event.InviteLink)
		if event.Notes != "" {
			body += fmt.Sprintf("<p>%s</p>", event.Notes)
		}
		return n.mailer.Send(event.Email, "You have been invited", body)

	case domain.OrderAlertEvent:
		return n.mailer.Send(event.Email,
			fmt.Sprintf("New order %s", event.Order.OrderNumber),
			fmt.Sprintf("<p>Table %s placed order %s, %d items, total %.2f.</p>",
				event.Order.TableNumber, event.Order.OrderNumber,
				len(event.Order.Lines), event.Order.TotalAmount))

	case domain.OrderCreatedEvent:
		if event.Email == "" {
			return nil
		}
		return n.mailer.Send(event.Email,
			fmt.Sprintf("Order %s received", event.Order.OrderNumber),
			fmt.Sprintf("<p>%s received your order %s, total %.2f.</p>",
				event.VendorName, event.Order.OrderNumber, event.Order.TotalAmount))

	case domain.OrderReadyEvent:
		if event.Phone != "" {
			return n.sms.SendSMS(event.Phone,
				fmt.Sprintf("Your order %s is ready for pickup.", event.Order.OrderNumber))
		}
		if event.Email != "" {
			return n.mailer.Send(event.Email,
				fmt.Sprintf("Order %s is ready", event.Order.OrderNumber),
				fmt.Sprintf("<p>Your order %s is ready.</p>", event.Order.OrderNumber))
		}
		return nil

	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
}
