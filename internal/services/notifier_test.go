package services

import (
	"context"
	"testing"
	"time"

	"github.com/you/ordersvc/domain"
	"github.com/you/ordersvc/internal/mocks"
)

func TestNotifierImpl_DeliversByType(t *testing.T) {
	mailer := mocks.NewMockMailer()
	sms := mocks.NewMockSMSSender()
	notifier := NewNotifier(mailer, sms, 16)

	welcome := domain.NewEvent(domain.WelcomeEvent)
	welcome.Email = "a@x.test"
	welcome.Name = "A"
	notifier.Enqueue(welcome)

	alert := domain.NewEvent(domain.OrderAlertEvent)
	alert.Email = "vendor@x.test"
	alert.Order = &domain.Order{OrderNumber: "ORD-1", TableNumber: "4", TotalAmount: 20}
	notifier.Enqueue(alert)

	ready := domain.NewEvent(domain.OrderReadyEvent)
	ready.Phone = "+15550003333"
	ready.Order = &domain.Order{OrderNumber: "ORD-1"}
	notifier.Enqueue(ready)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := notifier.Close(ctx); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if mailer.SentCount() != 2 {
		t.Errorf("expected 2 emails, got %d", mailer.SentCount())
	}
	if sms.SentCount() != 1 {
		t.Errorf("expected 1 sms, got %d", sms.SentCount())
	}
}

func TestNotifierImpl_EnqueueNeverBlocks(t *testing.T) {
	// A zero-capacity mailer that hangs would stall the worker; enqueue must
	// still return immediately and drop on overflow.
	blocked := make(chan struct{})
	mailer := mocks.NewMockMailer()
	mailer.SendFunc = func(to, subject, htmlBody string) error {
		<-blocked
		return nil
	}
	notifier := NewNotifier(mailer, mocks.NewMockSMSSender(), 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			ev := domain.NewEvent(domain.WelcomeEvent)
			ev.Email = "x@x.test"
			notifier.Enqueue(ev)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}

	close(blocked)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = notifier.Close(ctx)
}

func TestNotifierImpl_EnqueueReportsDropOnFullQueue(t *testing.T) {
	// With the worker stuck in Send and a depth of one, at most two events
	// fit before Enqueue has to start refusing.
	blocked := make(chan struct{})
	mailer := mocks.NewMockMailer()
	mailer.SendFunc = func(to, subject, htmlBody string) error {
		<-blocked
		return nil
	}
	notifier := NewNotifier(mailer, mocks.NewMockSMSSender(), 1)

	dropped := 0
	for i := 0; i < 3; i++ {
		ev := domain.NewEvent(domain.WelcomeEvent)
		ev.Email = "x@x.test"
		if !notifier.Enqueue(ev) {
			dropped++
		}
	}
	if dropped == 0 {
		t.Error("expected at least one refused enqueue on a full queue")
	}

	close(blocked)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = notifier.Close(ctx)
}

func TestNotifierImpl_DeliveryFailureIsSwallowed(t *testing.T) {
	mailer := mocks.NewMockMailer()
	mailer.SendFunc = func(to, subject, htmlBody string) error {
		return context.DeadlineExceeded
	}
	notifier := NewNotifier(mailer, mocks.NewMockSMSSender(), 4)

	ev := domain.NewEvent(domain.WelcomeEvent)
	ev.Email = "x@x.test"
	notifier.Enqueue(ev)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := notifier.Close(ctx); err != nil {
		t.Fatalf("a failed delivery must not surface anywhere: %v", err)
	}
}
