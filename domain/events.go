package domain

import "time"

// EventType identifies an outbound notification.
type EventType string

const (
	// Order lifecycle notifications. Creation fans out to two events: an
	// alert to the vendor and a confirmation to the customer.
	OrderAlertEvent   EventType = "ORDER_ALERT"
	OrderCreatedEvent EventType = "ORDER_CREATED"
	OrderReadyEvent   EventType = "ORDER_READY"

	// Account lifecycle notifications
	WelcomeEvent       EventType = "WELCOME"
	PasswordResetEvent EventType = "PASSWORD_RESET"

	// Access grant notifications
	AccessInviteEvent EventType = "ACCESS_INVITE"
)

// Event is a notification submitted to the outbound queue. Delivery is
// at-most-once and best-effort: the queue consumer owns failure handling,
// and nothing about delivery ever reaches the request that produced the
// event.
type Event struct {
	Type      EventType
	Timestamp time.Time

	// Recipient addressing. Phone is used only where an SMS variant exists.
	Email string
	Phone string
	Name  string

	// Payload fields, populated per event type.
	Order      *Order
	VendorName string
	ResetToken string
	InviteLink string
	ExpiresAt  *time.Time
	Notes      string
}

// NewEvent creates an event stamped with the current time.
func NewEvent(t EventType) Event {
	return Event{Type: t, Timestamp: time.Now().UTC()}
}
