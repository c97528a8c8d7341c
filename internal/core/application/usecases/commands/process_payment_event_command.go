package commands

import (
	"errors"

	"herdshare/internal/pkg/guard"
)

// Payment provider event types the webhook understands. Anything else is
// acknowledged and ignored.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventCheckoutSessionExpired   = "checkout.session.expired"
	EventPaymentIntentSucceeded   = "payment_intent.succeeded"
	EventPaymentIntentFailed      = "payment_intent.payment_failed"
)

var (
	ErrProcessPaymentEventCommandIsNotConstructed = errors.New(
		"ProcessPaymentEventCommand must be created via NewProcessPaymentEventCommand constructor",
	)
	ErrEventTypeIsRequired      = errors.New("event type is required")
	ErrEventReferenceIsRequired = errors.New("checkout session id or payment intent id is required")
)

// ProcessPaymentEventCommand represents one verified webhook event from the
// payment provider. Session-level events reference the allocation by checkout
// session id, payment-level events by payment intent id.
type ProcessPaymentEventCommand struct { //nolint:recvcheck //using for validation
	eventType       string
	sessionID       string
	paymentIntentID string

	guard guard.ConstructorGuard
}

// NewProcessPaymentEventCommand creates a command from a verified webhook
// payload. sessionID is empty for payment-level events; paymentIntentID may
// be empty for session-level events.
func NewProcessPaymentEventCommand(eventType, sessionID, paymentIntentID string) (ProcessPaymentEventCommand, error) {
	cmd := ProcessPaymentEventCommand{
		sessionID:       sessionID,
		paymentIntentID: paymentIntentID,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEventType(eventType),
		cmd.validateReference(),
	); err != nil {
		return ProcessPaymentEventCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessPaymentEventCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentEventCommandIsNotConstructed)
}

// EventType returns the provider's event type string.
func (c ProcessPaymentEventCommand) EventType() string {
	return c.eventType
}

// SessionID returns the checkout session the event concerns.
func (c ProcessPaymentEventCommand) SessionID() string {
	return c.sessionID
}

// PaymentIntentID returns the provider's payment reference, if present.
func (c ProcessPaymentEventCommand) PaymentIntentID() string {
	return c.paymentIntentID
}

func (c *ProcessPaymentEventCommand) setEventType(eventType string) error {
	if eventType == "" {
		return ErrEventTypeIsRequired
	}

	c.eventType = eventType
	return nil
}

func (c *ProcessPaymentEventCommand) validateReference() error {
	if c.sessionID == "" && c.paymentIntentID == "" {
		return ErrEventReferenceIsRequired
	}

	return nil
}
