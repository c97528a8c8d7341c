package commands

import (
	"context"
	"errors"

	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/eventlog"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"
)

// ProcessPaymentEventCommandHandler applies verified payment provider events
// to allocations.
//
// Event semantics:
//   - checkout.session.completed: confirm payment, move to PAID
//   - checkout.session.expired: revert CHECKOUT_STARTED to DRAFT; any other
//     status means the buyer already progressed and the event is stale
//   - payment_intent.succeeded: confirm payment unless already PAID, in which
//     case the duplicate is acknowledged without a second audit entry
//   - payment_intent.payment_failed: audit entry only, no status change
//
// Session-level events locate the allocation by checkout session id,
// payment-level events by payment intent reference. Unrecognized event types
// and payment references matching no allocation are acknowledged and ignored
// so the provider does not retry them forever.
type ProcessPaymentEventCommandHandler struct {
	uowFactory AllocationUoWFactory
}

// NewProcessPaymentEventCommandHandler creates a handler for webhook events.
func NewProcessPaymentEventCommandHandler(uowFactory AllocationUoWFactory) ProcessPaymentEventCommandHandler {
	return ProcessPaymentEventCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one verified webhook event.
func (h *ProcessPaymentEventCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	switch cmd.EventType() {
	case EventCheckoutSessionCompleted, EventPaymentIntentSucceeded:
		return h.confirmPayment(ctx, cmd)
	case EventCheckoutSessionExpired:
		return h.expireCheckout(ctx, cmd)
	case EventPaymentIntentFailed:
		return h.recordFailure(ctx, cmd)
	default:
		return nil
	}
}

func (h *ProcessPaymentEventCommandHandler) confirmPayment(ctx context.Context, cmd ProcessPaymentEventCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	intent, err := h.findIntent(ctx, uow, cmd)
	if err != nil {
		if isUnmatchedPaymentReference(cmd, err) {
			return uow.Commit(ctx)
		}
		return err
	}

	// Duplicate delivery of a success event is a silent acknowledgment.
	if intent.Status() == allocation.Paid {
		return uow.Commit(ctx)
	}

	if err = intent.MarkPaid(cmd.PaymentIntentID()); err != nil {
		return err
	}

	if err = uow.AllocationRepository().Update(ctx, intent); err != nil {
		return err
	}

	if err = h.logEvent(ctx, uow, intent, "payment_confirmed", map[string]any{
		"eventType":       cmd.EventType(),
		"paymentIntentId": cmd.PaymentIntentID(),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *ProcessPaymentEventCommandHandler) expireCheckout(ctx context.Context, cmd ProcessPaymentEventCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	intent, err := uow.AllocationRepository().GetByCheckoutSession(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	// The expiry only applies while the session is still the active one.
	if intent.Status() != allocation.CheckoutStarted {
		return uow.Commit(ctx)
	}

	if err = intent.ExpireCheckout(); err != nil {
		return err
	}

	if err = uow.AllocationRepository().Update(ctx, intent); err != nil {
		return err
	}

	if err = h.logEvent(ctx, uow, intent, "checkout_expired", map[string]any{
		"sessionId": cmd.SessionID(),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *ProcessPaymentEventCommandHandler) recordFailure(ctx context.Context, cmd ProcessPaymentEventCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	intent, err := h.findIntent(ctx, uow, cmd)
	if err != nil {
		if isUnmatchedPaymentReference(cmd, err) {
			return uow.Commit(ctx)
		}
		return err
	}

	if err = h.logEvent(ctx, uow, intent, "payment_failed", map[string]any{
		"paymentIntentId": cmd.PaymentIntentID(),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// findIntent resolves the allocation an event concerns. Session-level events
// carry the checkout session id; payment-level events only carry the payment
// intent reference recorded when the allocation was paid.
func (h *ProcessPaymentEventCommandHandler) findIntent(
	ctx context.Context,
	uow AllocationUoW,
	cmd ProcessPaymentEventCommand,
) (*allocation.AllocationIntent, error) {
	if cmd.SessionID() != "" {
		return uow.AllocationRepository().GetByCheckoutSession(ctx, cmd.SessionID())
	}
	return uow.AllocationRepository().GetByPaymentIntent(ctx, cmd.PaymentIntentID())
}

// isUnmatchedPaymentReference reports whether a lookup failure is a
// payment-level event whose reference matches no allocation. The provider
// emits these for payments outside this system's sessions; they are
// acknowledged, not retried.
func isUnmatchedPaymentReference(cmd ProcessPaymentEventCommand, err error) bool {
	return cmd.SessionID() == "" && errors.Is(err, errs.ErrObjectNotFound)
}

func (h *ProcessPaymentEventCommandHandler) logEvent(
	ctx context.Context,
	uow AllocationUoW,
	intent *allocation.AllocationIntent,
	eventName string,
	payload map[string]any,
) error {
	allocationID := intent.ID()
	entry, err := eventlog.NewEntry(
		kernel.NewUUID(), nil, account.RoleUnknown,
		"allocation", allocationID, eventName, payload, &allocationID)
	if err != nil {
		return err
	}
	return uow.EventLogRepository().Add(ctx, entry)
}
