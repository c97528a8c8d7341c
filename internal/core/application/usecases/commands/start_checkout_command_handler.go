package commands

import (
	"context"
	"errors"

	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/domain/model/eventlog"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/core/ports"
)

// ErrNotAllocationOwner is returned when a buyer tries to check out an
// allocation that belongs to someone else.
var ErrNotAllocationOwner = errors.New("allocation does not belong to the caller")

// StartCheckoutCommandHandler opens a hosted payment session for a priced
// allocation and moves it to CHECKOUT_STARTED. Restarting checkout for an
// allocation already in CHECKOUT_STARTED replaces the session.
//
// Example:
//
//	handler := NewStartCheckoutCommandHandler(uowFactory, gateway)
//	cmd, _ := NewStartCheckoutCommand(allocationID, buyerID)
//
//	session, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	// Redirect the buyer to session.RedirectURL
type StartCheckoutCommandHandler struct {
	uowFactory AllocationUoWFactory
	gateway    ports.PaymentGateway
}

// NewStartCheckoutCommandHandler creates a handler for checkout initiation.
func NewStartCheckoutCommandHandler(
	uowFactory AllocationUoWFactory,
	gateway ports.PaymentGateway,
) StartCheckoutCommandHandler {
	return StartCheckoutCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle processes the checkout command and returns the provider session.
// The session is created before the transaction commits; if the commit fails
// the provider session is orphaned and expires on its own.
func (h *StartCheckoutCommandHandler) Handle(ctx context.Context, cmd StartCheckoutCommand) (ports.CheckoutSession, error) {
	if err := cmd.Validate(); err != nil {
		return ports.CheckoutSession{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.CheckoutSession{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	intent, err := uow.AllocationRepository().Get(ctx, cmd.AllocationID())
	if err != nil {
		return ports.CheckoutSession{}, err
	}

	if !intent.BuyerID().IsEqual(cmd.BuyerID()) {
		return ports.CheckoutSession{}, ErrNotAllocationOwner
	}

	session, err := h.gateway.CreateCheckoutSession(ctx, intent)
	if err != nil {
		return ports.CheckoutSession{}, err
	}

	if err = intent.StartCheckout(session.ID); err != nil {
		return ports.CheckoutSession{}, err
	}

	if err = uow.AllocationRepository().Update(ctx, intent); err != nil {
		return ports.CheckoutSession{}, err
	}

	allocationID := intent.ID()
	buyerID := intent.BuyerID()
	entry, err := eventlog.NewEntry(
		kernel.NewUUID(), &buyerID, account.Buyer,
		"allocation", allocationID, "checkout_started",
		map[string]any{"sessionId": session.ID},
		&allocationID,
	)
	if err != nil {
		return ports.CheckoutSession{}, err
	}

	if err = uow.EventLogRepository().Add(ctx, entry); err != nil {
		return ports.CheckoutSession{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.CheckoutSession{}, err
	}

	return session, nil
}
