package ports

import (
	"context"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
)

// AllocationRepository defines the persistence contract for allocation
// aggregates. Listing and reporting reads go through the query layer, not
// this interface.
type AllocationRepository interface {
	// Add persists a new allocation aggregate to storage.
	Add(ctx context.Context, aggregate *allocation.AllocationIntent) error

	// Update persists changes to an existing allocation aggregate.
	Update(ctx context.Context, aggregate *allocation.AllocationIntent) error

	// Get retrieves an allocation aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*allocation.AllocationIntent, error)

	// GetByCheckoutSession retrieves the allocation holding the given payment
	// session id. Used by webhook processing.
	GetByCheckoutSession(ctx context.Context, sessionID string) (*allocation.AllocationIntent, error)

	// GetByPaymentIntent retrieves the allocation holding the given payment
	// intent reference. Used by webhook processing for payment-level events,
	// which carry no session id.
	GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*allocation.AllocationIntent, error)
}
