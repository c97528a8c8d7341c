package queries

import (
	"errors"
	"time"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/guard"
)

var (
	ErrGetAllocationsQueryIsNotConstructed = errors.New(
		"GetAllocationsQuery must be created via NewGetAllocationsQuery constructor",
	)
)

// GetAllocationsQuery retrieves a buyer's allocation intents, newest first,
// optionally narrowed to a single status.
//
// Example:
//
//	query, err := NewGetAllocationsQuery(buyerID, nil)
//	if err != nil {
//	    return err
//	}
//
//	rows, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve allocations: %w", err)
//	}
//
//	for _, row := range rows {
//	    fmt.Printf("%s %s %s $%.2f\n",
//	        row.ID, row.Plan, row.Status, float64(row.TotalCents)/100)
//	}
type GetAllocationsQuery struct {
	buyerID kernel.UUID
	status  *allocation.Status

	guard guard.ConstructorGuard
}

// NewGetAllocationsQuery creates a query for a buyer's allocation list.
// Pass a nil status to retrieve allocations in every status.
func NewGetAllocationsQuery(buyerID kernel.UUID, status *allocation.Status) (GetAllocationsQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return GetAllocationsQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetAllocationsQuery{}, err
		}
	}

	return GetAllocationsQuery{
		buyerID: buyerID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// BuyerID returns the buyer whose allocations are requested.
func (q GetAllocationsQuery) BuyerID() kernel.UUID {
	return q.buyerID
}

// Status returns the optional status filter, or nil for no filtering.
func (q GetAllocationsQuery) Status() *allocation.Status {
	return q.status
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllocationsQueryIsNotConstructed if validation fails.
func (q GetAllocationsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllocationsQueryIsNotConstructed)
}

// AllocationSummary is the list read model for an allocation intent.
// Money amounts are integer cents taken from the frozen pricing snapshot;
// TotalCents is zero while the allocation has no snapshot yet.
type AllocationSummary struct {
	ID               kernel.UUID
	Plan             string
	Status           string
	WindowStart      time.Time
	WindowEnd        time.Time
	HangingWeightLbs float64
	BoxedWeightLbs   float64
	TotalCents       int64
	CreatedAt        time.Time
}
