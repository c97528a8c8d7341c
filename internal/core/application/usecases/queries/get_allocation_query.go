package queries

import (
	"errors"
	"time"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/guard"
)

var (
	ErrGetAllocationQueryIsNotConstructed = errors.New(
		"GetAllocationQuery must be created via NewGetAllocationQuery constructor",
	)
)

// GetAllocationQuery retrieves the full detail of a single allocation intent,
// including its compliance checkpoints and audit event trail.
//
// Example:
//
//	query, err := NewGetAllocationQuery(allocationID)
//	if err != nil {
//	    return err
//	}
//
//	detail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve allocation: %w", err)
//	}
//
//	fmt.Printf("%s: %d checkpoints, %d events\n",
//	    detail.ID, len(detail.Checkpoints), len(detail.Events))
type GetAllocationQuery struct {
	allocationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAllocationQuery creates a query for a single allocation's detail view.
func NewGetAllocationQuery(allocationID kernel.UUID) (GetAllocationQuery, error) {
	if err := allocationID.Validate(); err != nil {
		return GetAllocationQuery{}, err
	}

	return GetAllocationQuery{
		allocationID: allocationID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// AllocationID returns the identifier of the requested allocation.
func (q GetAllocationQuery) AllocationID() kernel.UUID {
	return q.allocationID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAllocationQueryIsNotConstructed if validation fails.
func (q GetAllocationQuery) Validate() error {
	return q.guard.Validate(ErrGetAllocationQueryIsNotConstructed)
}

// AllocationDetail is the full read model for one allocation intent.
// Pricing is nil while the allocation has no frozen snapshot, and the
// assignment pointers are nil until an operator performs the assignment.
type AllocationDetail struct {
	ID                       kernel.UUID
	BuyerID                  kernel.UUID
	Plan                     string
	Status                   string
	WindowStart              time.Time
	WindowEnd                time.Time
	HangingWeightLbs         float64
	BoxedWeightLbs           float64
	CutsPreferences          map[string]string
	StorageCapacityConfirmed bool
	ShippingAddress          *allocation.ShippingAddress
	Pricing                  *allocation.PricingSnapshot
	CheckoutSessionID        string
	PaymentIntentID          string
	AssignedRancherID        *kernel.UUID
	AssignedProcessorID      *kernel.UUID
	RouteID                  *kernel.UUID
	DeliveredAt              *time.Time
	CreatedAt                time.Time
	Checkpoints              []CheckpointRow
	Events                   []EventRow
}

// CheckpointRow is the read model for a recorded compliance checkpoint.
type CheckpointRow struct {
	ID           kernel.UUID
	AllocationID kernel.UUID
	Kind         string
	Verdict      string
	ValueCelsius *float64
	DocumentRef  string
	Notes        string
	RecordedBy   kernel.UUID
	RecordedAt   time.Time
}

// EventRow is the read model for one audit trail entry. ActorID is nil for
// events recorded by the system itself, such as payment webhooks.
type EventRow struct {
	ID         kernel.UUID
	ActorID    *kernel.UUID
	ActorRole  string
	EntityType string
	EntityID   kernel.UUID
	EventName  string
	Payload    map[string]any
	CreatedAt  time.Time
}
