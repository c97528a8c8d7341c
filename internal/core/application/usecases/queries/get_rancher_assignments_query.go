package queries

import (
	"errors"

	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/guard"
)

var (
	ErrGetRancherAssignmentsQueryIsNotConstructed = errors.New(
		"GetRancherAssignmentsQuery must be created via NewGetRancherAssignmentsQuery constructor",
	)
)

// GetRancherAssignmentsQuery retrieves the allocations currently assigned to
// a rancher for fulfillment. Only allocations in an active fulfillment status
// (PAID through SHIPPED) are returned; drafts, completed deliveries and
// cancellations are excluded.
//
// Example:
//
//	query, err := NewGetRancherAssignmentsQuery(rancherID)
//	if err != nil {
//	    return err
//	}
//
//	assignments, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve assignments: %w", err)
//	}
type GetRancherAssignmentsQuery struct {
	rancherID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRancherAssignmentsQuery creates a query for a rancher's open workload.
func NewGetRancherAssignmentsQuery(rancherID kernel.UUID) (GetRancherAssignmentsQuery, error) {
	if err := rancherID.Validate(); err != nil {
		return GetRancherAssignmentsQuery{}, err
	}

	return GetRancherAssignmentsQuery{
		rancherID: rancherID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RancherID returns the rancher whose assignments are requested.
func (q GetRancherAssignmentsQuery) RancherID() kernel.UUID {
	return q.rancherID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRancherAssignmentsQueryIsNotConstructed if validation fails.
func (q GetRancherAssignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetRancherAssignmentsQueryIsNotConstructed)
}
