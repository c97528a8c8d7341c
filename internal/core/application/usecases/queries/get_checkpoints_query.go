package queries

import (
	"errors"

	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/guard"
)

var (
	ErrGetCheckpointsQueryIsNotConstructed = errors.New(
		"GetCheckpointsQuery must be created via NewGetCheckpointsQuery constructor",
	)
)

// GetCheckpointsQuery retrieves the compliance checkpoint history of one
// allocation, in the order the checkpoints were recorded.
//
// Example:
//
//	query, err := NewGetCheckpointsQuery(allocationID)
//	if err != nil {
//	    return err
//	}
//
//	checkpoints, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve checkpoints: %w", err)
//	}
type GetCheckpointsQuery struct {
	allocationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCheckpointsQuery creates a query for an allocation's checkpoint trail.
func NewGetCheckpointsQuery(allocationID kernel.UUID) (GetCheckpointsQuery, error) {
	if err := allocationID.Validate(); err != nil {
		return GetCheckpointsQuery{}, err
	}

	return GetCheckpointsQuery{
		allocationID: allocationID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// AllocationID returns the allocation whose checkpoints are requested.
func (q GetCheckpointsQuery) AllocationID() kernel.UUID {
	return q.allocationID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCheckpointsQueryIsNotConstructed if validation fails.
func (q GetCheckpointsQuery) Validate() error {
	return q.guard.Validate(ErrGetCheckpointsQueryIsNotConstructed)
}
