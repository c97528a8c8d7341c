package queries

import (
	"errors"
	"time"

	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/guard"
)

var (
	ErrGetCommitmentsQueryIsNotConstructed = errors.New(
		"GetCommitmentsQuery must be created via NewGetCommitmentsQuery constructor",
	)
)

// GetCommitmentsQuery retrieves a rancher's supply commitments, newest
// period first.
//
// Example:
//
//	query, err := NewGetCommitmentsQuery(rancherID)
//	if err != nil {
//	    return err
//	}
//
//	commitments, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve commitments: %w", err)
//	}
type GetCommitmentsQuery struct {
	rancherID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCommitmentsQuery creates a query for a rancher's commitment list.
func NewGetCommitmentsQuery(rancherID kernel.UUID) (GetCommitmentsQuery, error) {
	if err := rancherID.Validate(); err != nil {
		return GetCommitmentsQuery{}, err
	}

	return GetCommitmentsQuery{
		rancherID: rancherID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RancherID returns the rancher whose commitments are requested.
func (q GetCommitmentsQuery) RancherID() kernel.UUID {
	return q.rancherID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCommitmentsQueryIsNotConstructed if validation fails.
func (q GetCommitmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetCommitmentsQueryIsNotConstructed)
}

// CommitmentRow is the read model for one supply commitment.
type CommitmentRow struct {
	ID                 kernel.UUID
	RancherID          kernel.UUID
	PeriodStart        time.Time
	PeriodEnd          time.Time
	HeadCount          int
	EstimatedWeightLbs float64
	Status             string
	CreatedAt          time.Time
}
