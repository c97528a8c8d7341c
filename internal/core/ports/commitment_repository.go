package ports

import (
	"context"

	"herdshare/internal/core/domain/model/commitment"
	"herdshare/internal/core/domain/model/kernel"
)

// CommitmentRepository defines the persistence contract for rancher supply
// commitments. Listing and reporting reads go through the query layer.
type CommitmentRepository interface {
	// Add persists a new commitment.
	Add(ctx context.Context, aggregate *commitment.Commitment) error

	// Update persists changes to an existing commitment.
	Update(ctx context.Context, aggregate *commitment.Commitment) error

	// Get retrieves a commitment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*commitment.Commitment, error)
}
