package ports

import (
	"context"

	"herdshare/internal/core/domain/model/compliance"
)

// CheckpointRepository defines the persistence contract for compliance
// checkpoints. The store is append-only: there is no update or delete.
// Reads go through the query layer.
type CheckpointRepository interface {
	// Add persists a new checkpoint.
	Add(ctx context.Context, checkpoint *compliance.Checkpoint) error
}
