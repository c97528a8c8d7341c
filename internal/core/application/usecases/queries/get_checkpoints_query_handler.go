package queries

import (
	"context"
	"database/sql"

	"herdshare/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCheckpointsQueryHandler retrieves the checkpoint trail of an allocation.
// Checkpoints are append-only, so the trail is returned in recording order.
type GetCheckpointsQueryHandler struct {
	db *gorm.DB
}

// NewGetCheckpointsQueryHandler creates a handler for checkpoint queries.
// Requires a GORM database connection for query execution.
func NewGetCheckpointsQueryHandler(db *gorm.DB) GetCheckpointsQueryHandler {
	return GetCheckpointsQueryHandler{db: db}
}

// Handle executes the query to retrieve the allocation's checkpoints.
// An allocation with no recorded checkpoints yields an empty slice.
func (h GetCheckpointsQueryHandler) Handle(
	ctx context.Context,
	query GetCheckpointsQuery,
) ([]CheckpointRow, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return loadCheckpoints(ctx, h.db, query.AllocationID())
}

// loadCheckpoints reads the checkpoint rows of one allocation. Shared with
// the allocation detail query, which embeds the same trail in its response.
func loadCheckpoints(
	ctx context.Context,
	db *gorm.DB,
	allocationID kernel.UUID,
) ([]CheckpointRow, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			allocation_id,
			kind,
			verdict,
			value_celsius,
			document_ref,
			notes,
			recorded_by,
			recorded_at
		FROM checkpoints
		WHERE allocation_id = ?
		ORDER BY recorded_at
	`, allocationID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkpoints := make([]CheckpointRow, 0)

	for rows.Next() {
		var checkpoint CheckpointRow
		var id, allocID, recordedBy uuid.UUID
		var value sql.NullFloat64

		err = rows.Scan(
			&id,
			&allocID,
			&checkpoint.Kind,
			&checkpoint.Verdict,
			&value,
			&checkpoint.DocumentRef,
			&checkpoint.Notes,
			&recordedBy,
			&checkpoint.RecordedAt,
		)
		if err != nil {
			return nil, err
		}

		checkpoint.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		checkpoint.AllocationID, err = kernel.UUIDFromBytes(allocID[:])
		if err != nil {
			return nil, err
		}
		checkpoint.RecordedBy, err = kernel.UUIDFromBytes(recordedBy[:])
		if err != nil {
			return nil, err
		}

		if value.Valid {
			v := value.Float64
			checkpoint.ValueCelsius = &v
		}

		checkpoints = append(checkpoints, checkpoint)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return checkpoints, nil
}
