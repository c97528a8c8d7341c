package queries

import (
	"context"

	"herdshare/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCommitmentsQueryHandler retrieves a rancher's supply commitments from
// the database.
type GetCommitmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetCommitmentsQueryHandler creates a handler for commitment queries.
// Requires a GORM database connection for query execution.
func NewGetCommitmentsQueryHandler(db *gorm.DB) GetCommitmentsQueryHandler {
	return GetCommitmentsQueryHandler{db: db}
}

// Handle executes the query to retrieve the rancher's commitments.
// Returns rows sorted by period start, newest period first.
func (h GetCommitmentsQueryHandler) Handle(
	ctx context.Context,
	query GetCommitmentsQuery,
) ([]CommitmentRow, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			rancher_id,
			period_start,
			period_end,
			head_count,
			estimated_weight_lbs,
			status,
			created_at
		FROM commitments
		WHERE rancher_id = ?
		ORDER BY period_start DESC
	`, query.RancherID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	commitments := make([]CommitmentRow, 0)

	for rows.Next() {
		var commitment CommitmentRow
		var id, rancherID uuid.UUID

		err = rows.Scan(
			&id,
			&rancherID,
			&commitment.PeriodStart,
			&commitment.PeriodEnd,
			&commitment.HeadCount,
			&commitment.EstimatedWeightLbs,
			&commitment.Status,
			&commitment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		commitment.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		commitment.RancherID, err = kernel.UUIDFromBytes(rancherID[:])
		if err != nil {
			return nil, err
		}

		commitments = append(commitments, commitment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return commitments, nil
}
