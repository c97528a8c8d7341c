package queries

import (
	"context"

	"herdshare/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRancherAssignmentsQueryHandler retrieves a rancher's open fulfillment
// workload from the database.
type GetRancherAssignmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetRancherAssignmentsQueryHandler creates a handler for rancher
// assignment queries. Requires a GORM database connection.
func NewGetRancherAssignmentsQueryHandler(db *gorm.DB) GetRancherAssignmentsQueryHandler {
	return GetRancherAssignmentsQueryHandler{db: db}
}

// Handle executes the query to retrieve the rancher's active assignments.
// Assignments are sorted by delivery window so the most urgent come first.
func (h GetRancherAssignmentsQueryHandler) Handle(
	ctx context.Context,
	query GetRancherAssignmentsQuery,
) ([]AllocationSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			plan,
			status,
			window_start,
			window_end,
			hanging_weight_lbs,
			boxed_weight_lbs,
			COALESCE((pricing_snapshot->>'total')::bigint, 0),
			created_at
		FROM allocations
		WHERE assigned_rancher_id = ?
		  AND status IN ('PAID', 'SCHEDULED', 'PROCESSING', 'SHIPPED')
		ORDER BY window_start, created_at
	`, query.RancherID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]AllocationSummary, 0)

	for rows.Next() {
		var assignment AllocationSummary
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&assignment.Plan,
			&assignment.Status,
			&assignment.WindowStart,
			&assignment.WindowEnd,
			&assignment.HangingWeightLbs,
			&assignment.BoxedWeightLbs,
			&assignment.TotalCents,
			&assignment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		assignment.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		assignments = append(assignments, assignment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
