package queries

import (
	"context"

	"herdshare/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllocationsQueryHandler retrieves a buyer's allocations from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetAllocationsQueryHandler(db)
//	query, _ := NewGetAllocationsQuery(buyerID, nil)
//
//	rows, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get allocations: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Found %d allocations\n", len(rows))
type GetAllocationsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllocationsQueryHandler creates a handler for buyer allocation queries.
// Requires a GORM database connection for query execution.
func NewGetAllocationsQueryHandler(db *gorm.DB) GetAllocationsQueryHandler {
	return GetAllocationsQueryHandler{db: db}
}

// Handle executes the query to retrieve the buyer's allocations.
// Returns summaries sorted newest first. TotalCents is pulled out of the
// pricing snapshot JSON and defaults to zero for unpriced drafts.
func (h GetAllocationsQueryHandler) Handle(
	ctx context.Context,
	query GetAllocationsQuery,
) ([]AllocationSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
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
		WHERE buyer_id = ?
	`
	args := []any{query.BuyerID().Bytes()}

	if status := query.Status(); status != nil {
		sql += " AND status = ?"
		args = append(args, status.String())
	}
	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]AllocationSummary, 0)

	for rows.Next() {
		var summary AllocationSummary
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&summary.Plan,
			&summary.Status,
			&summary.WindowStart,
			&summary.WindowEnd,
			&summary.HangingWeightLbs,
			&summary.BoxedWeightLbs,
			&summary.TotalCents,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		allocationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		summary.ID = allocationID
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
