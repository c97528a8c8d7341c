package queries

import (
	"context"

	"herdshare/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAdminAllocationsQueryHandler retrieves the paginated allocation list for
// the operations dashboard. The count and the page are read in two statements
// against the same filter set.
//
// Example:
//
//	handler := NewGetAdminAllocationsQueryHandler(db)
//	query, _ := NewGetAdminAllocationsQuery(nil, nil, nil, 1, 50)
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get allocations: %v", err)
//	    return err
//	}
type GetAdminAllocationsQueryHandler struct {
	db *gorm.DB
}

// NewGetAdminAllocationsQueryHandler creates a handler for admin list queries.
// Requires a GORM database connection for query execution.
func NewGetAdminAllocationsQueryHandler(db *gorm.DB) GetAdminAllocationsQueryHandler {
	return GetAdminAllocationsQueryHandler{db: db}
}

// Handle executes the query to retrieve one page of the admin allocation list.
// Rows are sorted newest first. Total counts every row matching the filters,
// not just the returned page.
func (h GetAdminAllocationsQueryHandler) Handle(
	ctx context.Context,
	query GetAdminAllocationsQuery,
) (AdminAllocationsPage, error) {
	if err := query.Validate(); err != nil {
		return AdminAllocationsPage{}, err
	}

	where, args := buildAdminFilters(query)

	var total int64
	err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM allocations"+where, args...).
		Scan(&total).Error
	if err != nil {
		return AdminAllocationsPage{}, err
	}

	offset := (query.Page() - 1) * query.PageSize()
	pageArgs := append(args, query.PageSize(), offset)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			buyer_id,
			plan,
			status,
			window_start,
			window_end,
			hanging_weight_lbs,
			boxed_weight_lbs,
			COALESCE((pricing_snapshot->>'total')::bigint, 0),
			assigned_rancher_id,
			route_id,
			created_at
		FROM allocations`+where+`
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, pageArgs...).Rows()
	if err != nil {
		return AdminAllocationsPage{}, err
	}
	defer rows.Close()

	items := make([]AdminAllocationRow, 0, query.PageSize())

	for rows.Next() {
		var item AdminAllocationRow
		var id, buyerID uuid.UUID
		var rancherID, routeID uuid.NullUUID

		err = rows.Scan(
			&id,
			&buyerID,
			&item.Plan,
			&item.Status,
			&item.WindowStart,
			&item.WindowEnd,
			&item.HangingWeightLbs,
			&item.BoxedWeightLbs,
			&item.TotalCents,
			&rancherID,
			&routeID,
			&item.CreatedAt,
		)
		if err != nil {
			return AdminAllocationsPage{}, err
		}

		item.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return AdminAllocationsPage{}, err
		}
		item.BuyerID, err = kernel.UUIDFromBytes(buyerID[:])
		if err != nil {
			return AdminAllocationsPage{}, err
		}
		item.AssignedRancherID, err = optionalUUID(rancherID)
		if err != nil {
			return AdminAllocationsPage{}, err
		}
		item.RouteID, err = optionalUUID(routeID)
		if err != nil {
			return AdminAllocationsPage{}, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return AdminAllocationsPage{}, err
	}

	return AdminAllocationsPage{
		Items:    items,
		Total:    total,
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}, nil
}

// buildAdminFilters renders the WHERE clause shared by the count and the
// page statements.
func buildAdminFilters(query GetAdminAllocationsQuery) (string, []any) {
	where := " WHERE 1=1"
	args := make([]any, 0, 3)

	if status := query.Status(); status != nil {
		where += " AND status = ?"
		args = append(args, status.String())
	}
	if plan := query.Plan(); plan != nil {
		where += " AND plan = ?"
		args = append(args, plan.String())
	}
	if rancherID := query.RancherID(); rancherID != nil {
		where += " AND assigned_rancher_id = ?"
		args = append(args, rancherID.Bytes())
	}

	return where, args
}
