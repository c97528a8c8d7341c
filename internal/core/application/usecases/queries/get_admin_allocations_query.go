package queries

import (
	"errors"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"
	"herdshare/internal/pkg/guard"
)

var (
	ErrGetAdminAllocationsQueryIsNotConstructed = errors.New(
		"GetAdminAllocationsQuery must be created via NewGetAdminAllocationsQuery constructor",
	)
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetAdminAllocationsQuery retrieves a filtered, paginated page of all
// allocations for the operations dashboard. All filters are optional and
// combine with AND semantics.
//
// Example:
//
//	status := allocation.Paid
//	query, err := NewGetAdminAllocationsQuery(&status, nil, nil, 1, 20)
//	if err != nil {
//	    return err
//	}
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve allocations: %w", err)
//	}
//
//	fmt.Printf("Showing %d of %d allocations\n", len(page.Items), page.Total)
type GetAdminAllocationsQuery struct {
	status    *allocation.Status
	plan      *allocation.ProductPlan
	rancherID *kernel.UUID
	page      int
	pageSize  int

	guard guard.ConstructorGuard
}

// NewGetAdminAllocationsQuery creates a query for the admin allocation list.
// Page numbering starts at 1. A non-positive page size falls back to the
// default of 20, and sizes above 100 are clamped.
func NewGetAdminAllocationsQuery(
	status *allocation.Status,
	plan *allocation.ProductPlan,
	rancherID *kernel.UUID,
	page int,
	pageSize int,
) (GetAdminAllocationsQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetAdminAllocationsQuery{}, err
		}
	}
	if plan != nil {
		if err := plan.Validate(); err != nil {
			return GetAdminAllocationsQuery{}, err
		}
	}
	if rancherID != nil {
		if err := rancherID.Validate(); err != nil {
			return GetAdminAllocationsQuery{}, err
		}
	}
	if page < 1 {
		return GetAdminAllocationsQuery{}, errs.NewValueIsInvalidError("page")
	}

	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return GetAdminAllocationsQuery{
		status:    status,
		plan:      plan,
		rancherID: rancherID,
		page:      page,
		pageSize:  pageSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Status returns the optional status filter, or nil for no filtering.
func (q GetAdminAllocationsQuery) Status() *allocation.Status {
	return q.status
}

// Plan returns the optional product plan filter, or nil for no filtering.
func (q GetAdminAllocationsQuery) Plan() *allocation.ProductPlan {
	return q.plan
}

// RancherID returns the optional assigned rancher filter, or nil for no filtering.
func (q GetAdminAllocationsQuery) RancherID() *kernel.UUID {
	return q.rancherID
}

// Page returns the 1-based page number.
func (q GetAdminAllocationsQuery) Page() int {
	return q.page
}

// PageSize returns the clamped page size.
func (q GetAdminAllocationsQuery) PageSize() int {
	return q.pageSize
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAdminAllocationsQueryIsNotConstructed if validation fails.
func (q GetAdminAllocationsQuery) Validate() error {
	return q.guard.Validate(ErrGetAdminAllocationsQueryIsNotConstructed)
}

// AdminAllocationRow extends the buyer summary with the fields operators
// need for triage: who bought it and which rancher and route serve it.
type AdminAllocationRow struct {
	AllocationSummary
	BuyerID           kernel.UUID
	AssignedRancherID *kernel.UUID
	RouteID           *kernel.UUID
}

// AdminAllocationsPage is one page of the admin allocation list along with
// the total row count matching the filters.
type AdminAllocationsPage struct {
	Items    []AdminAllocationRow
	Total    int64
	Page     int
	PageSize int
}
