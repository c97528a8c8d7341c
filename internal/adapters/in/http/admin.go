package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"herdshare/internal/core/application/usecases/commands"
	"herdshare/internal/core/application/usecases/queries"
	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
)

type adminAllocationResponse struct {
	allocationSummaryResponse

	BuyerID           string  `json:"buyerId"`
	AssignedRancherID *string `json:"assignedRancherId,omitempty"`
	RouteID           *string `json:"routeId,omitempty"`
}

type adminAllocationsPageResponse struct {
	Items    []adminAllocationResponse `json:"items"`
	Total    int64                     `json:"total"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"pageSize"`
}

// GetAdminAllocations handles GET /api/v1/admin/allocations - pages through
// every allocation with optional status, plan, and rancher filters.
func (s *Server) GetAdminAllocations(ctx echo.Context) error {
	var status *allocation.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := allocation.StatusFromString(raw)
		if err != nil {
			return writeBadRequest(ctx, "Invalid status: "+err.Error())
		}
		status = &parsed
	}

	var plan *allocation.ProductPlan
	if raw := ctx.QueryParam("plan"); raw != "" {
		parsed, err := allocation.PlanFromString(raw)
		if err != nil {
			return writeBadRequest(ctx, "Invalid plan: "+err.Error())
		}
		plan = &parsed
	}

	var rancherID *kernel.UUID
	if raw := ctx.QueryParam("rancherId"); raw != "" {
		parsed, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeBadRequest(ctx, "Invalid rancher id")
		}
		rancherID = &parsed
	}

	page, err := intQueryParam(ctx, "page", 1)
	if err != nil {
		return writeBadRequest(ctx, "Invalid page")
	}
	pageSize, err := intQueryParam(ctx, "pageSize", 0)
	if err != nil {
		return writeBadRequest(ctx, "Invalid page size")
	}

	query, err := queries.NewGetAdminAllocationsQuery(status, plan, rancherID, page, pageSize)
	if err != nil {
		return writeBadRequest(ctx, "Invalid query: "+err.Error())
	}

	result, err := s.getAdminAllocationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]adminAllocationResponse, len(result.Items))
	for i, row := range result.Items {
		var assignedRancherID, routeID *string
		if row.AssignedRancherID != nil {
			id := row.AssignedRancherID.String()
			assignedRancherID = &id
		}
		if row.RouteID != nil {
			id := row.RouteID.String()
			routeID = &id
		}

		items[i] = adminAllocationResponse{
			allocationSummaryResponse: toSummaryResponse(row.AllocationSummary),
			BuyerID:                   row.BuyerID.String(),
			AssignedRancherID:         assignedRancherID,
			RouteID:                   routeID,
		}
	}

	return ctx.JSON(http.StatusOK, adminAllocationsPageResponse{
		Items:    items,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

type updateStatusRequest struct {
	Status      string `json:"status"`
	RancherID   string `json:"rancherId"`
	ProcessorID string `json:"processorId"`
	Notes       string `json:"notes"`
}

// UpdateAllocationStatus handles PATCH /api/v1/admin/allocations/:id/status -
// moves an allocation along its lifecycle. Illegal transitions come back as
// 400 with the legal alternatives.
func (s *Server) UpdateAllocationStatus(ctx echo.Context) error {
	actor, ok := requestActor(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	allocationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid allocation id")
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	target, err := allocation.StatusFromString(req.Status)
	if err != nil {
		return writeBadRequest(ctx, "Invalid status: "+err.Error())
	}

	rancherID, err := optionalUUIDField(req.RancherID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid rancher id")
	}
	processorID, err := optionalUUIDField(req.ProcessorID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid processor id")
	}

	cmd, err := commands.NewUpdateAllocationStatusCommand(
		allocationID, target, rancherID, processorID, req.Notes, actor.ID(), actor.Role())
	if err != nil {
		return writeBadRequest(ctx, "Invalid status change: "+err.Error())
	}

	if handleErr := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type assignRouteRequest struct {
	DropDate string `json:"dropDate"`
}

// AssignRoute handles POST /api/v1/admin/allocations/:id/route - books a paid
// allocation onto the delivery route covering its ZIP for the drop date.
func (s *Server) AssignRoute(ctx echo.Context) error {
	actor, ok := requestActor(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	allocationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid allocation id")
	}

	var req assignRouteRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	dropDate, err := time.Parse("2006-01-02", req.DropDate)
	if err != nil {
		return writeBadRequest(ctx, "Invalid drop date, expected YYYY-MM-DD")
	}

	cmd, err := commands.NewAssignRouteCommand(allocationID, dropDate, actor.ID(), actor.Role())
	if err != nil {
		return writeBadRequest(ctx, "Invalid route assignment: "+err.Error())
	}

	if handleErr := s.assignRouteHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type planBreakdownResponse struct {
	Count            int64   `json:"count"`
	HangingWeightLbs float64 `json:"hangingWeightLbs"`
	BoxedWeightLbs   float64 `json:"boxedWeightLbs"`
}

type metricsSummaryResponse struct {
	From               time.Time                        `json:"from"`
	To                 time.Time                        `json:"to"`
	StatusCounts       map[string]int64                 `json:"statusCounts"`
	PlanCounts         map[string]planBreakdownResponse `json:"planCounts"`
	RevenueCents       int64                            `json:"revenueCents"`
	AvgOrderCents      int64                            `json:"avgOrderCents"`
	CompletedCount     int64                            `json:"completedCount"`
	OnTimeRate         float64                          `json:"onTimeRate"`
	CheckpointVerdicts map[string]int64                 `json:"checkpointVerdicts"`
	ActiveRoutes       int64                            `json:"activeRoutes"`
	AvgDensityScore    float64                          `json:"avgDensityScore"`
}

// GetMetricsSummary handles GET /api/v1/admin/metrics/summary - returns the
// operational dashboard figures for a date range, defaulting to the trailing
// thirty days.
func (s *Server) GetMetricsSummary(ctx echo.Context) error {
	from, err := timeQueryParam(ctx, "from")
	if err != nil {
		return writeBadRequest(ctx, "Invalid from date, expected RFC 3339")
	}
	to, err := timeQueryParam(ctx, "to")
	if err != nil {
		return writeBadRequest(ctx, "Invalid to date, expected RFC 3339")
	}

	query, err := queries.NewGetMetricsSummaryQuery(from, to)
	if err != nil {
		return writeBadRequest(ctx, "Invalid date range: "+err.Error())
	}

	summary, err := s.getMetricsSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	planCounts := make(map[string]planBreakdownResponse, len(summary.PlanCounts))
	for plan, breakdown := range summary.PlanCounts {
		planCounts[plan] = planBreakdownResponse(breakdown)
	}

	return ctx.JSON(http.StatusOK, metricsSummaryResponse{
		From:               summary.From,
		To:                 summary.To,
		StatusCounts:       summary.StatusCounts,
		PlanCounts:         planCounts,
		RevenueCents:       summary.RevenueCents,
		AvgOrderCents:      summary.AvgOrderCents,
		CompletedCount:     summary.CompletedCount,
		OnTimeRate:         summary.OnTimeRate,
		CheckpointVerdicts: summary.CheckpointVerdicts,
		ActiveRoutes:       summary.ActiveRoutes,
		AvgDensityScore:    summary.AvgDensityScore,
	})
}

// optionalUUIDField parses an optional UUID request field; empty means
// absent.
func optionalUUIDField(raw string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// intQueryParam parses an optional integer query parameter.
func intQueryParam(ctx echo.Context, name string, fallback int) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// timeQueryParam parses an optional RFC 3339 query parameter; a missing
// parameter yields the zero time.
func timeQueryParam(ctx echo.Context, name string) (time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
