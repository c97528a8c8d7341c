package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"herdshare/internal/core/application/usecases/commands"
	"herdshare/internal/core/application/usecases/queries"
	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
)

type createAllocationRequest struct {
	Plan                     string                      `json:"plan"`
	WindowStart              time.Time                   `json:"windowStart"`
	WindowEnd                time.Time                   `json:"windowEnd"`
	HangingWeightLbs         float64                     `json:"hangingWeightLbs"`
	CutsPreferences          map[string]string           `json:"cutsPreferences"`
	StorageCapacityConfirmed bool                        `json:"storageCapacityConfirmed"`
	ShippingAddress          *allocation.ShippingAddress `json:"shippingAddress"`
}

// CreateAllocation handles POST /api/v1/allocations - reserves a new share
// for the authenticated buyer. Pricing is computed and frozen here.
func (s *Server) CreateAllocation(ctx echo.Context) error {
	actor, ok := requestActor(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	var req createAllocationRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	plan, err := allocation.PlanFromString(req.Plan)
	if err != nil {
		return writeBadRequest(ctx, "Invalid plan: "+err.Error())
	}

	allocationID := kernel.NewUUID()
	cmd, err := commands.NewCreateAllocationCommand(
		allocationID,
		actor.ID(),
		plan,
		req.WindowStart,
		req.WindowEnd,
		req.HangingWeightLbs,
		req.CutsPreferences,
		req.StorageCapacityConfirmed,
		req.ShippingAddress,
	)
	if err != nil {
		return writeBadRequest(ctx, "Invalid allocation data: "+err.Error())
	}

	if handleErr := s.createAllocationHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": allocationID.String()})
}

// GetAllocations handles GET /api/v1/allocations - lists the authenticated
// buyer's allocations, optionally narrowed with ?status=.
func (s *Server) GetAllocations(ctx echo.Context) error {
	actor, ok := requestActor(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	var status *allocation.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := allocation.StatusFromString(raw)
		if err != nil {
			return writeBadRequest(ctx, "Invalid status: "+err.Error())
		}
		status = &parsed
	}

	query, err := queries.NewGetAllocationsQuery(actor.ID(), status)
	if err != nil {
		return writeBadRequest(ctx, "Invalid query: "+err.Error())
	}

	rows, err := s.getAllocationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toSummaryResponses(rows))
}

// GetAllocation handles GET /api/v1/allocations/:id - retrieves one
// allocation's full detail including checkpoints and the audit trail.
// Buyers only see their own allocations; admin and finance see any.
func (s *Server) GetAllocation(ctx echo.Context) error {
	actor, ok := requestActor(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	allocationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid allocation id")
	}

	query, err := queries.NewGetAllocationQuery(allocationID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid query: "+err.Error())
	}

	detail, err := s.getAllocationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	// Ownership is answered with 404, not 403, so ids stay unguessable.
	// Buyers see their own allocations, ranchers the ones assigned to them,
	// admin and finance see any.
	allowed := actor.Role().Satisfies(account.Finance) ||
		detail.BuyerID.IsEqual(actor.ID()) ||
		(detail.AssignedRancherID != nil && detail.AssignedRancherID.IsEqual(actor.ID()))
	if !allowed {
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "Allocation not found",
		})
	}

	return ctx.JSON(http.StatusOK, toDetailResponse(detail))
}

type startCheckoutRequest struct {
	AllocationID string `json:"allocationId"`
}

type startCheckoutResponse struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectUrl"`
}

// StartCheckout handles POST /api/v1/checkout/sessions - opens a hosted
// payment session for one of the buyer's draft allocations.
func (s *Server) StartCheckout(ctx echo.Context) error {
	actor, ok := requestActor(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	var req startCheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	allocationID, err := kernel.UUIDFromString(req.AllocationID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid allocation id")
	}

	cmd, err := commands.NewStartCheckoutCommand(allocationID, actor.ID())
	if err != nil {
		return writeBadRequest(ctx, "Invalid checkout data: "+err.Error())
	}

	session, err := s.startCheckoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, startCheckoutResponse{
		SessionID:   session.ID,
		RedirectURL: session.RedirectURL,
	})
}
