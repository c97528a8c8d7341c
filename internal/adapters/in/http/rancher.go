package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"herdshare/internal/core/application/usecases/commands"
	"herdshare/internal/core/application/usecases/queries"
	"herdshare/internal/core/domain/model/kernel"
)

type rancherAssignmentsResponse struct {
	Assignments []allocationSummaryResponse `json:"assignments"`
	Demand      []demandResponse            `json:"demand"`
	Commitments []commitmentResponse        `json:"commitments"`
}

// GetRancherAssignments handles GET /api/v1/rancher/assignments - the rancher
// dashboard: active orders assigned to the rancher, upcoming demand by plan,
// and the rancher's own supply commitments.
func (s *Server) GetRancherAssignments(ctx echo.Context) error {
	actor, ok := requestActor(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	reqCtx := ctx.Request().Context()

	assignmentsQuery, err := queries.NewGetRancherAssignmentsQuery(actor.ID())
	if err != nil {
		return writeBadRequest(ctx, "Invalid query: "+err.Error())
	}
	assignments, err := s.getRancherAssignmentsHandler.Handle(reqCtx, assignmentsQuery)
	if err != nil {
		return writeError(ctx, err)
	}

	demandQuery, err := queries.NewGetDemandForecastQuery(0)
	if err != nil {
		return writeError(ctx, err)
	}
	demand, err := s.getDemandForecastHandler.Handle(reqCtx, demandQuery)
	if err != nil {
		return writeError(ctx, err)
	}

	commitmentsQuery, err := queries.NewGetCommitmentsQuery(actor.ID())
	if err != nil {
		return writeBadRequest(ctx, "Invalid query: "+err.Error())
	}
	commitments, err := s.getCommitmentsHandler.Handle(reqCtx, commitmentsQuery)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, rancherAssignmentsResponse{
		Assignments: toSummaryResponses(assignments),
		Demand:      toDemandResponses(demand),
		Commitments: toCommitmentResponses(commitments),
	})
}

type createCommitmentRequest struct {
	PeriodStart        time.Time `json:"periodStart"`
	PeriodEnd          time.Time `json:"periodEnd"`
	HeadCount          int       `json:"headCount"`
	EstimatedWeightLbs float64   `json:"estimatedWeightLbs"`
}

// CreateCommitment handles POST /api/v1/rancher/commitments - records the
// rancher's supply pledge for a delivery period.
func (s *Server) CreateCommitment(ctx echo.Context) error {
	actor, ok := requestActor(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	var req createCommitmentRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	commitmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateCommitmentCommand(
		commitmentID,
		actor.ID(),
		req.PeriodStart,
		req.PeriodEnd,
		req.HeadCount,
		req.EstimatedWeightLbs,
	)
	if err != nil {
		return writeBadRequest(ctx, "Invalid commitment data: "+err.Error())
	}

	if handleErr := s.createCommitmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": commitmentID.String()})
}
