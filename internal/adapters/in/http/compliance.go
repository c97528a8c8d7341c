package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"herdshare/internal/core/application/usecases/commands"
	"herdshare/internal/core/application/usecases/queries"
	"herdshare/internal/core/domain/model/compliance"
	"herdshare/internal/core/domain/model/kernel"
)

type recordCheckpointRequest struct {
	AllocationID string   `json:"allocationId"`
	Kind         string   `json:"kind"`
	Verdict      string   `json:"verdict"`
	ValueCelsius *float64 `json:"valueCelsius"`
	DocumentRef  string   `json:"documentRef"`
	Notes        string   `json:"notes"`
}

// RecordCheckpoint handles POST /api/v1/compliance/checkpoints - records a
// compliance checkpoint against an allocation.
func (s *Server) RecordCheckpoint(ctx echo.Context) error {
	actor, ok := requestActor(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	var req recordCheckpointRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "Invalid request body")
	}

	allocationID, err := kernel.UUIDFromString(req.AllocationID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid allocation id")
	}

	kind, err := compliance.CheckpointTypeFromString(req.Kind)
	if err != nil {
		return writeBadRequest(ctx, "Invalid checkpoint kind: "+err.Error())
	}

	verdict, err := compliance.VerdictFromString(req.Verdict)
	if err != nil {
		return writeBadRequest(ctx, "Invalid verdict: "+err.Error())
	}

	checkpointID := kernel.NewUUID()
	cmd, err := commands.NewRecordCheckpointCommand(
		checkpointID,
		allocationID,
		kind,
		verdict,
		req.ValueCelsius,
		req.DocumentRef,
		req.Notes,
		actor.ID(),
		actor.Role(),
	)
	if err != nil {
		return writeBadRequest(ctx, "Invalid checkpoint data: "+err.Error())
	}

	if handleErr := s.recordCheckpointHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": checkpointID.String()})
}

// GetCheckpoints handles GET /api/v1/compliance/checkpoints - lists the
// checkpoints recorded against one allocation, oldest first.
func (s *Server) GetCheckpoints(ctx echo.Context) error {
	allocationID, err := kernel.UUIDFromString(ctx.QueryParam("allocationId"))
	if err != nil {
		return writeBadRequest(ctx, "Invalid allocation id")
	}

	query, err := queries.NewGetCheckpointsQuery(allocationID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid query: "+err.Error())
	}

	rows, err := s.getCheckpointsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCheckpointResponses(rows))
}
