package commands

import (
	"context"

	"herdshare/internal/core/domain/model/eventlog"
	"herdshare/internal/core/domain/model/kernel"
)

// UpdateAllocationStatusCommandHandler applies operator-driven status
// transitions. The aggregate enforces the adjacency table, so an illegal
// request surfaces as a StatusTransitionError carrying the allowed moves.
type UpdateAllocationStatusCommandHandler struct {
	uowFactory AllocationUoWFactory
}

// NewUpdateAllocationStatusCommandHandler creates a handler for operator
// status changes.
func NewUpdateAllocationStatusCommandHandler(uowFactory AllocationUoWFactory) UpdateAllocationStatusCommandHandler {
	return UpdateAllocationStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command.
// The read-check-write is not serialized against concurrent changes to the
// same allocation; the last committed transition wins.
func (h *UpdateAllocationStatusCommandHandler) Handle(ctx context.Context, cmd UpdateAllocationStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	intent, err := uow.AllocationRepository().Get(ctx, cmd.AllocationID())
	if err != nil {
		return err
	}

	fromStatus := intent.Status()
	if err = intent.TransitionTo(cmd.TargetStatus()); err != nil {
		return err
	}

	payload := map[string]any{
		"from": fromStatus.String(),
		"to":   cmd.TargetStatus().String(),
	}
	if cmd.RancherID() != nil {
		if err = intent.AssignRancher(*cmd.RancherID()); err != nil {
			return err
		}
		payload["rancherId"] = cmd.RancherID().String()
	}
	if cmd.ProcessorID() != nil {
		if err = intent.AssignProcessor(*cmd.ProcessorID()); err != nil {
			return err
		}
		payload["processorId"] = cmd.ProcessorID().String()
	}
	if cmd.Notes() != "" {
		payload["notes"] = cmd.Notes()
	}

	if err = uow.AllocationRepository().Update(ctx, intent); err != nil {
		return err
	}

	allocationID := intent.ID()
	actorID := cmd.ActorID()
	entry, err := eventlog.NewEntry(
		kernel.NewUUID(), &actorID, cmd.ActorRole(),
		"allocation", allocationID, "status_changed",
		payload,
		&allocationID,
	)
	if err != nil {
		return err
	}

	if err = uow.EventLogRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
