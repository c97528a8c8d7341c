package commands

import (
	"context"

	"herdshare/internal/core/domain/model/compliance"
	"herdshare/internal/core/domain/model/eventlog"
	"herdshare/internal/core/domain/model/kernel"
)

// RecordCheckpointCommandHandler appends compliance checkpoints to an
// allocation's trail. The allocation is loaded first so a checkpoint can
// never reference a missing allocation.
type RecordCheckpointCommandHandler struct {
	uowFactory CheckpointUoWFactory
}

// NewRecordCheckpointCommandHandler creates a handler for checkpoint recording.
func NewRecordCheckpointCommandHandler(uowFactory CheckpointUoWFactory) RecordCheckpointCommandHandler {
	return RecordCheckpointCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the checkpoint command. Checkpoints are append-only;
// a correction is a new checkpoint, never an update.
func (h *RecordCheckpointCommandHandler) Handle(ctx context.Context, cmd RecordCheckpointCommand) error {
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

	checkpoint, err := compliance.NewCheckpoint(
		cmd.CheckpointID(),
		intent.ID(),
		cmd.Kind(),
		cmd.Verdict(),
		cmd.ValueCelsius(),
		cmd.DocumentRef(),
		cmd.Notes(),
		cmd.ActorID(),
	)
	if err != nil {
		return err
	}

	if err = uow.CheckpointRepository().Add(ctx, checkpoint); err != nil {
		return err
	}

	allocationID := intent.ID()
	actorID := cmd.ActorID()
	entry, err := eventlog.NewEntry(
		kernel.NewUUID(), &actorID, cmd.ActorRole(),
		"checkpoint", checkpoint.ID(), "checkpoint_recorded",
		map[string]any{
			"type":    cmd.Kind().String(),
			"verdict": cmd.Verdict().String(),
		},
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
