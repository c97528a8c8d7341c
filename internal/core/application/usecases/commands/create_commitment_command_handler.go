package commands

import (
	"context"

	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/domain/model/commitment"
	"herdshare/internal/core/domain/model/eventlog"
	"herdshare/internal/core/domain/model/kernel"
)

// CreateCommitmentCommandHandler records a rancher's supply pledge.
type CreateCommitmentCommandHandler struct {
	uowFactory CommitmentUoWFactory
}

// NewCreateCommitmentCommandHandler creates a handler for supply pledges.
func NewCreateCommitmentCommandHandler(uowFactory CommitmentUoWFactory) CreateCommitmentCommandHandler {
	return CreateCommitmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the commitment command. New commitments start PLEDGED.
func (h *CreateCommitmentCommandHandler) Handle(ctx context.Context, cmd CreateCommitmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pledge, err := commitment.NewCommitment(
		cmd.CommitmentID(),
		cmd.RancherID(),
		cmd.PeriodStart(),
		cmd.PeriodEnd(),
		cmd.HeadCount(),
		cmd.EstimatedWeightLbs(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CommitmentRepository().Add(ctx, pledge); err != nil {
		return err
	}

	rancherID := pledge.RancherID()
	entry, err := eventlog.NewEntry(
		kernel.NewUUID(), &rancherID, account.Rancher,
		"commitment", pledge.ID(), "commitment_pledged",
		map[string]any{
			"headCount":          pledge.HeadCount(),
			"estimatedWeightLbs": pledge.EstimatedWeightLbs(),
		},
		nil,
	)
	if err != nil {
		return err
	}

	if err = uow.EventLogRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
