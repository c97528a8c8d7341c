package commands_test

import (
	"testing"

	"herdshare/internal/core/application/usecases/commands"
	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/domain/model/compliance"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordCheckpointCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	intent := paidIntent(kernel.NewUUID(), "cs_test_1")
	temp := -1.5
	cmd, err := commands.NewRecordCheckpointCommand(
		kernel.NewUUID(), intent.ID(),
		compliance.TempAtPickup, compliance.Pass,
		&temp, "", "reefer unit 2", kernel.NewUUID(), account.Rancher)
	require.NoError(t, err)

	allocationRepo := new(MockAllocationRepository)
	checkpointRepo := new(MockCheckpointRepository)
	eventRepo := new(MockEventLogRepository)
	uow := new(MockCheckpointUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AllocationRepository").Return(allocationRepo).Once(),
		allocationRepo.On("Get", mock.Anything, intent.ID()).Return(intent, nil).Once(),
		uow.On("CheckpointRepository").Return(checkpointRepo).Once(),
		checkpointRepo.On("Add", mock.Anything, mock.AnythingOfType("*compliance.Checkpoint")).Return(nil).Once(),
		uow.On("EventLogRepository").Return(eventRepo).Once(),
		eventRepo.On("Add", mock.Anything, mock.AnythingOfType("*eventlog.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckpointUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordCheckpointCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	checkpointRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecordCheckpointCommandHandler_Handle_MissingAllocation(t *testing.T) {
	ctx := t.Context()
	allocationID := kernel.NewUUID()
	temp := -1.5
	cmd, err := commands.NewRecordCheckpointCommand(
		kernel.NewUUID(), allocationID,
		compliance.TempAtDelivery, compliance.Pass,
		&temp, "", "", kernel.NewUUID(), account.Admin)
	require.NoError(t, err)

	allocationRepo := new(MockAllocationRepository)
	uow := new(MockCheckpointUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AllocationRepository").Return(allocationRepo).Once(),
		allocationRepo.On("Get", mock.Anything, allocationID).
			Return(nil, errs.NewObjectNotFoundError("allocation", allocationID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckpointUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordCheckpointCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewRecordCheckpointCommand_RejectsInvalidInputs(t *testing.T) {
	_, err := commands.NewRecordCheckpointCommand(
		kernel.UUID{}, kernel.UUID{},
		compliance.CheckpointTypeUnknown, compliance.VerdictUnknown,
		nil, "", "", kernel.UUID{}, account.RoleUnknown)
	require.Error(t, err)
}
