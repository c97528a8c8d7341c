package commands_test

import (
	"testing"

	"herdshare/internal/core/application/usecases/commands"
	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStartCheckoutCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	intent := draftIntent(buyerID)
	cmd, err := commands.NewStartCheckoutCommand(intent.ID(), buyerID)
	require.NoError(t, err)

	session := ports.CheckoutSession{ID: "cs_test_1", RedirectURL: "https://pay.example/cs_test_1"}

	repo := new(MockAllocationRepository)
	eventRepo := new(MockEventLogRepository)
	gateway := new(MockPaymentGateway)
	uow := new(MockAllocationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AllocationRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, intent.ID()).Return(intent, nil).Once(),
		gateway.On("CreateCheckoutSession", mock.Anything, intent).Return(session, nil).Once(),
		uow.On("AllocationRepository").Return(repo).Once(),
		repo.On("Update", mock.Anything, intent).Return(nil).Once(),
		uow.On("EventLogRepository").Return(eventRepo).Once(),
		eventRepo.On("Add", mock.Anything, mock.AnythingOfType("*eventlog.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartCheckoutCommandHandler(factory, gateway)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, session, got)
	assert.Equal(t, allocation.CheckoutStarted, intent.Status())
	assert.Equal(t, "cs_test_1", intent.CheckoutSessionID())
	gateway.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestStartCheckoutCommandHandler_Handle_NotOwner(t *testing.T) {
	ctx := t.Context()
	intent := draftIntent(kernel.NewUUID())
	cmd, err := commands.NewStartCheckoutCommand(intent.ID(), kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockAllocationRepository)
	gateway := new(MockPaymentGateway)
	uow := new(MockAllocationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AllocationRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, intent.ID()).Return(intent, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartCheckoutCommandHandler(factory, gateway)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNotAllocationOwner)
	gateway.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything)
	assert.Equal(t, allocation.Draft, intent.Status())
}

func TestStartCheckoutCommandHandler_Handle_UnpricedAllocation(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()

	start, end := testWindow()
	intent, err := allocation.NewAllocationIntent(
		kernel.NewUUID(), buyerID, allocation.Half, start, end, 0, nil, true, nil)
	require.NoError(t, err)

	cmd, err := commands.NewStartCheckoutCommand(intent.ID(), buyerID)
	require.NoError(t, err)

	session := ports.CheckoutSession{ID: "cs_test_1"}
	repo := new(MockAllocationRepository)
	gateway := new(MockPaymentGateway)
	uow := new(MockAllocationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AllocationRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, intent.ID()).Return(intent, nil).Once(),
		gateway.On("CreateCheckoutSession", mock.Anything, intent).Return(session, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewStartCheckoutCommandHandler(factory, gateway)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, allocation.ErrPricingNotCalculated)
}
