package commands_test

import (
	"errors"
	"testing"

	"herdshare/internal/core/application/usecases/commands"
	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/geo"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateAllocationCommand(t *testing.T, zip string) commands.CreateAllocationCommand {
	t.Helper()

	start, end := testWindow()
	var address *allocation.ShippingAddress
	if zip != "" {
		address = &allocation.ShippingAddress{Street: "12 Elm St", City: "Denver", State: "CO", Zip: zip}
	}

	cmd, err := commands.NewCreateAllocationCommand(
		kernel.NewUUID(), kernel.NewUUID(), allocation.Quarter,
		start, end, 112, nil, true, address)
	require.NoError(t, err)
	return cmd
}

func denverCluster(t *testing.T) *geo.Cluster {
	t.Helper()
	cluster, err := geo.NewCluster(
		kernel.NewUUID(), "Denver Metro", "CO Front Range",
		[]string{"800", "801", "802"}, 39.7392, -104.9903, 40, geo.High, 25)
	require.NoError(t, err)
	return cluster
}

func TestCreateAllocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateAllocationCommand(t, "80202")

	allocationRepo := new(MockAllocationRepository)
	clusterRepo := new(MockClusterRepository)
	pricingRepo := new(MockPricingConfigRepository)
	eventRepo := new(MockEventLogRepository)
	uow := new(MockCreateAllocationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClusterRepository").Return(clusterRepo).Once(),
		clusterRepo.On("GetAllActive", mock.Anything).Return([]*geo.Cluster{denverCluster(t)}, nil).Once(),
		uow.On("PricingConfigRepository").Return(pricingRepo).Once(),
		pricingRepo.On("GetCovering", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("pricing config", "now")).Once(),
		uow.On("AllocationRepository").Return(allocationRepo).Once(),
		allocationRepo.On("Add", mock.Anything, mock.AnythingOfType("*allocation.AllocationIntent")).
			Run(func(args mock.Arguments) {
				intent := args.Get(1).(*allocation.AllocationIntent)
				snapshot := intent.PricingSnapshot()
				require.False(t, snapshot.IsZero())
				require.Equal(t, int64(25), snapshot.LogisticsSurchargePerLb)
				require.Equal(t, int64(750), snapshot.BasePricePerLb)
			}).Return(nil).Once(),
		uow.On("EventLogRepository").Return(eventRepo).Once(),
		eventRepo.On("Add", mock.Anything, mock.AnythingOfType("*eventlog.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateAllocationCommandHandler(factory, 2.9)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	allocationRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateAllocationCommandHandler_Handle_UnmatchedZipFallsBack(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateAllocationCommand(t, "66101")

	allocationRepo := new(MockAllocationRepository)
	clusterRepo := new(MockClusterRepository)
	pricingRepo := new(MockPricingConfigRepository)
	eventRepo := new(MockEventLogRepository)
	uow := new(MockCreateAllocationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClusterRepository").Return(clusterRepo).Once(),
		clusterRepo.On("GetAllActive", mock.Anything).Return([]*geo.Cluster{denverCluster(t)}, nil).Once(),
		uow.On("PricingConfigRepository").Return(pricingRepo).Once(),
		pricingRepo.On("GetCovering", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("pricing config", "now")).Once(),
		uow.On("AllocationRepository").Return(allocationRepo).Once(),
		allocationRepo.On("Add", mock.Anything, mock.AnythingOfType("*allocation.AllocationIntent")).
			Run(func(args mock.Arguments) {
				intent := args.Get(1).(*allocation.AllocationIntent)
				require.Equal(t, int64(50), intent.PricingSnapshot().LogisticsSurchargePerLb)
			}).Return(nil).Once(),
		uow.On("EventLogRepository").Return(eventRepo).Once(),
		eventRepo.On("Add", mock.Anything, mock.AnythingOfType("*eventlog.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateAllocationCommandHandler(factory, 2.9)
	require.NoError(t, h.Handle(ctx, cmd))
	allocationRepo.AssertExpectations(t)
}

func TestCreateAllocationCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateAllocationCommand{} // not constructed properly
	factory := new(MockCreateAllocationUoWFactory)
	h := commands.NewCreateAllocationCommandHandler(factory, 2.9)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateAllocationCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateAllocationCommand(t, "80202")

	allocationRepo := new(MockAllocationRepository)
	clusterRepo := new(MockClusterRepository)
	pricingRepo := new(MockPricingConfigRepository)
	uow := new(MockCreateAllocationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ClusterRepository").Return(clusterRepo).Once(),
		clusterRepo.On("GetAllActive", mock.Anything).Return([]*geo.Cluster{}, nil).Once(),
		uow.On("PricingConfigRepository").Return(pricingRepo).Once(),
		pricingRepo.On("GetCovering", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("pricing config", "now")).Once(),
		uow.On("AllocationRepository").Return(allocationRepo).Once(),
		allocationRepo.On("Add", mock.Anything, mock.Anything).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateAllocationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateAllocationCommandHandler(factory, 2.9)
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}
