package commands_test

import (
	"context"
	"errors"
	"time"

	"herdshare/internal/core/application/usecases/commands"
	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/commitment"
	"herdshare/internal/core/domain/model/compliance"
	"herdshare/internal/core/domain/model/eventlog"
	"herdshare/internal/core/domain/model/geo"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/core/domain/model/pricing"
	"herdshare/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockAllocationRepository struct{ mock.Mock }

func (m *MockAllocationRepository) Add(ctx context.Context, a *allocation.AllocationIntent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAllocationRepository) Update(ctx context.Context, a *allocation.AllocationIntent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAllocationRepository) Get(ctx context.Context, id kernel.UUID) (*allocation.AllocationIntent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*allocation.AllocationIntent), args.Error(1)
}

func (m *MockAllocationRepository) GetByCheckoutSession(ctx context.Context, sessionID string) (*allocation.AllocationIntent, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*allocation.AllocationIntent), args.Error(1)
}

func (m *MockAllocationRepository) GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*allocation.AllocationIntent, error) {
	args := m.Called(ctx, paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*allocation.AllocationIntent), args.Error(1)
}

type MockEventLogRepository struct{ mock.Mock }

func (m *MockEventLogRepository) Add(ctx context.Context, e *eventlog.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockClusterRepository struct{ mock.Mock }

func (m *MockClusterRepository) Add(_ context.Context, _ *geo.Cluster) error {
	return errors.New("not implemented in mock")
}

func (m *MockClusterRepository) Get(_ context.Context, _ kernel.UUID) (*geo.Cluster, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockClusterRepository) GetAllActive(ctx context.Context) ([]*geo.Cluster, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*geo.Cluster), args.Error(1)
}

type MockRouteRepository struct{ mock.Mock }

func (m *MockRouteRepository) Add(ctx context.Context, r *geo.Route) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRouteRepository) Get(_ context.Context, _ kernel.UUID) (*geo.Route, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockRouteRepository) GetActiveByClusterAndDate(ctx context.Context, clusterID kernel.UUID, dropDate time.Time) (*geo.Route, error) {
	args := m.Called(ctx, clusterID, dropDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Route), args.Error(1)
}

func (m *MockRouteRepository) GetAllActive(ctx context.Context) ([]*geo.Route, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*geo.Route), args.Error(1)
}

func (m *MockRouteRepository) AddVolume(ctx context.Context, routeID kernel.UUID, boxedWeightLbs float64) error {
	args := m.Called(ctx, routeID, boxedWeightLbs)
	return args.Error(0)
}

func (m *MockRouteRepository) UpdateDensity(ctx context.Context, routeID kernel.UUID, score float64) error {
	args := m.Called(ctx, routeID, score)
	return args.Error(0)
}

type MockPricingConfigRepository struct{ mock.Mock }

func (m *MockPricingConfigRepository) Add(_ context.Context, _ *pricing.Config) error {
	return errors.New("not implemented in mock")
}

func (m *MockPricingConfigRepository) GetCovering(ctx context.Context, at time.Time) (*pricing.Config, error) {
	args := m.Called(ctx, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Config), args.Error(1)
}

type MockCheckpointRepository struct{ mock.Mock }

func (m *MockCheckpointRepository) Add(ctx context.Context, c *compliance.Checkpoint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockCommitmentRepository struct{ mock.Mock }

func (m *MockCommitmentRepository) Add(ctx context.Context, c *commitment.Commitment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCommitmentRepository) Update(_ context.Context, _ *commitment.Commitment) error {
	return errors.New("not implemented in mock")
}

func (m *MockCommitmentRepository) Get(_ context.Context, _ kernel.UUID) (*commitment.Commitment, error) {
	return nil, errors.New("not implemented in mock")
}

// mockTx embeds transaction lifecycle expectations shared by every UoW mock.
type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockAllocationUoW struct{ mockTx }

func (m *MockAllocationUoW) AllocationRepository() ports.AllocationRepository {
	args := m.Called()
	return args.Get(0).(ports.AllocationRepository)
}

func (m *MockAllocationUoW) EventLogRepository() ports.EventLogRepository {
	args := m.Called()
	return args.Get(0).(ports.EventLogRepository)
}

type MockAllocationUoWFactory struct{ mock.Mock }

func (m *MockAllocationUoWFactory) Create() commands.AllocationUoW {
	args := m.Called()
	return args.Get(0).(commands.AllocationUoW)
}

type MockCreateAllocationUoW struct{ MockAllocationUoW }

func (m *MockCreateAllocationUoW) ClusterRepository() ports.ClusterRepository {
	args := m.Called()
	return args.Get(0).(ports.ClusterRepository)
}

func (m *MockCreateAllocationUoW) PricingConfigRepository() ports.PricingConfigRepository {
	args := m.Called()
	return args.Get(0).(ports.PricingConfigRepository)
}

type MockCreateAllocationUoWFactory struct{ mock.Mock }

func (m *MockCreateAllocationUoWFactory) Create() commands.CreateAllocationUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateAllocationUoW)
}

type MockCheckpointUoW struct{ MockAllocationUoW }

func (m *MockCheckpointUoW) CheckpointRepository() ports.CheckpointRepository {
	args := m.Called()
	return args.Get(0).(ports.CheckpointRepository)
}

type MockCheckpointUoWFactory struct{ mock.Mock }

func (m *MockCheckpointUoWFactory) Create() commands.CheckpointUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckpointUoW)
}

type MockRouteUoW struct{ MockAllocationUoW }

func (m *MockRouteUoW) ClusterRepository() ports.ClusterRepository {
	args := m.Called()
	return args.Get(0).(ports.ClusterRepository)
}

func (m *MockRouteUoW) RouteRepository() ports.RouteRepository {
	args := m.Called()
	return args.Get(0).(ports.RouteRepository)
}

type MockRouteUoWFactory struct{ mock.Mock }

func (m *MockRouteUoWFactory) Create() commands.RouteUoW {
	args := m.Called()
	return args.Get(0).(commands.RouteUoW)
}

type MockRouteDensityUoW struct{ mockTx }

func (m *MockRouteDensityUoW) RouteRepository() ports.RouteRepository {
	args := m.Called()
	return args.Get(0).(ports.RouteRepository)
}

type MockRouteDensityUoWFactory struct{ mock.Mock }

func (m *MockRouteDensityUoWFactory) Create() commands.RouteDensityUoW {
	args := m.Called()
	return args.Get(0).(commands.RouteDensityUoW)
}

type MockCommitmentUoW struct{ mockTx }

func (m *MockCommitmentUoW) CommitmentRepository() ports.CommitmentRepository {
	args := m.Called()
	return args.Get(0).(ports.CommitmentRepository)
}

func (m *MockCommitmentUoW) EventLogRepository() ports.EventLogRepository {
	args := m.Called()
	return args.Get(0).(ports.EventLogRepository)
}

type MockCommitmentUoWFactory struct{ mock.Mock }

func (m *MockCommitmentUoWFactory) Create() commands.CommitmentUoW {
	args := m.Called()
	return args.Get(0).(commands.CommitmentUoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, intent *allocation.AllocationIntent) (ports.CheckoutSession, error) {
	args := m.Called(ctx, intent)
	return args.Get(0).(ports.CheckoutSession), args.Error(1)
}

func (m *MockPaymentGateway) VerifySignature(payload []byte, signatureHeader string) error {
	args := m.Called(payload, signatureHeader)
	return args.Error(0)
}

// test fixtures shared across handler tests

func testWindow() (time.Time, time.Time) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 14)
}

func draftIntent(buyerID kernel.UUID) *allocation.AllocationIntent {
	start, end := testWindow()
	intent, err := allocation.NewAllocationIntent(
		kernel.NewUUID(), buyerID, allocation.Quarter, start, end, 112, nil, true,
		&allocation.ShippingAddress{Street: "12 Elm St", City: "Denver", State: "CO", Zip: "80202"})
	if err != nil {
		panic(err)
	}

	snapshot := allocation.PricingSnapshot{
		BasePricePerLb:          750,
		ProcessingFeePerLb:      125,
		LogisticsSurchargePerLb: 25,
		EstimatedWeightLbs:      112,
		Subtotal:                84000,
		ProcessingTotal:         14000,
		LogisticsTotal:          2800,
		TaxAmount:               0,
		Total:                   100800,
		ProcessorFeeEstimate:    2953,
		CreatedAt:               time.Now().UTC(),
	}
	if err := intent.SetPricingSnapshot(snapshot); err != nil {
		panic(err)
	}
	return intent
}

func checkoutIntent(buyerID kernel.UUID, sessionID string) *allocation.AllocationIntent {
	intent := draftIntent(buyerID)
	if err := intent.StartCheckout(sessionID); err != nil {
		panic(err)
	}
	return intent
}

func paidIntent(buyerID kernel.UUID, sessionID string) *allocation.AllocationIntent {
	intent := checkoutIntent(buyerID, sessionID)
	if err := intent.MarkPaid("pi_test_1"); err != nil {
		panic(err)
	}
	return intent
}
