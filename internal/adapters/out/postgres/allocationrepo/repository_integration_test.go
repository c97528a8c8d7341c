package allocationrepo_test

import (
	"context"
	"testing"
	"time"

	"herdshare/internal/adapters/out/postgres/allocationrepo"
	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// AllocationRepositoryIntegrationTestSuite provides integration tests for
// AllocationRepository using PostgreSQL containers to verify database
// persistence behavior, including the JSONB sub-documents.
type AllocationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *allocationrepo.GormAllocationRepository
	tracker    *MockAggregateTracker
}

func (suite *AllocationRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&allocationrepo.AllocationDTO{}))
}

func (suite *AllocationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE allocations").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = allocationrepo.NewGormAllocationRepository(suite.db, suite.tracker)
}

func (suite *AllocationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AllocationRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsFullAggregate() {
	ctx := context.Background()
	intent := suite.createTestIntent()

	suite.Require().NoError(suite.repository.Add(ctx, intent))

	restored, err := suite.repository.Get(ctx, intent.ID())
	suite.Require().NoError(err)

	suite.True(restored.ID().IsEqual(intent.ID()))
	suite.True(restored.BuyerID().IsEqual(intent.BuyerID()))
	suite.Equal(allocation.Quarter, restored.Plan())
	suite.Equal(allocation.Draft, restored.Status())
	suite.InDelta(112.0, restored.HangingWeightLbs(), 0.001)
	suite.InDelta(67.2, restored.BoxedWeightLbs(), 0.001)
	suite.Equal(map[string]string{"ground": "extra lean"}, restored.CutsPreferences())
	suite.True(restored.StorageCapacityConfirmed())

	suite.Require().NotNil(restored.ShippingAddress())
	suite.Equal("80202", restored.ShippingAddress().Zip)

	suite.Equal(intent.PricingSnapshot().Total, restored.PricingSnapshot().Total)
	suite.Equal(intent.PricingSnapshot().BasePricePerLb, restored.PricingSnapshot().BasePricePerLb)
}

func (suite *AllocationRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndSession() {
	ctx := context.Background()
	intent := suite.createTestIntent()
	suite.Require().NoError(suite.repository.Add(ctx, intent))

	suite.Require().NoError(intent.StartCheckout("cs_integration_1"))
	suite.Require().NoError(suite.repository.Update(ctx, intent))

	restored, err := suite.repository.Get(ctx, intent.ID())
	suite.Require().NoError(err)
	suite.Equal(allocation.CheckoutStarted, restored.Status())
	suite.Equal("cs_integration_1", restored.CheckoutSessionID())
}

func (suite *AllocationRepositoryIntegrationTestSuite) TestUpdate_ClearsSessionOnExpiry() {
	ctx := context.Background()
	intent := suite.createTestIntent()
	suite.Require().NoError(intent.StartCheckout("cs_integration_2"))
	suite.Require().NoError(suite.repository.Add(ctx, intent))

	suite.Require().NoError(intent.ExpireCheckout())
	suite.Require().NoError(suite.repository.Update(ctx, intent))

	restored, err := suite.repository.Get(ctx, intent.ID())
	suite.Require().NoError(err)
	suite.Equal(allocation.Draft, restored.Status())
	suite.Empty(restored.CheckoutSessionID())
}

func (suite *AllocationRepositoryIntegrationTestSuite) TestGetByCheckoutSession() {
	ctx := context.Background()
	intent := suite.createTestIntent()
	suite.Require().NoError(intent.StartCheckout("cs_integration_3"))
	suite.Require().NoError(suite.repository.Add(ctx, intent))

	restored, err := suite.repository.GetByCheckoutSession(ctx, "cs_integration_3")
	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(intent.ID()))

	_, err = suite.repository.GetByCheckoutSession(ctx, "cs_missing")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AllocationRepositoryIntegrationTestSuite) TestGetByPaymentIntent() {
	ctx := context.Background()
	intent := suite.createTestIntent()
	suite.Require().NoError(intent.StartCheckout("cs_integration_4"))
	suite.Require().NoError(intent.MarkPaid("pi_integration_1"))
	suite.Require().NoError(suite.repository.Add(ctx, intent))

	restored, err := suite.repository.GetByPaymentIntent(ctx, "pi_integration_1")
	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(intent.ID()))

	_, err = suite.repository.GetByPaymentIntent(ctx, "pi_missing")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AllocationRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AllocationRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsError() {
	intent := suite.createTestIntent()
	err := suite.repository.Update(context.Background(), intent)
	suite.Require().Error(err)
}

func (suite *AllocationRepositoryIntegrationTestSuite) createTestIntent() *allocation.AllocationIntent {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	intent, err := allocation.NewAllocationIntent(
		kernel.NewUUID(),
		kernel.NewUUID(),
		allocation.Quarter,
		start,
		start.AddDate(0, 0, 14),
		112,
		map[string]string{"ground": "extra lean"},
		true,
		&allocation.ShippingAddress{
			Street: "1 Market St",
			City:   "Denver",
			State:  "CO",
			Zip:    "80202",
		},
	)
	suite.Require().NoError(err)

	suite.Require().NoError(intent.SetPricingSnapshot(allocation.PricingSnapshot{
		BasePricePerLb:          750,
		ProcessingFeePerLb:      125,
		LogisticsSurchargePerLb: 25,
		EstimatedWeightLbs:      112,
		Subtotal:                84000,
		ProcessingTotal:         14000,
		LogisticsTotal:          2800,
		TaxRate:                 2.9,
		TaxAmount:               2923,
		Total:                   103723,
		ProcessorFeeEstimate:    3038,
		CreatedAt:               start,
	}))

	return intent
}

func TestAllocationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AllocationRepositoryIntegrationTestSuite))
}
