package cmd

import (
	"herdshare/internal/adapters/out/identity"
	"herdshare/internal/adapters/out/payments"
	"herdshare/internal/adapters/out/postgres"
	"herdshare/internal/core/application/usecases/commands"
	"herdshare/internal/core/application/usecases/queries"
	"herdshare/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	taxRatePercent float64
	gateway        *payments.Gateway
	identity       *identity.JWTProvider
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	gateway, err := payments.NewGateway(payments.Config{
		BaseURL:       config.PaymentBaseURL,
		SecretKey:     config.PaymentSecretKey,
		WebhookSecret: config.PaymentWebhookSecret,
		SuccessURL:    config.PaymentSuccessURL,
		CancelURL:     config.PaymentCancelURL,
	})
	if err != nil {
		return CompositionRoot{}, err
	}

	provider, err := identity.NewJWTProvider(config.JWTSigningKey)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		taxRatePercent: config.TaxRatePercent,
		gateway:        gateway,
		identity:       provider,
	}, nil
}

func (c *CompositionRoot) PaymentGateway() ports.PaymentGateway {
	return c.gateway
}

func (c *CompositionRoot) IdentityProvider() ports.IdentityProvider {
	return c.identity
}

func (c *CompositionRoot) CreateCreateAllocationCommandHandler() commands.CreateAllocationCommandHandler {
	var f commands.CreateAllocationUoWFactory = FuncCreateAllocationUoWFactory(func() commands.CreateAllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateAllocationCommandHandler(f, c.taxRatePercent)
}

func (c *CompositionRoot) CreateStartCheckoutCommandHandler() commands.StartCheckoutCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartCheckoutCommandHandler(f, c.gateway)
}

func (c *CompositionRoot) CreateProcessPaymentEventCommandHandler() commands.ProcessPaymentEventCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessPaymentEventCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateAllocationStatusCommandHandler() commands.UpdateAllocationStatusCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateAllocationStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignRouteCommandHandler() commands.AssignRouteCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignRouteCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordCheckpointCommandHandler() commands.RecordCheckpointCommandHandler {
	var f commands.CheckpointUoWFactory = FuncCheckpointUoWFactory(func() commands.CheckpointUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordCheckpointCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCommitmentCommandHandler() commands.CreateCommitmentCommandHandler {
	var f commands.CommitmentUoWFactory = FuncCommitmentUoWFactory(func() commands.CommitmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCommitmentCommandHandler(f)
}

func (c *CompositionRoot) CreateRefreshRouteDensityCommandHandler() commands.RefreshRouteDensityCommandHandler {
	var f commands.RouteDensityUoWFactory = FuncRouteDensityUoWFactory(func() commands.RouteDensityUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefreshRouteDensityCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAllocationsQueryHandler() queries.GetAllocationsQueryHandler {
	return queries.NewGetAllocationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllocationQueryHandler() queries.GetAllocationQueryHandler {
	return queries.NewGetAllocationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCheckpointsQueryHandler() queries.GetCheckpointsQueryHandler {
	return queries.NewGetCheckpointsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAdminAllocationsQueryHandler() queries.GetAdminAllocationsQueryHandler {
	return queries.NewGetAdminAllocationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRancherAssignmentsQueryHandler() queries.GetRancherAssignmentsQueryHandler {
	return queries.NewGetRancherAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCommitmentsQueryHandler() queries.GetCommitmentsQueryHandler {
	return queries.NewGetCommitmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDemandForecastQueryHandler() queries.GetDemandForecastQueryHandler {
	return queries.NewGetDemandForecastQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMetricsSummaryQueryHandler() queries.GetMetricsSummaryQueryHandler {
	return queries.NewGetMetricsSummaryQueryHandler(c.gormDB)
}

type FuncCreateAllocationUoWFactory func() commands.CreateAllocationUoW

func (f FuncCreateAllocationUoWFactory) Create() commands.CreateAllocationUoW {
	return f()
}

type FuncAllocationUoWFactory func() commands.AllocationUoW

func (f FuncAllocationUoWFactory) Create() commands.AllocationUoW {
	return f()
}

type FuncCheckpointUoWFactory func() commands.CheckpointUoW

func (f FuncCheckpointUoWFactory) Create() commands.CheckpointUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncRouteDensityUoWFactory func() commands.RouteDensityUoW

func (f FuncRouteDensityUoWFactory) Create() commands.RouteDensityUoW {
	return f()
}

type FuncCommitmentUoWFactory func() commands.CommitmentUoW

func (f FuncCommitmentUoWFactory) Create() commands.CommitmentUoW {
	return f()
}
