// Package http exposes the REST API. Handlers translate requests into
// commands and queries; all business rules stay behind the application layer.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"herdshare/internal/core/application/usecases/commands"
	"herdshare/internal/core/application/usecases/queries"
	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/ports"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createAllocationHandler    commands.CreateAllocationCommandHandler
	startCheckoutHandler       commands.StartCheckoutCommandHandler
	processPaymentEventHandler commands.ProcessPaymentEventCommandHandler
	updateStatusHandler        commands.UpdateAllocationStatusCommandHandler
	assignRouteHandler         commands.AssignRouteCommandHandler
	recordCheckpointHandler    commands.RecordCheckpointCommandHandler
	createCommitmentHandler    commands.CreateCommitmentCommandHandler

	// Query handlers
	getAllocationsHandler        queries.GetAllocationsQueryHandler
	getAllocationHandler         queries.GetAllocationQueryHandler
	getCheckpointsHandler        queries.GetCheckpointsQueryHandler
	getAdminAllocationsHandler   queries.GetAdminAllocationsQueryHandler
	getRancherAssignmentsHandler queries.GetRancherAssignmentsQueryHandler
	getCommitmentsHandler        queries.GetCommitmentsQueryHandler
	getDemandForecastHandler     queries.GetDemandForecastQueryHandler
	getMetricsSummaryHandler     queries.GetMetricsSummaryQueryHandler

	// Outbound ports consumed directly by the transport layer
	gateway  ports.PaymentGateway
	identity ports.IdentityProvider
}

// Handlers bundles the application handlers the server dispatches to.
type Handlers struct {
	CreateAllocation    commands.CreateAllocationCommandHandler
	StartCheckout       commands.StartCheckoutCommandHandler
	ProcessPaymentEvent commands.ProcessPaymentEventCommandHandler
	UpdateStatus        commands.UpdateAllocationStatusCommandHandler
	AssignRoute         commands.AssignRouteCommandHandler
	RecordCheckpoint    commands.RecordCheckpointCommandHandler
	CreateCommitment    commands.CreateCommitmentCommandHandler

	GetAllocations        queries.GetAllocationsQueryHandler
	GetAllocation         queries.GetAllocationQueryHandler
	GetCheckpoints        queries.GetCheckpointsQueryHandler
	GetAdminAllocations   queries.GetAdminAllocationsQueryHandler
	GetRancherAssignments queries.GetRancherAssignmentsQueryHandler
	GetCommitments        queries.GetCommitmentsQueryHandler
	GetDemandForecast     queries.GetDemandForecastQueryHandler
	GetMetricsSummary     queries.GetMetricsSummaryQueryHandler
}

// NewServer creates an HTTP server dispatching to the given handlers.
// The payment gateway verifies webhook signatures; the identity provider
// backs the authentication middleware.
func NewServer(handlers Handlers, gateway ports.PaymentGateway, identity ports.IdentityProvider) *Server {
	return &Server{
		createAllocationHandler:    handlers.CreateAllocation,
		startCheckoutHandler:       handlers.StartCheckout,
		processPaymentEventHandler: handlers.ProcessPaymentEvent,
		updateStatusHandler:        handlers.UpdateStatus,
		assignRouteHandler:         handlers.AssignRoute,
		recordCheckpointHandler:    handlers.RecordCheckpoint,
		createCommitmentHandler:    handlers.CreateCommitment,

		getAllocationsHandler:        handlers.GetAllocations,
		getAllocationHandler:         handlers.GetAllocation,
		getCheckpointsHandler:        handlers.GetCheckpoints,
		getAdminAllocationsHandler:   handlers.GetAdminAllocations,
		getRancherAssignmentsHandler: handlers.GetRancherAssignments,
		getCommitmentsHandler:        handlers.GetCommitments,
		getDemandForecastHandler:     handlers.GetDemandForecast,
		getMetricsSummaryHandler:     handlers.GetMetricsSummary,

		gateway:  gateway,
		identity: identity,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance. The payment
// webhook and the health check are the only unauthenticated routes.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/webhooks/payment", s.PaymentWebhook)

	authed := api.Group("", s.authenticate)
	authed.POST("/allocations", s.CreateAllocation)
	authed.GET("/allocations", s.GetAllocations)
	authed.GET("/allocations/:id", s.GetAllocation)
	authed.POST("/checkout/sessions", s.StartCheckout)

	authed.GET("/admin/allocations", s.GetAdminAllocations,
		requireRoles(account.Admin, account.Finance))
	authed.PATCH("/admin/allocations/:id/status", s.UpdateAllocationStatus,
		requireRoles(account.Admin))
	authed.POST("/admin/allocations/:id/route", s.AssignRoute,
		requireRoles(account.Admin))
	authed.GET("/admin/metrics/summary", s.GetMetricsSummary,
		requireRoles(account.Admin, account.Finance))

	authed.POST("/compliance/checkpoints", s.RecordCheckpoint,
		requireRoles(account.Admin, account.Rancher))
	authed.GET("/compliance/checkpoints", s.GetCheckpoints,
		requireRoles(account.Admin, account.Rancher, account.Finance))

	authed.GET("/rancher/assignments", s.GetRancherAssignments,
		requireRoles(account.Rancher, account.Admin))
	authed.POST("/rancher/commitments", s.CreateCommitment,
		requireRoles(account.Rancher))
}

// Health handles GET /health - liveness check.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
