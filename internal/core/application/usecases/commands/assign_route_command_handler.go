package commands

import (
	"context"
	"errors"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/eventlog"
	"herdshare/internal/core/domain/model/geo"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/core/domain/services"
	"herdshare/internal/pkg/errs"
)

// ErrNoClusterForAllocation is returned when the allocation's shipping ZIP is
// missing or matches no active cluster, so no route can serve it.
var ErrNoClusterForAllocation = errors.New("no active cluster serves the allocation's shipping zip")

// AssignRouteCommandHandler books an allocation onto the active route serving
// its cluster on the requested drop date, creating the route when none
// exists.
//
// The route's committed volume is maintained by an additive increment rather
// than a recomputation, so two concurrent bookings both land but the stored
// volume may drift from the exact sum under rare interleavings.
type AssignRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	planner    services.RoutePlanner
}

// NewAssignRouteCommandHandler creates a handler for route assignment.
func NewAssignRouteCommandHandler(uowFactory RouteUoWFactory) AssignRouteCommandHandler {
	return AssignRouteCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewRoutePlanner(),
	}
}

// Handle processes the route assignment command.
func (h *AssignRouteCommandHandler) Handle(ctx context.Context, cmd AssignRouteCommand) error {
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

	cluster, err := h.resolveCluster(ctx, uow, intent)
	if err != nil {
		return err
	}

	route, err := h.findOrCreateRoute(ctx, uow, cluster, cmd)
	if err != nil {
		return err
	}

	if err = uow.RouteRepository().AddVolume(ctx, route.ID(), intent.BoxedWeightLbs()); err != nil {
		return err
	}

	if err = intent.AssignRoute(route.ID()); err != nil {
		return err
	}

	if err = uow.AllocationRepository().Update(ctx, intent); err != nil {
		return err
	}

	allocationID := intent.ID()
	actorID := cmd.ActorID()
	entry, err := eventlog.NewEntry(
		kernel.NewUUID(), &actorID, cmd.ActorRole(),
		"allocation", allocationID, "route_assigned",
		map[string]any{
			"routeId":  route.ID().String(),
			"dropDate": cmd.DropDate().Format("2006-01-02"),
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

func (h *AssignRouteCommandHandler) resolveCluster(
	ctx context.Context,
	uow RouteUoW,
	intent *allocation.AllocationIntent,
) (*geo.Cluster, error) {
	address := intent.ShippingAddress()
	if address == nil || address.Zip == "" {
		return nil, ErrNoClusterForAllocation
	}

	zip, err := kernel.NewZipCode(address.Zip)
	if err != nil {
		return nil, err
	}

	clusters, err := uow.ClusterRepository().GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	cluster := h.planner.ResolveCluster(zip, clusters)
	if cluster == nil {
		return nil, ErrNoClusterForAllocation
	}
	return cluster, nil
}

func (h *AssignRouteCommandHandler) findOrCreateRoute(
	ctx context.Context,
	uow RouteUoW,
	cluster *geo.Cluster,
	cmd AssignRouteCommand,
) (*geo.Route, error) {
	route, err := uow.RouteRepository().GetActiveByClusterAndDate(ctx, cluster.ID(), cmd.DropDate())
	if err == nil {
		return route, nil
	}

	var notFound *errs.ObjectNotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	route, err = geo.NewRoute(kernel.NewUUID(), cluster.ID(), cluster.Region(), cmd.DropDate())
	if err != nil {
		return nil, err
	}

	if err = uow.RouteRepository().Add(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}
