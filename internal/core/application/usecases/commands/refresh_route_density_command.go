package commands

import (
	"context"
)

// RefreshRouteDensityCommandHandler recomputes and stores the density score
// of every active route. Invoked periodically by the background job; the
// score is a dashboard heuristic, so staleness between runs is acceptable.
type RefreshRouteDensityCommandHandler struct {
	uowFactory RouteDensityUoWFactory
}

// NewRefreshRouteDensityCommandHandler creates a handler for density refresh.
func NewRefreshRouteDensityCommandHandler(uowFactory RouteDensityUoWFactory) RefreshRouteDensityCommandHandler {
	return RefreshRouteDensityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle recomputes density for all active routes in one transaction and
// returns the number of routes refreshed.
func (h *RefreshRouteDensityCommandHandler) Handle(ctx context.Context) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routes, err := uow.RouteRepository().GetAllActive(ctx)
	if err != nil {
		return 0, err
	}

	for _, route := range routes {
		score := route.RecomputeDensity()
		if err = uow.RouteRepository().UpdateDensity(ctx, route.ID(), score); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(routes), nil
}
