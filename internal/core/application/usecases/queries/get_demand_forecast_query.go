package queries

import (
	"errors"
	"time"

	"herdshare/internal/pkg/errs"
	"herdshare/internal/pkg/guard"
)

var (
	ErrGetDemandForecastQueryIsNotConstructed = errors.New(
		"GetDemandForecastQuery must be created via NewGetDemandForecastQuery constructor",
	)
)

// demandDefaultHorizon is the forward-looking window used when the caller
// does not supply one.
const demandDefaultHorizon = 90 * 24 * time.Hour

// GetDemandForecastQuery retrieves upcoming paid demand grouped by product
// plan, so ranchers can size their supply commitments. Demand covers
// allocations in an active fulfillment status whose delivery window starts
// within the horizon.
//
// Example:
//
//	query, err := NewGetDemandForecastQuery(0)
//	if err != nil {
//	    return err
//	}
//
//	demand, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve demand: %w", err)
//	}
type GetDemandForecastQuery struct {
	horizon time.Duration

	guard guard.ConstructorGuard
}

// NewGetDemandForecastQuery creates a demand forecast query. A non-positive
// horizon defaults to 90 days.
func NewGetDemandForecastQuery(horizon time.Duration) (GetDemandForecastQuery, error) {
	if horizon < 0 {
		return GetDemandForecastQuery{}, errs.NewValueIsInvalidError("horizon")
	}
	if horizon == 0 {
		horizon = demandDefaultHorizon
	}

	return GetDemandForecastQuery{
		horizon: horizon,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Horizon returns the forward-looking window.
func (q GetDemandForecastQuery) Horizon() time.Duration {
	return q.horizon
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDemandForecastQueryIsNotConstructed if validation fails.
func (q GetDemandForecastQuery) Validate() error {
	return q.guard.Validate(ErrGetDemandForecastQueryIsNotConstructed)
}

// DemandByPlan is one product plan's upcoming demand.
type DemandByPlan struct {
	Plan             string
	Count            int64
	HangingWeightLbs float64
}
