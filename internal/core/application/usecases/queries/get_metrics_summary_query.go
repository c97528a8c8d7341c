package queries

import (
	"errors"
	"time"

	"herdshare/internal/pkg/errs"
	"herdshare/internal/pkg/guard"
)

var (
	ErrGetMetricsSummaryQueryIsNotConstructed = errors.New(
		"GetMetricsSummaryQuery must be created via NewGetMetricsSummaryQuery constructor",
	)
)

// metricsDefaultRange is the trailing window used when the caller does not
// supply explicit bounds.
const metricsDefaultRange = 30 * 24 * time.Hour

// GetMetricsSummaryQuery retrieves the operational metrics shown on the
// admin dashboard over a date range: allocation counts by status and plan,
// realized revenue, delivery punctuality, checkpoint verdicts and route
// utilization. The range defaults to the trailing 30 days.
//
// Example:
//
//	query, err := NewGetMetricsSummaryQuery(time.Time{}, time.Time{})
//	if err != nil {
//	    return err
//	}
//
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve metrics: %w", err)
//	}
//
//	fmt.Printf("Revenue: $%.2f, on-time: %.0f%%\n",
//	    float64(summary.RevenueCents)/100, summary.OnTimeRate*100)
type GetMetricsSummaryQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetMetricsSummaryQuery creates a query for the metrics summary over
// [from, to). Zero values default to the trailing 30 days ending now.
func NewGetMetricsSummaryQuery(from, to time.Time) (GetMetricsSummaryQuery, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.Add(-metricsDefaultRange)
	}
	if !from.Before(to) {
		return GetMetricsSummaryQuery{}, errs.NewValueIsInvalidError("date range")
	}

	return GetMetricsSummaryQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// From returns the inclusive start of the reporting range.
func (q GetMetricsSummaryQuery) From() time.Time {
	return q.from
}

// To returns the exclusive end of the reporting range.
func (q GetMetricsSummaryQuery) To() time.Time {
	return q.to
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetMetricsSummaryQueryIsNotConstructed if validation fails.
func (q GetMetricsSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetMetricsSummaryQueryIsNotConstructed)
}

// PlanBreakdown aggregates one product plan's share of the range.
type PlanBreakdown struct {
	Count            int64
	HangingWeightLbs float64
	BoxedWeightLbs   float64
}

// MetricsSummary aggregates operational health indicators over the
// reporting range. Allocations are bucketed by creation time.
//
// RevenueCents sums the frozen snapshot totals of every allocation that
// reached PAID or a later fulfillment status; AvgOrderCents is the mean of
// the same set. OnTimeRate is the fraction of completed deliveries stamped
// on or before their window end; it is zero when nothing has been completed.
type MetricsSummary struct {
	From               time.Time
	To                 time.Time
	StatusCounts       map[string]int64
	PlanCounts         map[string]PlanBreakdown
	RevenueCents       int64
	AvgOrderCents      int64
	CompletedCount     int64
	OnTimeRate         float64
	CheckpointVerdicts map[string]int64
	ActiveRoutes       int64
	AvgDensityScore    float64
}
