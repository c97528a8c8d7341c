package queries

import (
	"context"
	"math"

	"gorm.io/gorm"
)

// GetMetricsSummaryQueryHandler computes dashboard metrics with aggregate
// SQL so the whole summary costs a handful of statements regardless of
// dataset size.
type GetMetricsSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetMetricsSummaryQueryHandler creates a handler for metrics queries.
// Requires a GORM database connection for query execution.
func NewGetMetricsSummaryQueryHandler(db *gorm.DB) GetMetricsSummaryQueryHandler {
	return GetMetricsSummaryQueryHandler{db: db}
}

// Handle executes the aggregate queries and assembles the summary.
func (h GetMetricsSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetMetricsSummaryQuery,
) (MetricsSummary, error) {
	if err := query.Validate(); err != nil {
		return MetricsSummary{}, err
	}

	summary := MetricsSummary{
		From:               query.From(),
		To:                 query.To(),
		StatusCounts:       make(map[string]int64),
		PlanCounts:         make(map[string]PlanBreakdown),
		CheckpointVerdicts: make(map[string]int64),
	}

	if err := h.loadStatusCounts(ctx, query, &summary); err != nil {
		return MetricsSummary{}, err
	}
	if err := h.loadPlanCounts(ctx, query, &summary); err != nil {
		return MetricsSummary{}, err
	}
	if err := h.loadRevenue(ctx, query, &summary); err != nil {
		return MetricsSummary{}, err
	}
	if err := h.loadPunctuality(ctx, query, &summary); err != nil {
		return MetricsSummary{}, err
	}
	if err := h.loadCheckpointVerdicts(ctx, query, &summary); err != nil {
		return MetricsSummary{}, err
	}
	if err := h.loadRouteStats(ctx, &summary); err != nil {
		return MetricsSummary{}, err
	}

	return summary, nil
}

func (h GetMetricsSummaryQueryHandler) loadStatusCounts(
	ctx context.Context, query GetMetricsSummaryQuery, summary *MetricsSummary,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM allocations
		WHERE created_at >= ? AND created_at < ?
		GROUP BY status
	`, query.From(), query.To()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err = rows.Scan(&status, &count); err != nil {
			return err
		}
		summary.StatusCounts[status] = count
	}
	return rows.Err()
}

func (h GetMetricsSummaryQueryHandler) loadPlanCounts(
	ctx context.Context, query GetMetricsSummaryQuery, summary *MetricsSummary,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			plan,
			COUNT(*),
			COALESCE(SUM(hanging_weight_lbs), 0),
			COALESCE(SUM(boxed_weight_lbs), 0)
		FROM allocations
		WHERE created_at >= ? AND created_at < ?
		GROUP BY plan
	`, query.From(), query.To()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var plan string
		var breakdown PlanBreakdown
		if err = rows.Scan(&plan, &breakdown.Count,
			&breakdown.HangingWeightLbs, &breakdown.BoxedWeightLbs); err != nil {
			return err
		}
		summary.PlanCounts[plan] = breakdown
	}
	return rows.Err()
}

func (h GetMetricsSummaryQueryHandler) loadRevenue(
	ctx context.Context, query GetMetricsSummaryQuery, summary *MetricsSummary,
) error {
	var revenue struct {
		Total int64
		Paid  int64
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM((pricing_snapshot->>'total')::bigint), 0) AS total,
			COUNT(*) AS paid
		FROM allocations
		WHERE created_at >= ? AND created_at < ?
		  AND status IN ('PAID', 'SCHEDULED', 'PROCESSING', 'SHIPPED', 'COMPLETED')
	`, query.From(), query.To()).Scan(&revenue).Error
	if err != nil {
		return err
	}

	summary.RevenueCents = revenue.Total
	if revenue.Paid > 0 {
		summary.AvgOrderCents = int64(math.Round(float64(revenue.Total) / float64(revenue.Paid)))
	}
	return nil
}

func (h GetMetricsSummaryQueryHandler) loadPunctuality(
	ctx context.Context, query GetMetricsSummaryQuery, summary *MetricsSummary,
) error {
	var punctuality struct {
		Completed int64
		OnTime    int64
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS completed,
			COUNT(*) FILTER (WHERE delivered_at <= window_end) AS on_time
		FROM allocations
		WHERE created_at >= ? AND created_at < ?
		  AND status = 'COMPLETED'
	`, query.From(), query.To()).Scan(&punctuality).Error
	if err != nil {
		return err
	}

	summary.CompletedCount = punctuality.Completed
	if punctuality.Completed > 0 {
		summary.OnTimeRate = float64(punctuality.OnTime) / float64(punctuality.Completed)
	}
	return nil
}

func (h GetMetricsSummaryQueryHandler) loadCheckpointVerdicts(
	ctx context.Context, query GetMetricsSummaryQuery, summary *MetricsSummary,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT verdict, COUNT(*)
		FROM checkpoints
		WHERE recorded_at >= ? AND recorded_at < ?
		GROUP BY verdict
	`, query.From(), query.To()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var verdict string
		var count int64
		if err = rows.Scan(&verdict, &count); err != nil {
			return err
		}
		summary.CheckpointVerdicts[verdict] = count
	}
	return rows.Err()
}

func (h GetMetricsSummaryQueryHandler) loadRouteStats(
	ctx context.Context, summary *MetricsSummary,
) error {
	var routes struct {
		Active     int64
		AvgDensity float64
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS active,
			COALESCE(AVG(density_score), 0) AS avg_density
		FROM routes
		WHERE active
	`).Scan(&routes).Error
	if err != nil {
		return err
	}

	summary.ActiveRoutes = routes.Active
	summary.AvgDensityScore = routes.AvgDensity
	return nil
}
