package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetDemandForecastQueryHandler aggregates upcoming paid demand by plan.
type GetDemandForecastQueryHandler struct {
	db *gorm.DB
}

// NewGetDemandForecastQueryHandler creates a handler for demand forecast
// queries. Requires a GORM database connection.
func NewGetDemandForecastQueryHandler(db *gorm.DB) GetDemandForecastQueryHandler {
	return GetDemandForecastQueryHandler{db: db}
}

// Handle executes the query to aggregate upcoming demand by product plan.
// Plans with no upcoming demand are simply absent from the result.
func (h GetDemandForecastQueryHandler) Handle(
	ctx context.Context,
	query GetDemandForecastQuery,
) ([]DemandByPlan, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	until := now.Add(query.Horizon())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			plan,
			COUNT(*),
			COALESCE(SUM(hanging_weight_lbs), 0)
		FROM allocations
		WHERE status IN ('PAID', 'SCHEDULED', 'PROCESSING', 'SHIPPED')
		  AND window_start < ?
		GROUP BY plan
		ORDER BY plan
	`, until).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	demand := make([]DemandByPlan, 0)

	for rows.Next() {
		var row DemandByPlan
		if err = rows.Scan(&row.Plan, &row.Count, &row.HangingWeightLbs); err != nil {
			return nil, err
		}
		demand = append(demand, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return demand, nil
}
