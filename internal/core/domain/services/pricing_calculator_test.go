package services_test

import (
	"testing"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/pricing"
	"herdshare/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestPricingCalculator_Calculate(t *testing.T) {
	calculator := services.NewPricingCalculator()

	t.Run("quarter share in a high density cluster", func(t *testing.T) {
		snapshot := calculator.Calculate(
			allocation.Quarter, 112,
			pricing.DefaultRate(allocation.Quarter), 25, 2.9)

		assert.Equal(t, int64(750), snapshot.BasePricePerLb)
		assert.Equal(t, int64(125), snapshot.ProcessingFeePerLb)
		assert.Equal(t, int64(25), snapshot.LogisticsSurchargePerLb)
		assert.Equal(t, float64(112), snapshot.EstimatedWeightLbs)
		assert.Equal(t, int64(84000), snapshot.Subtotal)
		assert.Equal(t, int64(14000), snapshot.ProcessingTotal)
		assert.Equal(t, int64(2800), snapshot.LogisticsTotal)
		assert.Equal(t, int64(2923), snapshot.TaxAmount)
		assert.Equal(t, int64(103723), snapshot.Total)
		assert.Equal(t, int64(3038), snapshot.ProcessorFeeEstimate)
	})

	t.Run("zero weight falls back to the plan default", func(t *testing.T) {
		snapshot := calculator.Calculate(
			allocation.Whole, 0,
			pricing.DefaultRate(allocation.Whole), 50, 0)

		assert.Equal(t, float64(450), snapshot.EstimatedWeightLbs)
		assert.Equal(t, int64(650*450), snapshot.Subtotal)
	})

	t.Run("components always sum to the total", func(t *testing.T) {
		cases := []struct {
			plan      allocation.ProductPlan
			weight    float64
			surcharge int64
			taxRate   float64
		}{
			{allocation.Whole, 0, 25, 2.9},
			{allocation.Half, 237.5, 50, 8.25},
			{allocation.Quarter, 112, 75, 0},
			{allocation.Custom, 63.3, 50, 4.712},
		}

		for _, tc := range cases {
			snapshot := calculator.Calculate(
				tc.plan, tc.weight, pricing.DefaultRate(tc.plan), tc.surcharge, tc.taxRate)

			sum := snapshot.Subtotal + snapshot.ProcessingTotal +
				snapshot.LogisticsTotal + snapshot.TaxAmount
			assert.Equal(t, snapshot.Total, sum,
				"plan %s weight %f", tc.plan, tc.weight)
		}
	})

	t.Run("zero tax rate yields zero tax", func(t *testing.T) {
		snapshot := calculator.Calculate(
			allocation.Half, 225, pricing.DefaultRate(allocation.Half), 50, 0)

		assert.Zero(t, snapshot.TaxAmount)
		assert.Equal(t, snapshot.Subtotal+snapshot.ProcessingTotal+snapshot.LogisticsTotal, snapshot.Total)
	})

	t.Run("processor fee estimate is excluded from the total", func(t *testing.T) {
		snapshot := calculator.Calculate(
			allocation.Custom, 100, pricing.DefaultRate(allocation.Custom), 50, 2.9)

		sum := snapshot.Subtotal + snapshot.ProcessingTotal +
			snapshot.LogisticsTotal + snapshot.TaxAmount
		assert.Equal(t, snapshot.Total, sum)
		assert.Positive(t, snapshot.ProcessorFeeEstimate)
	})

	t.Run("is deterministic apart from the timestamp", func(t *testing.T) {
		first := calculator.Calculate(
			allocation.Quarter, 112, pricing.DefaultRate(allocation.Quarter), 25, 2.9)
		second := calculator.Calculate(
			allocation.Quarter, 112, pricing.DefaultRate(allocation.Quarter), 25, 2.9)

		first.CreatedAt = second.CreatedAt
		assert.Equal(t, first, second)
	})
}
