package pricing_test

import (
	"testing"
	"time"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/core/domain/model/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRates() map[allocation.ProductPlan]pricing.PlanRate {
	return map[allocation.ProductPlan]pricing.PlanRate{
		allocation.Whole:   {BasePricePerLb: 675, ProcessingFeePerLb: 130, MinWeightLbs: 300, MaxWeightLbs: 700},
		allocation.Half:    {BasePricePerLb: 725, ProcessingFeePerLb: 130, MinWeightLbs: 150, MaxWeightLbs: 350},
		allocation.Quarter: {BasePricePerLb: 775, ProcessingFeePerLb: 130, MinWeightLbs: 75, MaxWeightLbs: 175},
		allocation.Custom:  {BasePricePerLb: 825, ProcessingFeePerLb: 155, MinWeightLbs: 25, MaxWeightLbs: 700},
	}
}

func TestDefaultRate(t *testing.T) {
	testCases := []struct {
		plan       allocation.ProductPlan
		base       int64
		processing int64
	}{
		{allocation.Whole, 650, 125},
		{allocation.Half, 700, 125},
		{allocation.Quarter, 750, 125},
		{allocation.Custom, 800, 150},
	}

	for _, tc := range testCases {
		rate := pricing.DefaultRate(tc.plan)
		assert.Equal(t, tc.base, rate.BasePricePerLb, "plan %s base", tc.plan)
		assert.Equal(t, tc.processing, rate.ProcessingFeePerLb, "plan %s processing", tc.plan)
	}
}

func TestNewConfig(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should create open-ended config", func(t *testing.T) {
		config, err := pricing.NewConfig(kernel.NewUUID(), fullRates(), from, nil)

		require.NoError(t, err)
		require.NoError(t, config.Validate())
		assert.True(t, config.IsActive())
		assert.Nil(t, config.EffectiveUntil())
		assert.Equal(t, int64(675), config.Rate(allocation.Whole).BasePricePerLb)
	})

	t.Run("should reject missing plan rate", func(t *testing.T) {
		rates := fullRates()
		delete(rates, allocation.Custom)

		_, err := pricing.NewConfig(kernel.NewUUID(), rates, from, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CUSTOM")
	})

	t.Run("should reject non-positive base price", func(t *testing.T) {
		rates := fullRates()
		rates[allocation.Half] = pricing.PlanRate{BasePricePerLb: 0, ProcessingFeePerLb: 125}

		_, err := pricing.NewConfig(kernel.NewUUID(), rates, from, nil)
		require.Error(t, err)
	})

	t.Run("should reject inverted window", func(t *testing.T) {
		until := from.AddDate(0, 0, -1)
		_, err := pricing.NewConfig(kernel.NewUUID(), fullRates(), from, &until)
		require.Error(t, err)
	})
}

func TestConfig_Covers(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	t.Run("bounded window", func(t *testing.T) {
		config, err := pricing.NewConfig(kernel.NewUUID(), fullRates(), from, &until)
		require.NoError(t, err)

		assert.False(t, config.Covers(from.Add(-time.Second)))
		assert.True(t, config.Covers(from))
		assert.True(t, config.Covers(from.AddDate(0, 3, 0)))
		assert.False(t, config.Covers(until))
	})

	t.Run("open-ended window", func(t *testing.T) {
		config, err := pricing.NewConfig(kernel.NewUUID(), fullRates(), from, nil)
		require.NoError(t, err)

		assert.True(t, config.Covers(from.AddDate(10, 0, 0)))
	})

	t.Run("inactive config covers nothing", func(t *testing.T) {
		config, err := pricing.RestoreConfig(
			kernel.NewUUID(), fullRates(), from, nil, false, from)
		require.NoError(t, err)

		assert.False(t, config.Covers(from.AddDate(0, 1, 0)))
	})
}
