package services

import (
	"math"
	"time"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/pricing"
)

// processorFeeRate and processorFeeFixedCents model the payment processor's
// published fee (2.9% + 30 cents) for the display-only estimate.
const (
	processorFeeRate       = 0.029
	processorFeeFixedCents = 30
)

// PricingCalculator is a pure domain service that produces the itemized price
// breakdown frozen onto an allocation at creation time.
//
// Key business rules:
//   - A zero weight falls back to the plan's default hanging weight
//   - All money amounts are integer cents, rounded half away from zero
//   - taxAmount = round(preTax * taxRatePercent / 100)
//   - subtotal + processingTotal + logisticsTotal + taxAmount == total
//   - The processor fee estimate is display-only and excluded from the total
//
// Example usage:
//
//	calculator := NewPricingCalculator()
//	snapshot := calculator.Calculate(allocation.Quarter, 112,
//	    pricing.DefaultRate(allocation.Quarter), 25, 2.9)
//	// snapshot.Total is the amount to charge at checkout
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() PricingCalculator {
	return PricingCalculator{}
}

// Calculate produces the pricing snapshot for one allocation.
//
// Parameters:
//   - plan: the reserved share plan (must be valid)
//   - weightLbs: estimated hanging weight; zero means use the plan default
//   - rate: the plan's price card (stored config or hardcoded default)
//   - surchargePerLb: logistics surcharge in cents per pound from geo resolution
//   - taxRatePercent: sales tax percentage, zero for tax-exempt destinations
//
// The calculation is deterministic and cannot fail on a valid plan.
func (c PricingCalculator) Calculate(
	plan allocation.ProductPlan,
	weightLbs float64,
	rate pricing.PlanRate,
	surchargePerLb int64,
	taxRatePercent float64,
) allocation.PricingSnapshot {
	if weightLbs <= 0 {
		weightLbs = plan.DefaultWeightLbs()
	}

	subtotal := roundCents(float64(rate.BasePricePerLb) * weightLbs)
	processingTotal := roundCents(float64(rate.ProcessingFeePerLb) * weightLbs)
	logisticsTotal := roundCents(float64(surchargePerLb) * weightLbs)

	preTax := subtotal + processingTotal + logisticsTotal
	taxAmount := roundCents(float64(preTax) * taxRatePercent / 100)
	total := preTax + taxAmount

	return allocation.PricingSnapshot{
		BasePricePerLb:          rate.BasePricePerLb,
		ProcessingFeePerLb:      rate.ProcessingFeePerLb,
		LogisticsSurchargePerLb: surchargePerLb,
		EstimatedWeightLbs:      weightLbs,
		Subtotal:                subtotal,
		ProcessingTotal:         processingTotal,
		LogisticsTotal:          logisticsTotal,
		TaxRate:                 taxRatePercent,
		TaxAmount:               taxAmount,
		Total:                   total,
		ProcessorFeeEstimate:    roundCents(float64(total)*processorFeeRate + processorFeeFixedCents),
		CreatedAt:               time.Now().UTC(),
	}
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
