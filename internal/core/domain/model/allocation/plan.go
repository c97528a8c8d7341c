package allocation

import (
	"fmt"

	"herdshare/internal/pkg/errs"
)

// ProductPlan identifies the share size a buyer reserves.
type ProductPlan int

const (
	// PlanUnknown represents an invalid or undefined plan.
	PlanUnknown ProductPlan = iota

	// Whole is a full animal share.
	Whole

	// Half is a half animal share.
	Half

	// Quarter is a quarter animal share.
	Quarter

	// Custom is a made-to-order cut sheet with its own pricing.
	Custom
)

func getPlanStrings() map[ProductPlan]string {
	return map[ProductPlan]string{
		PlanUnknown: "UNKNOWN",
		Whole:       "WHOLE",
		Half:        "HALF",
		Quarter:     "QUARTER",
		Custom:      "CUSTOM",
	}
}

func getValidPlanStrings() map[ProductPlan]string {
	//nolint:exhaustive // PlanUnknown is intentionally excluded as it's invalid
	return map[ProductPlan]string{
		Whole:   "WHOLE",
		Half:    "HALF",
		Quarter: "QUARTER",
		Custom:  "CUSTOM",
	}
}

// defaultWeights holds the estimated hanging weight assumed for a plan when
// the buyer does not supply one.
func defaultWeights() map[ProductPlan]float64 {
	return map[ProductPlan]float64{
		Whole:   450,
		Half:    225,
		Quarter: 112,
		Custom:  100,
	}
}

// PlanFromString parses the wire representation of a plan
// ("WHOLE", "HALF", "QUARTER", "CUSTOM").
func PlanFromString(s string) (ProductPlan, error) {
	for plan, str := range getValidPlanStrings() {
		if str == s {
			return plan, nil
		}
	}
	return PlanUnknown, errs.NewValueIsInvalidErrorWithCause("product plan",
		fmt.Errorf("%q is not a valid product plan", s))
}

// Validate checks the plan is one of the four valid values.
func (p ProductPlan) Validate() error {
	if _, ok := getValidPlanStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("product plan",
			fmt.Errorf("%d is not a valid product plan", p))
	}
	return nil
}

// String returns the wire name of the plan, or "UNKNOWN" for invalid values.
func (p ProductPlan) String() string {
	if str, ok := getPlanStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}

// DefaultWeightLbs returns the estimated hanging weight assumed for the plan
// when no weight is provided: WHOLE 450, HALF 225, QUARTER 112, CUSTOM 100.
func (p ProductPlan) DefaultWeightLbs() float64 {
	return defaultWeights()[p]
}
