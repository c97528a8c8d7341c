package geo

import (
	"fmt"

	"herdshare/internal/pkg/errs"
)

// DensityTier classifies a geographic cluster by expected drop density.
// Denser areas are cheaper to serve per pound.
type DensityTier int

const (
	// TierUnknown represents an invalid or undefined tier.
	TierUnknown DensityTier = iota

	// High is a dense urban cluster.
	High

	// Medium is a suburban cluster. Also the fallback tier when no cluster
	// matches a buyer's ZIP.
	Medium

	// Low is a rural cluster.
	Low
)

func getTierStrings() map[DensityTier]string {
	return map[DensityTier]string{
		TierUnknown: "UNKNOWN",
		High:        "HIGH",
		Medium:      "MEDIUM",
		Low:         "LOW",
	}
}

func getValidTierStrings() map[DensityTier]string {
	//nolint:exhaustive // TierUnknown is intentionally excluded as it's invalid
	return map[DensityTier]string{
		High:   "HIGH",
		Medium: "MEDIUM",
		Low:    "LOW",
	}
}

// tierSurcharges holds the default per-pound logistics surcharge in cents
// for each tier. A cluster may override its own surcharge.
func tierSurcharges() map[DensityTier]int64 {
	return map[DensityTier]int64{
		High:   25,
		Medium: 50,
		Low:    75,
	}
}

// TierFromString parses the wire representation of a tier ("HIGH", "MEDIUM", "LOW").
func TierFromString(s string) (DensityTier, error) {
	for tier, str := range getValidTierStrings() {
		if str == s {
			return tier, nil
		}
	}
	return TierUnknown, errs.NewValueIsInvalidErrorWithCause("density tier",
		fmt.Errorf("%q is not a valid density tier", s))
}

// Validate checks the tier is one of the three valid values.
func (t DensityTier) Validate() error {
	if _, ok := getValidTierStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("density tier",
			fmt.Errorf("%d is not a valid density tier", t))
	}
	return nil
}

// String returns the wire name of the tier, or "UNKNOWN" for invalid values.
func (t DensityTier) String() string {
	if str, ok := getTierStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// DefaultSurchargePerLb returns the tier's default logistics surcharge in
// cents per pound: HIGH 25, MEDIUM 50, LOW 75.
func (t DensityTier) DefaultSurchargePerLb() int64 {
	return tierSurcharges()[t]
}

// FallbackSurchargePerLb is the surcharge applied when no active cluster
// matches the buyer's ZIP. It equals the MEDIUM tier default.
func FallbackSurchargePerLb() int64 {
	return Medium.DefaultSurchargePerLb()
}
