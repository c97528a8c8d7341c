package pricing

import (
	"errors"
	"fmt"
	"time"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"
)

// ErrConfigIsNotConstructed is returned when a Config was not created through
// the NewConfig factory method.
var ErrConfigIsNotConstructed = errors.New(
	"Config must be created via NewConfig constructor")

// PlanRate is one plan's price card: base price and processing fee in cents
// per pound, plus the acceptable hanging weight range.
type PlanRate struct {
	BasePricePerLb     int64
	ProcessingFeePerLb int64
	MinWeightLbs       float64
	MaxWeightLbs       float64
}

// defaultRates is the hardcoded price card used when no stored config covers
// the pricing moment.
func defaultRates() map[allocation.ProductPlan]PlanRate {
	return map[allocation.ProductPlan]PlanRate{
		allocation.Whole:   {BasePricePerLb: 650, ProcessingFeePerLb: 125, MinWeightLbs: 300, MaxWeightLbs: 700},
		allocation.Half:    {BasePricePerLb: 700, ProcessingFeePerLb: 125, MinWeightLbs: 150, MaxWeightLbs: 350},
		allocation.Quarter: {BasePricePerLb: 750, ProcessingFeePerLb: 125, MinWeightLbs: 75, MaxWeightLbs: 175},
		allocation.Custom:  {BasePricePerLb: 800, ProcessingFeePerLb: 150, MinWeightLbs: 25, MaxWeightLbs: 700},
	}
}

// DefaultRate returns the hardcoded fallback price card for a plan.
func DefaultRate(plan allocation.ProductPlan) PlanRate {
	return defaultRates()[plan]
}

// Config is a stored price card with an effective window. The most recently
// created active config whose window contains the pricing moment wins; when
// none does, the hardcoded defaults apply.
type Config struct {
	id             kernel.UUID
	rates          map[allocation.ProductPlan]PlanRate
	effectiveFrom  time.Time
	effectiveUntil *time.Time
	active         bool
	createdAt      time.Time

	isConstructed bool
}

// NewConfig creates an active pricing config. effectiveUntil of nil means
// open-ended. Every valid plan must have a rate with a positive base price.
func NewConfig(
	id kernel.UUID,
	rates map[allocation.ProductPlan]PlanRate,
	effectiveFrom time.Time,
	effectiveUntil *time.Time,
) (*Config, error) {
	c := &Config{
		effectiveUntil: effectiveUntil,
		active:         true,
		createdAt:      time.Now().UTC(),
		isConstructed:  true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setRates(rates),
		c.setEffectiveFrom(effectiveFrom),
	); err != nil {
		return nil, err
	}

	if effectiveUntil != nil && !effectiveUntil.After(effectiveFrom) {
		return nil, errs.NewValueIsInvalidErrorWithCause("effective window",
			fmt.Errorf("effective until %s is not after effective from %s",
				effectiveUntil, effectiveFrom))
	}
	return c, nil
}

// RestoreConfig reconstructs a Config from persistence.
func RestoreConfig(
	id kernel.UUID,
	rates map[allocation.ProductPlan]PlanRate,
	effectiveFrom time.Time,
	effectiveUntil *time.Time,
	active bool,
	createdAt time.Time,
) (*Config, error) {
	c, err := NewConfig(id, rates, effectiveFrom, effectiveUntil)
	if err != nil {
		return nil, err
	}
	c.active = active
	c.createdAt = createdAt
	return c, nil
}

// Validate ensures the Config was created through a constructor.
func (c *Config) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConfigIsNotConstructed
	}
	return nil
}

// ID returns the config's unique identifier.
func (c *Config) ID() kernel.UUID { return c.id }

// Rate returns the stored price card for a plan.
func (c *Config) Rate(plan allocation.ProductPlan) PlanRate {
	return c.rates[plan]
}

// EffectiveFrom returns the start of the effective window.
func (c *Config) EffectiveFrom() time.Time { return c.effectiveFrom }

// EffectiveUntil returns the end of the effective window, or nil if open-ended.
func (c *Config) EffectiveUntil() *time.Time { return c.effectiveUntil }

// IsActive reports whether the config participates in rate resolution.
func (c *Config) IsActive() bool { return c.active }

// CreatedAt returns the creation timestamp.
func (c *Config) CreatedAt() time.Time { return c.createdAt }

// Covers reports whether the config is active and its effective window
// contains the given moment.
func (c *Config) Covers(at time.Time) bool {
	if !c.active || at.Before(c.effectiveFrom) {
		return false
	}
	return c.effectiveUntil == nil || at.Before(*c.effectiveUntil)
}

func (c *Config) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Config) setRates(rates map[allocation.ProductPlan]PlanRate) error {
	if len(rates) == 0 {
		return errs.NewValueIsRequiredError("plan rates")
	}
	plans := []allocation.ProductPlan{
		allocation.Whole, allocation.Half, allocation.Quarter, allocation.Custom,
	}
	for _, plan := range plans {
		rate, ok := rates[plan]
		if !ok {
			return errs.NewValueIsInvalidErrorWithCause("plan rates",
				fmt.Errorf("missing rate for plan %s", plan))
		}
		if rate.BasePricePerLb <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("plan rates",
				fmt.Errorf("plan %s base price %d is not positive", plan, rate.BasePricePerLb))
		}
	}

	c.rates = make(map[allocation.ProductPlan]PlanRate, len(rates))
	for plan, rate := range rates {
		c.rates[plan] = rate
	}
	return nil
}

func (c *Config) setEffectiveFrom(from time.Time) error {
	if from.IsZero() {
		return errs.NewValueIsRequiredError("effective from")
	}
	c.effectiveFrom = from
	return nil
}
