// Package pricingrepo provides data transfer objects and mapping functions
// for stored price card persistence.
package pricingrepo

import (
	"encoding/json"
	"time"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/core/domain/model/pricing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConfigDTO represents the database structure for persisting pricing configs.
// The per-plan rates are stored as one JSONB document keyed by the plan's
// wire string.
type ConfigDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Rates          datatypes.JSON
	EffectiveFrom  time.Time
	EffectiveUntil *time.Time
	Active         bool `gorm:"index"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for pricing configs.
func (ConfigDTO) TableName() string {
	return "pricing_configs"
}

// planRateDTO mirrors pricing.PlanRate in the stored JSON document.
type planRateDTO struct {
	BasePricePerLb     int64   `json:"basePricePerLb"`
	ProcessingFeePerLb int64   `json:"processingFeePerLb"`
	MinWeightLbs       float64 `json:"minWeightLbs"`
	MaxWeightLbs       float64 `json:"maxWeightLbs"`
}

// fromDomain converts a pricing config to its database representation.
func fromDomain(config *pricing.Config) (ConfigDTO, error) {
	plans := []allocation.ProductPlan{
		allocation.Whole, allocation.Half, allocation.Quarter, allocation.Custom,
	}

	rates := make(map[string]planRateDTO, len(plans))
	for _, plan := range plans {
		rate := config.Rate(plan)
		rates[plan.String()] = planRateDTO{
			BasePricePerLb:     rate.BasePricePerLb,
			ProcessingFeePerLb: rate.ProcessingFeePerLb,
			MinWeightLbs:       rate.MinWeightLbs,
			MaxWeightLbs:       rate.MaxWeightLbs,
		}
	}

	raw, err := json.Marshal(rates)
	if err != nil {
		return ConfigDTO{}, err
	}

	return ConfigDTO{
		ID:             config.ID().Bytes(),
		Rates:          raw,
		EffectiveFrom:  config.EffectiveFrom(),
		EffectiveUntil: config.EffectiveUntil(),
		Active:         config.IsActive(),
		CreatedAt:      config.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to a pricing config.
func toDomain(dto ConfigDTO) (*pricing.Config, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var stored map[string]planRateDTO
	if err = json.Unmarshal(dto.Rates, &stored); err != nil {
		return nil, err
	}

	rates := make(map[allocation.ProductPlan]pricing.PlanRate, len(stored))
	for planName, rate := range stored {
		plan, planErr := allocation.PlanFromString(planName)
		if planErr != nil {
			return nil, planErr
		}
		rates[plan] = pricing.PlanRate{
			BasePricePerLb:     rate.BasePricePerLb,
			ProcessingFeePerLb: rate.ProcessingFeePerLb,
			MinWeightLbs:       rate.MinWeightLbs,
			MaxWeightLbs:       rate.MaxWeightLbs,
		}
	}

	return pricing.RestoreConfig(
		id,
		rates,
		dto.EffectiveFrom,
		dto.EffectiveUntil,
		dto.Active,
		dto.CreatedAt,
	)
}
