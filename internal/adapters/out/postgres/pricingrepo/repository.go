package pricingrepo

import (
	"context"
	"errors"
	"time"

	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/core/domain/model/pricing"
	"herdshare/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPricingConfigRepository implements PricingConfigRepository using GORM.
type GormPricingConfigRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPricingConfigRepository creates a new GORM pricing config repository.
func NewGormPricingConfigRepository(db *gorm.DB, tracker aggregateTracker) *GormPricingConfigRepository {
	return &GormPricingConfigRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pricing config to the database.
func (r *GormPricingConfigRepository) Add(ctx context.Context, config *pricing.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(config)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(config.ID(), config)
	return nil
}

// GetCovering retrieves the most recently created active config whose
// effective window contains the given moment. The newest config wins when
// several windows overlap.
func (r *GormPricingConfigRepository) GetCovering(ctx context.Context, at time.Time) (*pricing.Config, error) {
	var dto ConfigDTO
	err := r.db.WithContext(ctx).
		Where("active = ? AND effective_from <= ? AND (effective_until IS NULL OR effective_until > ?)",
			true, at, at).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pricing config", at.Format(time.RFC3339))
		}
		return nil, err
	}

	return toDomain(dto)
}
