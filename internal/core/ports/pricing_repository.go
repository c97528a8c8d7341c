package ports

import (
	"context"
	"time"

	"herdshare/internal/core/domain/model/pricing"
)

// PricingConfigRepository defines the persistence contract for stored price
// cards.
type PricingConfigRepository interface {
	// Add persists a new pricing config.
	Add(ctx context.Context, config *pricing.Config) error

	// GetCovering retrieves the most recently created active config whose
	// effective window contains the given moment. Returns an
	// ObjectNotFoundError when none covers it; callers then fall back to the
	// hardcoded default rates.
	GetCovering(ctx context.Context, at time.Time) (*pricing.Config, error)
}
