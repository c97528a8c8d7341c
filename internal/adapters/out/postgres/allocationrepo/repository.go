package allocationrepo

import (
	"context"
	"errors"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAllocationRepository implements AllocationRepository using GORM.
type GormAllocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAllocationRepository creates a new GORM allocation repository.
func NewGormAllocationRepository(db *gorm.DB, tracker aggregateTracker) *GormAllocationRepository {
	return &GormAllocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new allocation to the database.
func (r *GormAllocationRepository) Add(ctx context.Context, aggregate *allocation.AllocationIntent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing allocation to the database. Columns that moved to
// their zero value, such as a checkout session cleared by expiry, must still
// be written, so the full DTO is saved rather than a sparse update.
func (r *GormAllocationRepository) Update(ctx context.Context, aggregate *allocation.AllocationIntent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&AllocationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an allocation by ID.
func (r *GormAllocationRepository) Get(ctx context.Context, id kernel.UUID) (*allocation.AllocationIntent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AllocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("allocation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCheckoutSession retrieves the allocation holding the given payment
// session id. Used by webhook processing to correlate gateway events.
func (r *GormAllocationRepository) GetByCheckoutSession(ctx context.Context, sessionID string) (*allocation.AllocationIntent, error) {
	if sessionID == "" {
		return nil, errs.NewValueIsRequiredError("session id")
	}

	var dto AllocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "checkout_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("allocation", sessionID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByPaymentIntent retrieves the allocation holding the given payment
// intent reference. Payment-level webhook events identify the allocation by
// this reference instead of a session id.
func (r *GormAllocationRepository) GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*allocation.AllocationIntent, error) {
	if paymentIntentID == "" {
		return nil, errs.NewValueIsRequiredError("payment intent id")
	}

	var dto AllocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "payment_intent_id = ?", paymentIntentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("allocation", paymentIntentID)
		}
		return nil, err
	}

	return toDomain(dto)
}
