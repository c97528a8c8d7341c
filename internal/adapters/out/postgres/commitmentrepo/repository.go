package commitmentrepo

import (
	"context"
	"errors"

	"herdshare/internal/core/domain/model/commitment"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCommitmentRepository implements CommitmentRepository using GORM.
type GormCommitmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCommitmentRepository creates a new GORM commitment repository.
func NewGormCommitmentRepository(db *gorm.DB, tracker aggregateTracker) *GormCommitmentRepository {
	return &GormCommitmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new commitment to the database.
func (r *GormCommitmentRepository) Add(ctx context.Context, aggregate *commitment.Commitment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing commitment to the database.
func (r *GormCommitmentRepository) Update(ctx context.Context, aggregate *commitment.Commitment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CommitmentDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a commitment by ID.
func (r *GormCommitmentRepository) Get(ctx context.Context, id kernel.UUID) (*commitment.Commitment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CommitmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("commitment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
