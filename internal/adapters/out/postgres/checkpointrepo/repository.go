package checkpointrepo

import (
	"context"

	"herdshare/internal/core/domain/model/compliance"

	"gorm.io/gorm"
)

// GormCheckpointRepository implements CheckpointRepository using GORM.
// Checkpoints are append-only; the repository deliberately has no update
// or delete.
type GormCheckpointRepository struct {
	db *gorm.DB
}

// NewGormCheckpointRepository creates a new GORM checkpoint repository.
func NewGormCheckpointRepository(db *gorm.DB) *GormCheckpointRepository {
	return &GormCheckpointRepository{db: db}
}

// Add saves a new checkpoint to the database.
func (r *GormCheckpointRepository) Add(ctx context.Context, checkpoint *compliance.Checkpoint) error {
	if err := checkpoint.Validate(); err != nil {
		return err
	}

	dto := fromDomain(checkpoint)
	return r.db.WithContext(ctx).Create(&dto).Error
}
