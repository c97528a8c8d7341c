package eventlogrepo

import (
	"context"

	"herdshare/internal/core/domain/model/eventlog"

	"gorm.io/gorm"
)

// GormEventLogRepository implements EventLogRepository using GORM.
// The trail is append-only and read back through the query layer, so Add is
// the whole contract.
type GormEventLogRepository struct {
	db *gorm.DB
}

// NewGormEventLogRepository creates a new GORM event log repository.
func NewGormEventLogRepository(db *gorm.DB) *GormEventLogRepository {
	return &GormEventLogRepository{db: db}
}

// Add saves a new audit entry to the database.
func (r *GormEventLogRepository) Add(ctx context.Context, entry *eventlog.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(entry)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
