package clusterrepo

import (
	"context"
	"errors"

	"herdshare/internal/core/domain/model/geo"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormClusterRepository implements ClusterRepository using GORM.
type GormClusterRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormClusterRepository creates a new GORM cluster repository.
func NewGormClusterRepository(db *gorm.DB, tracker aggregateTracker) *GormClusterRepository {
	return &GormClusterRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new cluster to the database.
func (r *GormClusterRepository) Add(ctx context.Context, cluster *geo.Cluster) error {
	if err := cluster.Validate(); err != nil {
		return err
	}

	dto := fromDomain(cluster)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(cluster.ID(), cluster)
	return nil
}

// Get retrieves a cluster by ID.
func (r *GormClusterRepository) Get(ctx context.Context, id kernel.UUID) (*geo.Cluster, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ClusterDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cluster", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves active clusters in creation order. ZIP resolution
// takes the first matching cluster, so the ordering is part of the contract.
func (r *GormClusterRepository) GetAllActive(ctx context.Context) ([]*geo.Cluster, error) {
	var dtos []ClusterDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "active = ?", true).Error
	if err != nil {
		return nil, err
	}

	clusters := make([]*geo.Cluster, 0, len(dtos))
	for _, dto := range dtos {
		cluster, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		clusters = append(clusters, cluster)
	}

	return clusters, nil
}
