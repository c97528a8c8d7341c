// Package routerepo provides data transfer objects and mapping functions
// for delivery route persistence.
package routerepo

import (
	"time"

	"herdshare/internal/core/domain/model/geo"
	"herdshare/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RouteDTO represents the database structure for persisting delivery routes.
// The drop date is stored as a plain date; one active route serves a cluster
// per drop date.
type RouteDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClusterID          uuid.UUID `gorm:"type:uuid;index"`
	Region             string    `gorm:"type:varchar(255)"`
	DropDate           time.Time `gorm:"type:date"`
	CommittedVolumeLbs float64
	AllocationCount    int
	DensityScore       float64
	Active             bool `gorm:"index"`
	CreatedAt          time.Time
}

// TableName specifies the database table name for route entities.
func (RouteDTO) TableName() string {
	return "routes"
}

// fromDomain converts a route domain entity to its database representation.
func fromDomain(route *geo.Route) RouteDTO {
	return RouteDTO{
		ID:                 route.ID().Bytes(),
		ClusterID:          route.ClusterID().Bytes(),
		Region:             route.Region(),
		DropDate:           route.DropDate(),
		CommittedVolumeLbs: route.CommittedVolumeLbs(),
		AllocationCount:    route.AllocationCount(),
		DensityScore:       route.DensityScore(),
		Active:             route.IsActive(),
		CreatedAt:          route.CreatedAt(),
	}
}

// toDomain converts a database DTO to a route domain entity.
func toDomain(dto RouteDTO) (*geo.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clusterID, err := kernel.UUIDFromBytes(dto.ClusterID[:])
	if err != nil {
		return nil, err
	}

	return geo.RestoreRoute(
		id,
		clusterID,
		dto.Region,
		dto.DropDate,
		dto.CommittedVolumeLbs,
		dto.AllocationCount,
		dto.DensityScore,
		dto.Active,
		dto.CreatedAt,
	)
}
