// Package clusterrepo provides data transfer objects and mapping functions
// for geo cluster persistence.
package clusterrepo

import (
	"time"

	"herdshare/internal/core/domain/model/geo"
	"herdshare/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ClusterDTO represents the database structure for persisting geo clusters.
// ZIP prefixes are stored as a native text array so matching data stays
// queryable without JSON gymnastics.
type ClusterDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name           string         `gorm:"type:varchar(255)"`
	Region         string         `gorm:"type:varchar(255)"`
	ZipPrefixes    pq.StringArray `gorm:"type:text[]"`
	CenterLat      float64
	CenterLng      float64
	RadiusMiles    float64
	Tier           string `gorm:"type:varchar(16)"`
	SurchargePerLb int64
	Active         bool `gorm:"index"`
	CreatedAt      time.Time
}

// TableName specifies the database table name for cluster entities.
func (ClusterDTO) TableName() string {
	return "clusters"
}

// fromDomain converts a cluster domain entity to its database representation.
func fromDomain(cluster *geo.Cluster) ClusterDTO {
	return ClusterDTO{
		ID:             cluster.ID().Bytes(),
		Name:           cluster.Name(),
		Region:         cluster.Region(),
		ZipPrefixes:    cluster.ZipPrefixes(),
		CenterLat:      cluster.CenterLat(),
		CenterLng:      cluster.CenterLng(),
		RadiusMiles:    cluster.RadiusMiles(),
		Tier:           cluster.Tier().String(),
		SurchargePerLb: cluster.SurchargePerLb(),
		Active:         cluster.IsActive(),
	}
}

// toDomain converts a database DTO to a cluster domain entity.
func toDomain(dto ClusterDTO) (*geo.Cluster, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tier, err := geo.TierFromString(dto.Tier)
	if err != nil {
		return nil, err
	}

	return geo.RestoreCluster(
		id,
		dto.Name,
		dto.Region,
		dto.ZipPrefixes,
		dto.CenterLat,
		dto.CenterLng,
		dto.RadiusMiles,
		tier,
		dto.SurchargePerLb,
		dto.Active,
	)
}
