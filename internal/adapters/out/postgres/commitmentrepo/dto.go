// Package commitmentrepo provides data transfer objects and mapping
// functions for rancher supply commitment persistence.
package commitmentrepo

import (
	"time"

	"herdshare/internal/core/domain/model/commitment"
	"herdshare/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CommitmentDTO represents the database structure for persisting supply
// commitments.
type CommitmentDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	RancherID          uuid.UUID `gorm:"type:uuid;index"`
	PeriodStart        time.Time
	PeriodEnd          time.Time
	HeadCount          int
	EstimatedWeightLbs float64
	Status             string `gorm:"type:varchar(16);index"`
	CreatedAt          time.Time
}

// TableName specifies the database table name for commitment entities.
func (CommitmentDTO) TableName() string {
	return "commitments"
}

// fromDomain converts a commitment domain aggregate to its database
// representation.
func fromDomain(aggregate *commitment.Commitment) CommitmentDTO {
	return CommitmentDTO{
		ID:                 aggregate.ID().Bytes(),
		RancherID:          aggregate.RancherID().Bytes(),
		PeriodStart:        aggregate.PeriodStart(),
		PeriodEnd:          aggregate.PeriodEnd(),
		HeadCount:          aggregate.HeadCount(),
		EstimatedWeightLbs: aggregate.EstimatedWeightLbs(),
		Status:             aggregate.Status().String(),
		CreatedAt:          aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a commitment domain aggregate.
func toDomain(dto CommitmentDTO) (*commitment.Commitment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	rancherID, err := kernel.UUIDFromBytes(dto.RancherID[:])
	if err != nil {
		return nil, err
	}

	status, err := commitment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return commitment.RestoreCommitment(
		id,
		rancherID,
		dto.PeriodStart,
		dto.PeriodEnd,
		dto.HeadCount,
		dto.EstimatedWeightLbs,
		status,
		dto.CreatedAt,
	)
}
