// Package checkpointrepo provides data transfer objects and mapping functions
// for compliance checkpoint persistence. The store is append-only.
package checkpointrepo

import (
	"time"

	"herdshare/internal/core/domain/model/compliance"
	"herdshare/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CheckpointDTO represents the database structure for persisting compliance
// checkpoints.
type CheckpointDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AllocationID uuid.UUID `gorm:"type:uuid;index"`
	Kind         string    `gorm:"type:varchar(32)"`
	Verdict      string    `gorm:"type:varchar(16)"`
	ValueCelsius *float64
	DocumentRef  string `gorm:"type:varchar(512)"`
	Notes        string `gorm:"type:text"`
	RecordedBy   uuid.UUID `gorm:"type:uuid"`
	RecordedAt   time.Time
}

// TableName specifies the database table name for checkpoint entities.
func (CheckpointDTO) TableName() string {
	return "checkpoints"
}

// fromDomain converts a checkpoint domain entity to its database representation.
func fromDomain(checkpoint *compliance.Checkpoint) CheckpointDTO {
	return CheckpointDTO{
		ID:           checkpoint.ID().Bytes(),
		AllocationID: checkpoint.AllocationID().Bytes(),
		Kind:         checkpoint.Kind().String(),
		Verdict:      checkpoint.Verdict().String(),
		ValueCelsius: checkpoint.ValueCelsius(),
		DocumentRef:  checkpoint.DocumentRef(),
		Notes:        checkpoint.Notes(),
		RecordedBy:   checkpoint.RecordedBy().Bytes(),
		RecordedAt:   checkpoint.RecordedAt(),
	}
}

// toDomain converts a database DTO to a checkpoint domain entity.
func toDomain(dto CheckpointDTO) (*compliance.Checkpoint, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	allocationID, err := kernel.UUIDFromBytes(dto.AllocationID[:])
	if err != nil {
		return nil, err
	}
	recordedBy, err := kernel.UUIDFromBytes(dto.RecordedBy[:])
	if err != nil {
		return nil, err
	}

	kind, err := compliance.CheckpointTypeFromString(dto.Kind)
	if err != nil {
		return nil, err
	}
	verdict, err := compliance.VerdictFromString(dto.Verdict)
	if err != nil {
		return nil, err
	}

	return compliance.RestoreCheckpoint(
		id,
		allocationID,
		kind,
		verdict,
		dto.ValueCelsius,
		dto.DocumentRef,
		dto.Notes,
		recordedBy,
		dto.RecordedAt,
	)
}
