// Package eventlogrepo provides data transfer objects and mapping functions
// for the append-only audit trail.
package eventlogrepo

import (
	"encoding/json"
	"time"

	"herdshare/internal/core/domain/model/eventlog"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EntryDTO represents the database structure for persisting audit entries.
// ActorID is NULL for events recorded by the system itself, such as payment
// webhooks, and the payload is an opaque JSONB document.
type EntryDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ActorID      *uuid.UUID `gorm:"type:uuid"`
	ActorRole    string     `gorm:"type:varchar(16)"`
	EntityType   string     `gorm:"type:varchar(32);index"`
	EntityID     uuid.UUID  `gorm:"type:uuid;index"`
	EventName    string     `gorm:"type:varchar(64)"`
	Payload      datatypes.JSON
	AllocationID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "event_log_entries"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry *eventlog.Entry) (EntryDTO, error) {
	var payload datatypes.JSON
	if entry.Payload() != nil {
		raw, err := json.Marshal(entry.Payload())
		if err != nil {
			return EntryDTO{}, err
		}
		payload = raw
	}

	var actorID *uuid.UUID
	if id := entry.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	var allocationID *uuid.UUID
	if id := entry.AllocationID(); id != nil {
		raw := id.Bytes()
		allocationID = &raw
	}

	return EntryDTO{
		ID:           entry.ID().Bytes(),
		ActorID:      actorID,
		ActorRole:    entry.ActorRole().String(),
		EntityType:   entry.EntityType(),
		EntityID:     entry.EntityID().Bytes(),
		EventName:    entry.EventName(),
		Payload:      payload,
		AllocationID: allocationID,
		CreatedAt:    entry.CreatedAt(),
	}, nil
}
