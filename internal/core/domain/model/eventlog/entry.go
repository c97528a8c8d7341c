// Package eventlog provides the append-only domain event trail. Entries are
// written once and never updated or deleted.
package eventlog

import (
	"errors"
	"time"

	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created through
// the NewEntry factory method.
var ErrEntryIsNotConstructed = errors.New(
	"Entry must be created via NewEntry constructor")

// Entry is one immutable audit record: who did what to which entity, with an
// opaque JSON payload. The allocation id is attached when the event concerns
// an allocation so its history can be read back in one query.
type Entry struct {
	id           kernel.UUID
	actorID      *kernel.UUID
	actorRole    account.Role
	entityType   string
	entityID     kernel.UUID
	eventName    string
	payload      map[string]any
	allocationID *kernel.UUID
	createdAt    time.Time

	isConstructed bool
}

// NewEntry creates an audit entry. actorID is nil for system-originated
// events (webhooks, jobs); actorRole may be RoleUnknown in that case.
func NewEntry(
	id kernel.UUID,
	actorID *kernel.UUID,
	actorRole account.Role,
	entityType string,
	entityID kernel.UUID,
	eventName string,
	payload map[string]any,
	allocationID *kernel.UUID,
) (*Entry, error) {
	e := &Entry{
		actorID:       actorID,
		actorRole:     actorRole,
		payload:       payload,
		allocationID:  allocationID,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setEntityType(entityType),
		e.setEntityID(entityID),
		e.setEventName(eventName),
	); err != nil {
		return nil, err
	}
	return e, nil
}

// RestoreEntry reconstructs an Entry from persistence.
func RestoreEntry(
	id kernel.UUID,
	actorID *kernel.UUID,
	actorRole account.Role,
	entityType string,
	entityID kernel.UUID,
	eventName string,
	payload map[string]any,
	allocationID *kernel.UUID,
	createdAt time.Time,
) (*Entry, error) {
	e, err := NewEntry(id, actorID, actorRole, entityType, entityID, eventName, payload, allocationID)
	if err != nil {
		return nil, err
	}
	e.createdAt = createdAt
	return e, nil
}

// Validate ensures the Entry was created through a constructor.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// ActorID returns the acting user, or nil for system events.
func (e *Entry) ActorID() *kernel.UUID { return e.actorID }

// ActorRole returns the acting user's role, or RoleUnknown for system events.
func (e *Entry) ActorRole() account.Role { return e.actorRole }

// EntityType returns the kind of entity the event concerns.
func (e *Entry) EntityType() string { return e.entityType }

// EntityID returns the entity the event concerns.
func (e *Entry) EntityID() kernel.UUID { return e.entityID }

// EventName returns the event's name, e.g. "allocation_created".
func (e *Entry) EventName() string { return e.eventName }

// Payload returns the opaque event payload.
func (e *Entry) Payload() map[string]any { return e.payload }

// AllocationID returns the related allocation, or nil.
func (e *Entry) AllocationID() *kernel.UUID { return e.allocationID }

// CreatedAt returns the recording timestamp.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setEntityType(entityType string) error {
	if entityType == "" {
		return errs.NewValueIsRequiredError("entity type")
	}
	e.entityType = entityType
	return nil
}

func (e *Entry) setEntityID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.entityID = id
	return nil
}

func (e *Entry) setEventName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("event name")
	}
	e.eventName = name
	return nil
}
