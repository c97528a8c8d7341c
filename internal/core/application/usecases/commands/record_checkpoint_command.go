package commands

import (
	"errors"

	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/domain/model/compliance"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/guard"
)

var ErrRecordCheckpointCommandIsNotConstructed = errors.New(
	"RecordCheckpointCommand must be created via NewRecordCheckpointCommand constructor",
)

// RecordCheckpointCommand represents a request to append one compliance
// checkpoint to an allocation's trail.
type RecordCheckpointCommand struct { //nolint:recvcheck //using for validation
	checkpointID kernel.UUID
	allocationID kernel.UUID
	kind         compliance.CheckpointType
	verdict      compliance.Verdict
	valueCelsius *float64
	documentRef  string
	notes        string
	actorID      kernel.UUID
	actorRole    account.Role

	guard guard.ConstructorGuard
}

// NewRecordCheckpointCommand creates a command to record a checkpoint.
// Type-specific requirements (temperature reading, document reference) are
// enforced by the Checkpoint constructor on Handle.
func NewRecordCheckpointCommand(
	checkpointID kernel.UUID,
	allocationID kernel.UUID,
	kind compliance.CheckpointType,
	verdict compliance.Verdict,
	valueCelsius *float64,
	documentRef string,
	notes string,
	actorID kernel.UUID,
	actorRole account.Role,
) (RecordCheckpointCommand, error) {
	cmd := RecordCheckpointCommand{
		valueCelsius: valueCelsius,
		documentRef:  documentRef,
		notes:        notes,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCheckpointID(checkpointID),
		cmd.setAllocationID(allocationID),
		cmd.setKind(kind),
		cmd.setVerdict(verdict),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return RecordCheckpointCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordCheckpointCommand) Validate() error {
	return c.guard.Validate(ErrRecordCheckpointCommandIsNotConstructed)
}

// CheckpointID returns the identifier for the new checkpoint.
func (c RecordCheckpointCommand) CheckpointID() kernel.UUID {
	return c.checkpointID
}

// AllocationID returns the allocation the checkpoint belongs to.
func (c RecordCheckpointCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

// Kind returns the checkpoint type.
func (c RecordCheckpointCommand) Kind() compliance.CheckpointType {
	return c.kind
}

// Verdict returns the recorded outcome.
func (c RecordCheckpointCommand) Verdict() compliance.Verdict {
	return c.verdict
}

// ValueCelsius returns the temperature reading, if provided.
func (c RecordCheckpointCommand) ValueCelsius() *float64 {
	return c.valueCelsius
}

// DocumentRef returns the linked document reference, if provided.
func (c RecordCheckpointCommand) DocumentRef() string {
	return c.documentRef
}

// Notes returns free-form operator notes.
func (c RecordCheckpointCommand) Notes() string {
	return c.notes
}

// ActorID returns the recording actor.
func (c RecordCheckpointCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the recording actor's role.
func (c RecordCheckpointCommand) ActorRole() account.Role {
	return c.actorRole
}

func (c *RecordCheckpointCommand) setCheckpointID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.checkpointID = id
	return nil
}

func (c *RecordCheckpointCommand) setAllocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.allocationID = id
	return nil
}

func (c *RecordCheckpointCommand) setKind(kind compliance.CheckpointType) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *RecordCheckpointCommand) setVerdict(verdict compliance.Verdict) error {
	if err := verdict.Validate(); err != nil {
		return err
	}

	c.verdict = verdict
	return nil
}

func (c *RecordCheckpointCommand) setActor(id kernel.UUID, role account.Role) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := role.Validate(); err != nil {
		return err
	}

	c.actorID = id
	c.actorRole = role
	return nil
}
