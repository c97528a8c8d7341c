package commands

import (
	"errors"

	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/guard"
)

var ErrUpdateAllocationStatusCommandIsNotConstructed = errors.New(
	"UpdateAllocationStatusCommand must be created via NewUpdateAllocationStatusCommand constructor",
)

// UpdateAllocationStatusCommand represents an operator's request to move an
// allocation to a new lifecycle status, optionally attaching fulfillment
// partners and a note in the same change.
type UpdateAllocationStatusCommand struct { //nolint:recvcheck //using for validation
	allocationID kernel.UUID
	targetStatus allocation.Status
	rancherID    *kernel.UUID
	processorID  *kernel.UUID
	notes        string
	actorID      kernel.UUID
	actorRole    account.Role

	guard guard.ConstructorGuard
}

// NewUpdateAllocationStatusCommand creates a command for an operator status
// change. rancherID and processorID are optional assignments applied with the
// transition; the transition itself is validated by the aggregate on Handle.
func NewUpdateAllocationStatusCommand(
	allocationID kernel.UUID,
	targetStatus allocation.Status,
	rancherID *kernel.UUID,
	processorID *kernel.UUID,
	notes string,
	actorID kernel.UUID,
	actorRole account.Role,
) (UpdateAllocationStatusCommand, error) {
	cmd := UpdateAllocationStatusCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAllocationID(allocationID),
		cmd.setTargetStatus(targetStatus),
		cmd.setRancherID(rancherID),
		cmd.setProcessorID(processorID),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return UpdateAllocationStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateAllocationStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAllocationStatusCommandIsNotConstructed)
}

// AllocationID returns the allocation to transition.
func (c UpdateAllocationStatusCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

// TargetStatus returns the requested status.
func (c UpdateAllocationStatusCommand) TargetStatus() allocation.Status {
	return c.targetStatus
}

// RancherID returns the optional rancher assignment, or nil.
func (c UpdateAllocationStatusCommand) RancherID() *kernel.UUID {
	return c.rancherID
}

// ProcessorID returns the optional processor assignment, or nil.
func (c UpdateAllocationStatusCommand) ProcessorID() *kernel.UUID {
	return c.processorID
}

// Notes returns the operator's free-form note for the audit trail.
func (c UpdateAllocationStatusCommand) Notes() string {
	return c.notes
}

// ActorID returns the operator performing the change.
func (c UpdateAllocationStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the operator's role.
func (c UpdateAllocationStatusCommand) ActorRole() account.Role {
	return c.actorRole
}

func (c *UpdateAllocationStatusCommand) setAllocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.allocationID = id
	return nil
}

func (c *UpdateAllocationStatusCommand) setTargetStatus(status allocation.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.targetStatus = status
	return nil
}

func (c *UpdateAllocationStatusCommand) setRancherID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}

	c.rancherID = id
	return nil
}

func (c *UpdateAllocationStatusCommand) setProcessorID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}

	c.processorID = id
	return nil
}

func (c *UpdateAllocationStatusCommand) setActor(id kernel.UUID, role account.Role) error {
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
