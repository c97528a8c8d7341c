package commands

import (
	"errors"
	"time"

	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/guard"
)

var (
	ErrAssignRouteCommandIsNotConstructed = errors.New(
		"AssignRouteCommand must be created via NewAssignRouteCommand constructor",
	)
	ErrDropDateIsRequired = errors.New("drop date is required")
)

// AssignRouteCommand represents an operator's request to book an allocation
// onto a delivery route for a drop date.
type AssignRouteCommand struct { //nolint:recvcheck //using for validation
	allocationID kernel.UUID
	dropDate     time.Time
	actorID      kernel.UUID
	actorRole    account.Role

	guard guard.ConstructorGuard
}

// NewAssignRouteCommand creates a command to book an allocation onto a route.
func NewAssignRouteCommand(
	allocationID kernel.UUID,
	dropDate time.Time,
	actorID kernel.UUID,
	actorRole account.Role,
) (AssignRouteCommand, error) {
	cmd := AssignRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAllocationID(allocationID),
		cmd.setDropDate(dropDate),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return AssignRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRouteCommand) Validate() error {
	return c.guard.Validate(ErrAssignRouteCommandIsNotConstructed)
}

// AllocationID returns the allocation to book.
func (c AssignRouteCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

// DropDate returns the planned delivery date.
func (c AssignRouteCommand) DropDate() time.Time {
	return c.dropDate
}

// ActorID returns the operator performing the booking.
func (c AssignRouteCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the operator's role.
func (c AssignRouteCommand) ActorRole() account.Role {
	return c.actorRole
}

func (c *AssignRouteCommand) setAllocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.allocationID = id
	return nil
}

func (c *AssignRouteCommand) setDropDate(dropDate time.Time) error {
	if dropDate.IsZero() {
		return ErrDropDateIsRequired
	}

	c.dropDate = dropDate
	return nil
}

func (c *AssignRouteCommand) setActor(id kernel.UUID, role account.Role) error {
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
