package commands

import (
	"errors"

	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/guard"
)

var ErrStartCheckoutCommandIsNotConstructed = errors.New(
	"StartCheckoutCommand must be created via NewStartCheckoutCommand constructor",
)

// StartCheckoutCommand represents a buyer's request to open a payment session
// for a priced allocation.
type StartCheckoutCommand struct { //nolint:recvcheck //using for validation
	allocationID kernel.UUID
	buyerID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartCheckoutCommand creates a command to open checkout for an allocation.
// buyerID identifies the caller; ownership is enforced by the handler.
func NewStartCheckoutCommand(allocationID, buyerID kernel.UUID) (StartCheckoutCommand, error) {
	cmd := StartCheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAllocationID(allocationID),
		cmd.setBuyerID(buyerID),
	); err != nil {
		return StartCheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrStartCheckoutCommandIsNotConstructed)
}

// AllocationID returns the allocation to check out.
func (c StartCheckoutCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

// BuyerID returns the calling buyer's identifier.
func (c StartCheckoutCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

func (c *StartCheckoutCommand) setAllocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.allocationID = id
	return nil
}

func (c *StartCheckoutCommand) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.buyerID = id
	return nil
}
