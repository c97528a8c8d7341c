package commands

import (
	"errors"
	"time"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/guard"
)

var (
	ErrCreateAllocationCommandIsNotConstructed = errors.New(
		"CreateAllocationCommand must be created via NewCreateAllocationCommand constructor",
	)
	ErrDeliveryWindowIsRequired = errors.New("delivery window start and end are required")
	ErrHangingWeightIsInvalid   = errors.New("hanging weight must not be negative")
)

// CreateAllocationCommand represents a buyer's request to reserve a share.
// Encapsulates the plan choice, delivery window, optional weight estimate,
// cut preferences, and shipping address.
//
// Example:
//
//	allocationID := kernel.NewUUID()
//	cmd, err := NewCreateAllocationCommand(allocationID, buyerID, allocation.Quarter,
//	    windowStart, windowEnd, 112, cuts, true, &address)
//	if err != nil {
//	    return fmt.Errorf("invalid allocation data: %w", err)
//	}
//
//	handler := NewCreateAllocationCommandHandler(uowFactory, 2.9)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create allocation: %w", err)
//	}
type CreateAllocationCommand struct { //nolint:recvcheck //using for validation
	allocationID             kernel.UUID
	buyerID                  kernel.UUID
	plan                     allocation.ProductPlan
	windowStart              time.Time
	windowEnd                time.Time
	hangingWeightLbs         float64
	cutsPreferences          map[string]string
	storageCapacityConfirmed bool
	shippingAddress          *allocation.ShippingAddress

	guard guard.ConstructorGuard
}

// NewCreateAllocationCommand creates a command to reserve a new share.
// Validates identifiers, plan, window ordering, and weight sign.
func NewCreateAllocationCommand(
	allocationID kernel.UUID,
	buyerID kernel.UUID,
	plan allocation.ProductPlan,
	windowStart time.Time,
	windowEnd time.Time,
	hangingWeightLbs float64,
	cutsPreferences map[string]string,
	storageCapacityConfirmed bool,
	shippingAddress *allocation.ShippingAddress,
) (CreateAllocationCommand, error) {
	cmd := CreateAllocationCommand{
		cutsPreferences:          cutsPreferences,
		storageCapacityConfirmed: storageCapacityConfirmed,
		shippingAddress:          shippingAddress,
		guard:                    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAllocationID(allocationID),
		cmd.setBuyerID(buyerID),
		cmd.setPlan(plan),
		cmd.setWindow(windowStart, windowEnd),
		cmd.setHangingWeight(hangingWeightLbs),
	); err != nil {
		return CreateAllocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateAllocationCommand) Validate() error {
	return c.guard.Validate(ErrCreateAllocationCommandIsNotConstructed)
}

// AllocationID returns the identifier for the new allocation.
func (c CreateAllocationCommand) AllocationID() kernel.UUID {
	return c.allocationID
}

// BuyerID returns the reserving buyer's identifier.
func (c CreateAllocationCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// Plan returns the requested share plan.
func (c CreateAllocationCommand) Plan() allocation.ProductPlan {
	return c.plan
}

// WindowStart returns the start of the requested delivery window.
func (c CreateAllocationCommand) WindowStart() time.Time {
	return c.windowStart
}

// WindowEnd returns the end of the requested delivery window.
func (c CreateAllocationCommand) WindowEnd() time.Time {
	return c.windowEnd
}

// HangingWeightLbs returns the buyer's weight estimate; zero means unspecified.
func (c CreateAllocationCommand) HangingWeightLbs() float64 {
	return c.hangingWeightLbs
}

// CutsPreferences returns the buyer's cut sheet selections.
func (c CreateAllocationCommand) CutsPreferences() map[string]string {
	return c.cutsPreferences
}

// StorageCapacityConfirmed reports whether the buyer confirmed freezer space.
func (c CreateAllocationCommand) StorageCapacityConfirmed() bool {
	return c.storageCapacityConfirmed
}

// ShippingAddress returns the delivery address, or nil when not yet provided.
func (c CreateAllocationCommand) ShippingAddress() *allocation.ShippingAddress {
	return c.shippingAddress
}

func (c *CreateAllocationCommand) setAllocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.allocationID = id
	return nil
}

func (c *CreateAllocationCommand) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.buyerID = id
	return nil
}

func (c *CreateAllocationCommand) setPlan(plan allocation.ProductPlan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	c.plan = plan
	return nil
}

func (c *CreateAllocationCommand) setWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrDeliveryWindowIsRequired
	}

	c.windowStart = start
	c.windowEnd = end
	return nil
}

func (c *CreateAllocationCommand) setHangingWeight(lbs float64) error {
	if lbs < 0 {
		return ErrHangingWeightIsInvalid
	}

	c.hangingWeightLbs = lbs
	return nil
}
