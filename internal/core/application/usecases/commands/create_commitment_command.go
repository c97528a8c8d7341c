package commands

import (
	"errors"
	"time"

	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/guard"
)

var (
	ErrCreateCommitmentCommandIsNotConstructed = errors.New(
		"CreateCommitmentCommand must be created via NewCreateCommitmentCommand constructor",
	)
	ErrCommitmentPeriodIsRequired = errors.New("commitment period start and end are required")
	ErrHeadCountIsInvalid         = errors.New("head count must be greater than 0")
	ErrEstimatedWeightIsInvalid   = errors.New("estimated weight must be greater than 0")
)

// CreateCommitmentCommand represents a rancher's pledge of supply for a
// delivery period.
type CreateCommitmentCommand struct { //nolint:recvcheck //using for validation
	commitmentID       kernel.UUID
	rancherID          kernel.UUID
	periodStart        time.Time
	periodEnd          time.Time
	headCount          int
	estimatedWeightLbs float64

	guard guard.ConstructorGuard
}

// NewCreateCommitmentCommand creates a command to pledge supply.
func NewCreateCommitmentCommand(
	commitmentID kernel.UUID,
	rancherID kernel.UUID,
	periodStart time.Time,
	periodEnd time.Time,
	headCount int,
	estimatedWeightLbs float64,
) (CreateCommitmentCommand, error) {
	cmd := CreateCommitmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCommitmentID(commitmentID),
		cmd.setRancherID(rancherID),
		cmd.setPeriod(periodStart, periodEnd),
		cmd.setHeadCount(headCount),
		cmd.setEstimatedWeight(estimatedWeightLbs),
	); err != nil {
		return CreateCommitmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCommitmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateCommitmentCommandIsNotConstructed)
}

// CommitmentID returns the identifier for the new commitment.
func (c CreateCommitmentCommand) CommitmentID() kernel.UUID {
	return c.commitmentID
}

// RancherID returns the pledging rancher's identifier.
func (c CreateCommitmentCommand) RancherID() kernel.UUID {
	return c.rancherID
}

// PeriodStart returns the start of the covered delivery period.
func (c CreateCommitmentCommand) PeriodStart() time.Time {
	return c.periodStart
}

// PeriodEnd returns the end of the covered delivery period.
func (c CreateCommitmentCommand) PeriodEnd() time.Time {
	return c.periodEnd
}

// HeadCount returns the number of animals pledged.
func (c CreateCommitmentCommand) HeadCount() int {
	return c.headCount
}

// EstimatedWeightLbs returns the estimated total hanging weight.
func (c CreateCommitmentCommand) EstimatedWeightLbs() float64 {
	return c.estimatedWeightLbs
}

func (c *CreateCommitmentCommand) setCommitmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.commitmentID = id
	return nil
}

func (c *CreateCommitmentCommand) setRancherID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.rancherID = id
	return nil
}

func (c *CreateCommitmentCommand) setPeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrCommitmentPeriodIsRequired
	}

	c.periodStart = start
	c.periodEnd = end
	return nil
}

func (c *CreateCommitmentCommand) setHeadCount(count int) error {
	if count <= 0 {
		return ErrHeadCountIsInvalid
	}

	c.headCount = count
	return nil
}

func (c *CreateCommitmentCommand) setEstimatedWeight(lbs float64) error {
	if lbs <= 0 {
		return ErrEstimatedWeightIsInvalid
	}

	c.estimatedWeightLbs = lbs
	return nil
}
