package commitment

import (
	"errors"
	"fmt"
	"time"

	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"
)

var (
	// ErrCommitmentIsNotConstructed is returned when a Commitment was not
	// created through the NewCommitment factory method.
	ErrCommitmentIsNotConstructed = errors.New(
		"Commitment must be created via NewCommitment constructor")

	// ErrCommitmentStatusTransitionIsInvalid is returned on an illegal
	// commitment lifecycle move.
	ErrCommitmentStatusTransitionIsInvalid = errors.New(
		"commitment status transition is invalid")
)

// Status is the lifecycle state of a supply commitment.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pledged is the initial state of a new commitment.
	Pledged

	// Confirmed means an operator verified the pledge.
	Confirmed

	// Fulfilled means the committed animals were delivered. Terminal.
	Fulfilled

	// Withdrawn means the rancher retracted the pledge. Terminal.
	Withdrawn
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "UNKNOWN",
		Pledged:       "PLEDGED",
		Confirmed:     "CONFIRMED",
		Fulfilled:     "FULFILLED",
		Withdrawn:     "WITHDRAWN",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pledged:   "PLEDGED",
		Confirmed: "CONFIRMED",
		Fulfilled: "FULFILLED",
		Withdrawn: "WITHDRAWN",
	}
}

func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pledged:   {Confirmed, Withdrawn},
		Confirmed: {Fulfilled, Withdrawn},
		Fulfilled: {},
		Withdrawn: {},
	}
}

// StatusFromString parses the wire representation of a commitment status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("commitment status",
		fmt.Errorf("%q is not a valid commitment status", s))
}

// Validate checks the Status is one of the four valid values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("commitment status",
			fmt.Errorf("%d is not a valid commitment status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether the lifecycle permits moving to the target.
func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range getTransitionTable()[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Commitment is a rancher's pledge of supply for a delivery period: head
// count and estimated total hanging weight. Its lifecycle is independent of
// any allocation.
type Commitment struct {
	id                kernel.UUID
	rancherID         kernel.UUID
	periodStart       time.Time
	periodEnd         time.Time
	headCount         int
	estimatedWeightLbs float64
	status            Status
	createdAt         time.Time

	isConstructed bool
}

// NewCommitment creates a Pledged commitment.
func NewCommitment(
	id kernel.UUID,
	rancherID kernel.UUID,
	periodStart time.Time,
	periodEnd time.Time,
	headCount int,
	estimatedWeightLbs float64,
) (*Commitment, error) {
	c := &Commitment{
		status:        Pledged,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setRancherID(rancherID),
		c.setPeriod(periodStart, periodEnd),
		c.setHeadCount(headCount),
		c.setEstimatedWeight(estimatedWeightLbs),
	); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreCommitment reconstructs a Commitment from persistence.
func RestoreCommitment(
	id kernel.UUID,
	rancherID kernel.UUID,
	periodStart time.Time,
	periodEnd time.Time,
	headCount int,
	estimatedWeightLbs float64,
	status Status,
	createdAt time.Time,
) (*Commitment, error) {
	c, err := NewCommitment(id, rancherID, periodStart, periodEnd, headCount, estimatedWeightLbs)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	c.status = status
	c.createdAt = createdAt
	return c, nil
}

// Validate ensures the Commitment was created through a constructor.
func (c *Commitment) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCommitmentIsNotConstructed
	}
	return nil
}

// ID returns the commitment's unique identifier.
func (c *Commitment) ID() kernel.UUID { return c.id }

// RancherID returns the pledging rancher.
func (c *Commitment) RancherID() kernel.UUID { return c.rancherID }

// PeriodStart returns the start of the covered delivery period.
func (c *Commitment) PeriodStart() time.Time { return c.periodStart }

// PeriodEnd returns the end of the covered delivery period.
func (c *Commitment) PeriodEnd() time.Time { return c.periodEnd }

// HeadCount returns the number of animals pledged.
func (c *Commitment) HeadCount() int { return c.headCount }

// EstimatedWeightLbs returns the estimated total hanging weight.
func (c *Commitment) EstimatedWeightLbs() float64 { return c.estimatedWeightLbs }

// Status returns the lifecycle state.
func (c *Commitment) Status() Status { return c.status }

// CreatedAt returns the creation timestamp.
func (c *Commitment) CreatedAt() time.Time { return c.createdAt }

// Confirm marks a pledged commitment as operator-verified.
func (c *Commitment) Confirm() error { return c.transitionTo(Confirmed) }

// Fulfill marks a confirmed commitment as delivered.
func (c *Commitment) Fulfill() error { return c.transitionTo(Fulfilled) }

// Withdraw retracts a pledged or confirmed commitment.
func (c *Commitment) Withdraw() error { return c.transitionTo(Withdrawn) }

func (c *Commitment) transitionTo(to Status) error {
	if !c.status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s",
			ErrCommitmentStatusTransitionIsInvalid, c.status, to)
	}
	c.status = to
	return nil
}

func (c *Commitment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Commitment) setRancherID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.rancherID = id
	return nil
}

func (c *Commitment) setPeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errs.NewValueIsRequiredError("commitment period")
	}
	if !end.After(start) {
		return errs.NewValueIsInvalidErrorWithCause("commitment period",
			fmt.Errorf("period end %s is not after period start %s", end, start))
	}
	c.periodStart = start
	c.periodEnd = end
	return nil
}

func (c *Commitment) setHeadCount(count int) error {
	if count <= 0 {
		return errs.NewValueIsOutOfRangeError("head count", count, 1, 10000)
	}
	c.headCount = count
	return nil
}

func (c *Commitment) setEstimatedWeight(lbs float64) error {
	if lbs <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimated weight",
			fmt.Errorf("%f is not positive", lbs))
	}
	c.estimatedWeightLbs = lbs
	return nil
}
