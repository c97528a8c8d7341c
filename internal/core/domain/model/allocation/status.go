package allocation

import (
	"errors"
	"fmt"
	"strings"

	"herdshare/internal/pkg/errs"
)

// ErrStatusTransitionIsInvalid is the sentinel behind StatusTransitionError,
// so callers can classify rejected transitions with errors.Is.
var ErrStatusTransitionIsInvalid = errors.New("status transition is invalid")

// Status represents the lifecycle state of an allocation intent.
// It implements a state machine with a fixed adjacency table; a transition
// absent from the table is rejected with the legal alternatives attached.
//
// State transitions:
//
//	DRAFT ──> CHECKOUT_STARTED ──> PAID ──> SCHEDULED ──> PROCESSING ──> SHIPPED ──> COMPLETED
//	  ^              │              ^           │  ^           │ ^           │
//	  └──────────────┘              └───────────┘  └───────────┘ └───────────┘
//	 (checkout expiry)             (operator step-backs between adjacent states)
//
//	CANCELED is reachable from every non-terminal state except SHIPPED.
//	COMPLETED and CANCELED are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Draft is the initial status of a newly reserved allocation.
	Draft

	// CheckoutStarted means a payment session exists for the allocation.
	CheckoutStarted

	// Paid means the payment processor confirmed payment. This is the only
	// status entered by an external event rather than an operator action.
	Paid

	// Scheduled means the allocation is booked onto a processing slot.
	Scheduled

	// Processing means the animal is at the processor.
	Processing

	// Shipped means the boxed share is on a delivery route.
	Shipped

	// Completed means the share was delivered. Terminal.
	Completed

	// Canceled means the reservation was abandoned or withdrawn. Terminal.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "UNKNOWN",
		Draft:           "DRAFT",
		CheckoutStarted: "CHECKOUT_STARTED",
		Paid:            "PAID",
		Scheduled:       "SCHEDULED",
		Processing:      "PROCESSING",
		Shipped:         "SHIPPED",
		Completed:       "COMPLETED",
		Canceled:        "CANCELED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:           "DRAFT",
		CheckoutStarted: "CHECKOUT_STARTED",
		Paid:            "PAID",
		Scheduled:       "SCHEDULED",
		Processing:      "PROCESSING",
		Shipped:         "SHIPPED",
		Completed:       "COMPLETED",
		Canceled:        "CANCELED",
	}
}

// getTransitionTable returns the fixed adjacency table. Order matters: the
// allowed list is surfaced verbatim in rejection errors and API responses.
func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		Draft:           {CheckoutStarted, Canceled},
		CheckoutStarted: {Paid, Draft, Canceled},
		Paid:            {Scheduled, Canceled},
		Scheduled:       {Processing, Paid, Canceled},
		Processing:      {Shipped, Scheduled, Canceled},
		Shipped:         {Completed, Processing},
		Completed:       {},
		Canceled:        {},
	}
}

// StatusFromString parses the wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks the Status is one of the eight valid values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
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

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}

// AllowedTransitions returns the legal next states from this status, in the
// order they are surfaced to callers. Terminal and invalid statuses return an
// empty slice.
func (s Status) AllowedTransitions() []Status {
	allowed := getTransitionTable()[s]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// CanTransitionTo reports whether the adjacency table permits moving to the
// target status.
func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range getTransitionTable()[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionTo returns the target status if the adjacency table permits the
// move, or a StatusTransitionError carrying the legal alternatives.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := to.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(to) {
		return 0, NewStatusTransitionError(s, to)
	}
	return to, nil
}

// StatusTransitionError describes a rejected status transition. It carries
// the current status, the requested status, and the legal next states so the
// API can surface actionable detail to the caller.
type StatusTransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

// NewStatusTransitionError creates a StatusTransitionError for the rejected
// (from, to) pair, capturing the legal transitions out of from.
func NewStatusTransitionError(from, to Status) *StatusTransitionError {
	return &StatusTransitionError{
		From:    from,
		To:      to,
		Allowed: from.AllowedTransitions(),
	}
}

func (e *StatusTransitionError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = s.String()
	}
	allowed := strings.Join(names, ", ")
	if allowed == "" {
		allowed = "none"
	}
	return fmt.Sprintf("status transition is invalid: %s -> %s (allowed: %s)",
		e.From, e.To, allowed)
}

func (e *StatusTransitionError) Unwrap() error {
	return ErrStatusTransitionIsInvalid
}
