package allocation

import (
	"errors"
	"fmt"
	"time"

	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"
)

// boxedYield is the share of hanging weight that survives processing into
// boxed, deliverable weight.
const boxedYield = 0.6

var (
	// ErrAllocationIsNotConstructed is returned when an AllocationIntent was
	// not created through the NewAllocationIntent factory method.
	ErrAllocationIsNotConstructed = errors.New(
		"AllocationIntent must be created via NewAllocationIntent constructor")

	// ErrPricingSnapshotIsImmutable is returned on an attempt to overwrite a
	// pricing snapshot that was already frozen onto the allocation.
	ErrPricingSnapshotIsImmutable = errors.New("pricing snapshot is immutable once set")

	// ErrPricingNotCalculated is returned when checkout is requested for an
	// allocation that has no pricing snapshot.
	ErrPricingNotCalculated = errors.New("pricing has not been calculated for this allocation")

	// ErrCheckoutSessionIsRequired is returned when checkout is started
	// without a payment session identifier.
	ErrCheckoutSessionIsRequired = errors.New("checkout session id is required")
)

// AllocationIntent is the aggregate root for one buyer's beef-share
// reservation. It owns the status lifecycle, the frozen pricing snapshot, and
// the fulfillment assignments.
//
// Invariants:
//   - Status transitions follow the fixed adjacency table in Status.
//   - The pricing snapshot is write-once.
//   - Entering Completed stamps the delivery timestamp.
//   - Reverting to Draft clears the checkout session.
//
// Can only be created through NewAllocationIntent or restored from
// persistence through RestoreAllocationIntent.
type AllocationIntent struct {
	id      kernel.UUID
	buyerID kernel.UUID
	plan    ProductPlan
	status  Status

	windowStart time.Time
	windowEnd   time.Time

	hangingWeightLbs float64
	boxedWeightLbs   float64

	cutsPreferences          map[string]string
	storageCapacityConfirmed bool
	shippingAddress          *ShippingAddress

	pricingSnapshot PricingSnapshot

	checkoutSessionID string
	paymentIntentID   string

	assignedRancherID   *kernel.UUID
	assignedProcessorID *kernel.UUID
	routeID             *kernel.UUID

	deliveredAt *time.Time
	createdAt   time.Time

	isConstructed bool
}

// NewAllocationIntent creates a Draft allocation for a buyer. A zero
// hangingWeightLbs means "unspecified" and pricing falls back to the plan's
// default weight; a positive weight also fixes the estimated boxed weight at
// the standard yield.
func NewAllocationIntent(
	id kernel.UUID,
	buyerID kernel.UUID,
	plan ProductPlan,
	windowStart time.Time,
	windowEnd time.Time,
	hangingWeightLbs float64,
	cutsPreferences map[string]string,
	storageCapacityConfirmed bool,
	shippingAddress *ShippingAddress,
) (*AllocationIntent, error) {
	a := &AllocationIntent{
		status:                   Draft,
		cutsPreferences:          cutsPreferences,
		storageCapacityConfirmed: storageCapacityConfirmed,
		shippingAddress:          shippingAddress,
		createdAt:                time.Now().UTC(),
		isConstructed:            true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setBuyerID(buyerID),
		a.setPlan(plan),
		a.setWindow(windowStart, windowEnd),
		a.setHangingWeight(hangingWeightLbs),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the AllocationIntent was created through a constructor.
func (a *AllocationIntent) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAllocationIsNotConstructed
	}
	return nil
}

// IsEqual compares two allocations by their unique identifiers.
func (a *AllocationIntent) IsEqual(other *AllocationIntent) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the allocation's unique identifier.
func (a *AllocationIntent) ID() kernel.UUID { return a.id }

// BuyerID returns the reserving buyer's identifier.
func (a *AllocationIntent) BuyerID() kernel.UUID { return a.buyerID }

// Plan returns the reserved product plan.
func (a *AllocationIntent) Plan() ProductPlan { return a.plan }

// Status returns the current lifecycle status.
func (a *AllocationIntent) Status() Status { return a.status }

// WindowStart returns the start of the target delivery window.
func (a *AllocationIntent) WindowStart() time.Time { return a.windowStart }

// WindowEnd returns the end of the target delivery window. On-time delivery
// is measured against this timestamp.
func (a *AllocationIntent) WindowEnd() time.Time { return a.windowEnd }

// HangingWeightLbs returns the estimated hanging weight; zero means unspecified.
func (a *AllocationIntent) HangingWeightLbs() float64 { return a.hangingWeightLbs }

// BoxedWeightLbs returns the estimated boxed weight derived from the hanging
// weight at the standard yield; zero when the hanging weight is unspecified.
func (a *AllocationIntent) BoxedWeightLbs() float64 { return a.boxedWeightLbs }

// CutsPreferences returns the buyer's cut sheet selections. Stored opaquely.
func (a *AllocationIntent) CutsPreferences() map[string]string { return a.cutsPreferences }

// StorageCapacityConfirmed reports whether the buyer confirmed freezer space.
func (a *AllocationIntent) StorageCapacityConfirmed() bool { return a.storageCapacityConfirmed }

// ShippingAddress returns the delivery address, or nil when not yet provided.
func (a *AllocationIntent) ShippingAddress() *ShippingAddress { return a.shippingAddress }

// PricingSnapshot returns the frozen price breakdown; zero value until priced.
func (a *AllocationIntent) PricingSnapshot() PricingSnapshot { return a.pricingSnapshot }

// CheckoutSessionID returns the active payment session id, if any.
func (a *AllocationIntent) CheckoutSessionID() string { return a.checkoutSessionID }

// PaymentIntentID returns the payment processor's payment reference, if any.
func (a *AllocationIntent) PaymentIntentID() string { return a.paymentIntentID }

// AssignedRancherID returns the supplying rancher, or nil if unassigned.
func (a *AllocationIntent) AssignedRancherID() *kernel.UUID { return a.assignedRancherID }

// AssignedProcessorID returns the processing partner, or nil if unassigned.
func (a *AllocationIntent) AssignedProcessorID() *kernel.UUID { return a.assignedProcessorID }

// RouteID returns the fulfillment route, or nil if unassigned.
func (a *AllocationIntent) RouteID() *kernel.UUID { return a.routeID }

// DeliveredAt returns the delivery timestamp stamped on completion, or nil.
func (a *AllocationIntent) DeliveredAt() *time.Time { return a.deliveredAt }

// CreatedAt returns the creation timestamp.
func (a *AllocationIntent) CreatedAt() time.Time { return a.createdAt }

// SetPricingSnapshot freezes the price breakdown onto the allocation.
// The snapshot is write-once: a second call fails regardless of content.
func (a *AllocationIntent) SetPricingSnapshot(snapshot PricingSnapshot) error {
	if snapshot.IsZero() {
		return errs.NewValueIsRequiredError("pricing snapshot")
	}
	if !a.pricingSnapshot.IsZero() {
		return ErrPricingSnapshotIsImmutable
	}
	a.pricingSnapshot = snapshot
	return nil
}

// TransitionTo moves the allocation to the requested status, enforcing the
// adjacency table and applying transition side effects: entering Completed
// stamps the delivery timestamp, reverting to Draft clears the checkout
// session.
func (a *AllocationIntent) TransitionTo(to Status) error {
	newStatus, err := a.status.TransitionTo(to)
	if err != nil {
		return err
	}

	a.status = newStatus
	switch newStatus {
	case Completed:
		now := time.Now().UTC()
		a.deliveredAt = &now
	case Draft:
		a.checkoutSessionID = ""
	default:
	}
	return nil
}

// StartCheckout records a payment session and moves the allocation to
// CheckoutStarted. Requires a frozen pricing snapshot. Restarting checkout
// while already in CheckoutStarted replaces the session in place.
func (a *AllocationIntent) StartCheckout(sessionID string) error {
	if sessionID == "" {
		return ErrCheckoutSessionIsRequired
	}
	if a.pricingSnapshot.IsZero() {
		return ErrPricingNotCalculated
	}

	if a.status != CheckoutStarted {
		if err := a.TransitionTo(CheckoutStarted); err != nil {
			return err
		}
	}
	a.checkoutSessionID = sessionID
	return nil
}

// MarkPaid confirms payment and moves the allocation to Paid, recording the
// processor's payment reference. Only legal from CheckoutStarted per the
// adjacency table; callers wanting webhook idempotency must check Status
// before invoking.
func (a *AllocationIntent) MarkPaid(paymentIntentID string) error {
	if err := a.TransitionTo(Paid); err != nil {
		return err
	}
	a.paymentIntentID = paymentIntentID
	return nil
}

// ExpireCheckout reverts an abandoned checkout to Draft and clears the
// payment session.
func (a *AllocationIntent) ExpireCheckout() error {
	return a.TransitionTo(Draft)
}

// AssignRancher records the supplying rancher.
func (a *AllocationIntent) AssignRancher(rancherID kernel.UUID) error {
	if err := rancherID.Validate(); err != nil {
		return err
	}
	a.assignedRancherID = &rancherID
	return nil
}

// AssignProcessor records the processing partner.
func (a *AllocationIntent) AssignProcessor(processorID kernel.UUID) error {
	if err := processorID.Validate(); err != nil {
		return err
	}
	a.assignedProcessorID = &processorID
	return nil
}

// AssignRoute attaches the allocation to a fulfillment route.
func (a *AllocationIntent) AssignRoute(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	a.routeID = &routeID
	return nil
}

func (a *AllocationIntent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *AllocationIntent) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	a.buyerID = buyerID
	return nil
}

func (a *AllocationIntent) setPlan(plan ProductPlan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	a.plan = plan
	return nil
}

func (a *AllocationIntent) setWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errs.NewValueIsRequiredError("delivery window")
	}
	if !end.After(start) {
		return errs.NewValueIsInvalidErrorWithCause("delivery window",
			fmt.Errorf("window end %s is not after window start %s", end, start))
	}
	a.windowStart = start
	a.windowEnd = end
	return nil
}

func (a *AllocationIntent) setHangingWeight(lbs float64) error {
	if lbs < 0 {
		return errs.NewValueIsInvalidErrorWithCause("hanging weight",
			fmt.Errorf("%f is negative", lbs))
	}
	a.hangingWeightLbs = lbs
	a.boxedWeightLbs = lbs * boxedYield
	return nil
}

// RestoreAllocationIntentArgs carries the persisted state needed to rebuild
// an AllocationIntent from storage.
type RestoreAllocationIntentArgs struct {
	ID                       kernel.UUID
	BuyerID                  kernel.UUID
	Plan                     ProductPlan
	Status                   Status
	WindowStart              time.Time
	WindowEnd                time.Time
	HangingWeightLbs         float64
	BoxedWeightLbs           float64
	CutsPreferences          map[string]string
	StorageCapacityConfirmed bool
	ShippingAddress          *ShippingAddress
	PricingSnapshot          PricingSnapshot
	CheckoutSessionID        string
	PaymentIntentID          string
	AssignedRancherID        *kernel.UUID
	AssignedProcessorID      *kernel.UUID
	RouteID                  *kernel.UUID
	DeliveredAt              *time.Time
	CreatedAt                time.Time
}

// RestoreAllocationIntent reconstructs an AllocationIntent from persistence.
// Unlike NewAllocationIntent it accepts any valid status and preserves the
// stored boxed weight rather than re-deriving it.
func RestoreAllocationIntent(args RestoreAllocationIntentArgs) (*AllocationIntent, error) {
	a := &AllocationIntent{
		cutsPreferences:          args.CutsPreferences,
		storageCapacityConfirmed: args.StorageCapacityConfirmed,
		shippingAddress:          args.ShippingAddress,
		pricingSnapshot:          args.PricingSnapshot,
		checkoutSessionID:        args.CheckoutSessionID,
		paymentIntentID:          args.PaymentIntentID,
		assignedRancherID:        args.AssignedRancherID,
		assignedProcessorID:      args.AssignedProcessorID,
		routeID:                  args.RouteID,
		deliveredAt:              args.DeliveredAt,
		createdAt:                args.CreatedAt,
		isConstructed:            true,
	}

	if err := errors.Join(
		a.setID(args.ID),
		a.setBuyerID(args.BuyerID),
		a.setPlan(args.Plan),
		a.setWindow(args.WindowStart, args.WindowEnd),
		a.setHangingWeight(args.HangingWeightLbs),
		args.Status.Validate(),
	); err != nil {
		return nil, err
	}

	a.status = args.Status
	if args.BoxedWeightLbs > 0 {
		a.boxedWeightLbs = args.BoxedWeightLbs
	}
	return a, nil
}
