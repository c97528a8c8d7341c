package geo

import (
	"errors"
	"fmt"
	"time"

	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"
)

// ErrRouteIsNotConstructed is returned when a Route was not created through
// the NewRoute factory method.
var ErrRouteIsNotConstructed = errors.New(
	"Route must be created via NewRoute constructor")

// Route is a planned delivery run for one cluster on one drop date. Paid
// allocations accumulate onto the route; its committed volume is maintained
// by additive increments and is therefore approximate under concurrency, not
// recomputed from allocations.
type Route struct {
	id                 kernel.UUID
	clusterID          kernel.UUID
	region             string
	dropDate           time.Time
	committedVolumeLbs float64
	allocationCount    int
	densityScore       float64
	active             bool
	createdAt          time.Time

	isConstructed bool
}

// NewRoute creates an empty active route for a cluster and drop date.
func NewRoute(
	id kernel.UUID,
	clusterID kernel.UUID,
	region string,
	dropDate time.Time,
) (*Route, error) {
	r := &Route{
		region:        region,
		active:        true,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setClusterID(clusterID),
		r.setDropDate(dropDate),
	); err != nil {
		return nil, err
	}
	return r, nil
}

// RestoreRoute reconstructs a Route from persistence.
func RestoreRoute(
	id kernel.UUID,
	clusterID kernel.UUID,
	region string,
	dropDate time.Time,
	committedVolumeLbs float64,
	allocationCount int,
	densityScore float64,
	active bool,
	createdAt time.Time,
) (*Route, error) {
	r, err := NewRoute(id, clusterID, region, dropDate)
	if err != nil {
		return nil, err
	}
	r.committedVolumeLbs = committedVolumeLbs
	r.allocationCount = allocationCount
	r.densityScore = densityScore
	r.active = active
	r.createdAt = createdAt
	return r, nil
}

// Validate ensures the Route was created through a constructor.
func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

// ID returns the route's unique identifier.
func (r *Route) ID() kernel.UUID { return r.id }

// ClusterID returns the serviced cluster.
func (r *Route) ClusterID() kernel.UUID { return r.clusterID }

// Region returns the region label inherited from the cluster.
func (r *Route) Region() string { return r.region }

// DropDate returns the planned delivery date.
func (r *Route) DropDate() time.Time { return r.dropDate }

// CommittedVolumeLbs returns the accumulated boxed weight booked on the route.
func (r *Route) CommittedVolumeLbs() float64 { return r.committedVolumeLbs }

// AllocationCount returns the number of allocations booked on the route.
func (r *Route) AllocationCount() int { return r.allocationCount }

// DensityScore returns the last computed density score in [0, 100].
func (r *Route) DensityScore() float64 { return r.densityScore }

// IsActive reports whether the route accepts new allocations.
func (r *Route) IsActive() bool { return r.active }

// CreatedAt returns the creation timestamp.
func (r *Route) CreatedAt() time.Time { return r.createdAt }

// Deactivate closes the route to new allocations.
func (r *Route) Deactivate() { r.active = false }

// AddVolume books one allocation's boxed weight onto the route. The volume
// is an additive increment, matching the persistence-layer update.
func (r *Route) AddVolume(boxedWeightLbs float64) error {
	if boxedWeightLbs < 0 {
		return errs.NewValueIsInvalidErrorWithCause("boxed weight",
			fmt.Errorf("%f is negative", boxedWeightLbs))
	}
	r.committedVolumeLbs += boxedWeightLbs
	r.allocationCount++
	return nil
}

// RecomputeDensity refreshes the density score from the current counters:
// min(100, allocationCount / max(volume/100, 1) * 20). Returns the new score.
func (r *Route) RecomputeDensity() float64 {
	r.densityScore = DensityScore(r.allocationCount, r.committedVolumeLbs)
	return r.densityScore
}

// DensityScore computes the route density heuristic for the given counters.
// The score grows with drops per hundred pounds and is capped at 100.
func DensityScore(allocationCount int, committedVolumeLbs float64) float64 {
	denominator := committedVolumeLbs / 100
	if denominator < 1 {
		denominator = 1
	}
	score := float64(allocationCount) / denominator * 20
	if score > 100 {
		return 100
	}
	return score
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setClusterID(clusterID kernel.UUID) error {
	if err := clusterID.Validate(); err != nil {
		return err
	}
	r.clusterID = clusterID
	return nil
}

func (r *Route) setDropDate(dropDate time.Time) error {
	if dropDate.IsZero() {
		return errs.NewValueIsRequiredError("drop date")
	}
	r.dropDate = dropDate
	return nil
}
