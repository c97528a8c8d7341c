package services

import (
	"time"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/geo"
	"herdshare/internal/core/domain/model/kernel"
)

// RoutePlanner is a domain service that books paid allocations onto delivery
// routes and resolves which geo cluster serves a buyer's ZIP.
//
// Key business rules:
//   - The first active cluster whose prefix set contains the ZIP wins;
//     evaluation order is the caller's (persistence) order
//   - An allocation books onto the active route matching its cluster and
//     drop date; the caller creates a fresh route when none matches
//   - Booking adds the allocation's boxed weight to the route additively
type RoutePlanner struct{}

// NewRoutePlanner creates a new RoutePlanner instance.
func NewRoutePlanner() RoutePlanner {
	return RoutePlanner{}
}

// ResolveCluster returns the first active cluster matching the ZIP's 3-digit
// prefix, or nil when no cluster serves it. A nil result means the MEDIUM
// tier fallback surcharge applies at pricing time.
func (p RoutePlanner) ResolveCluster(zip kernel.ZipCode, clusters []*geo.Cluster) *geo.Cluster {
	for _, cluster := range clusters {
		if cluster.IsActive() && cluster.MatchesZip(zip) {
			return cluster
		}
	}
	return nil
}

// SelectRoute returns the active route serving the cluster on the drop date,
// or nil when the caller must create one. Drop dates compare by calendar day
// in UTC.
func (p RoutePlanner) SelectRoute(routes []*geo.Route, clusterID kernel.UUID, dropDate time.Time) *geo.Route {
	for _, route := range routes {
		if !route.IsActive() {
			continue
		}
		if route.ClusterID().IsEqual(clusterID) && sameDay(route.DropDate(), dropDate) {
			return route
		}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// Book attaches the allocation to the route and adds its boxed weight to the
// route's committed volume.
func (p RoutePlanner) Book(intent *allocation.AllocationIntent, route *geo.Route) error {
	if err := intent.Validate(); err != nil {
		return err
	}
	if err := route.Validate(); err != nil {
		return err
	}

	if err := route.AddVolume(intent.BoxedWeightLbs()); err != nil {
		return err
	}
	return intent.AssignRoute(route.ID())
}
