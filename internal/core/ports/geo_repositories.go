package ports

import (
	"context"
	"time"

	"herdshare/internal/core/domain/model/geo"
	"herdshare/internal/core/domain/model/kernel"
)

// ClusterRepository defines the persistence contract for geo clusters.
type ClusterRepository interface {
	// Add persists a new cluster.
	Add(ctx context.Context, cluster *geo.Cluster) error

	// Get retrieves a cluster by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*geo.Cluster, error)

	// GetAllActive retrieves active clusters in creation order. ZIP matching
	// takes the first hit, so the order is part of the contract.
	GetAllActive(ctx context.Context) ([]*geo.Cluster, error)
}

// RouteRepository defines the persistence contract for delivery routes.
type RouteRepository interface {
	// Add persists a new route.
	Add(ctx context.Context, route *geo.Route) error

	// Get retrieves a route by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*geo.Route, error)

	// GetActiveByClusterAndDate retrieves the active route serving the
	// cluster on the given drop date, or an ObjectNotFoundError.
	GetActiveByClusterAndDate(ctx context.Context, clusterID kernel.UUID, dropDate time.Time) (*geo.Route, error)

	// GetAllActive retrieves all active routes.
	GetAllActive(ctx context.Context) ([]*geo.Route, error)

	// AddVolume increments the route's committed volume and allocation count
	// with a single additive update. The stored value is approximate under
	// concurrent bookings; it is never recomputed from allocations.
	AddVolume(ctx context.Context, routeID kernel.UUID, boxedWeightLbs float64) error

	// UpdateDensity stores a freshly computed density score.
	UpdateDensity(ctx context.Context, routeID kernel.UUID, score float64) error
}
