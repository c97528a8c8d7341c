package routerepo

import (
	"context"
	"errors"
	"time"

	"herdshare/internal/core/domain/model/geo"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRouteRepository implements RouteRepository using GORM.
type GormRouteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRouteRepository creates a new GORM route repository.
func NewGormRouteRepository(db *gorm.DB, tracker aggregateTracker) *GormRouteRepository {
	return &GormRouteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new route to the database.
func (r *GormRouteRepository) Add(ctx context.Context, route *geo.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}

	dto := fromDomain(route)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(route.ID(), route)
	return nil
}

// Get retrieves a route by ID.
func (r *GormRouteRepository) Get(ctx context.Context, id kernel.UUID) (*geo.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByClusterAndDate retrieves the active route serving the cluster
// on the given drop date.
func (r *GormRouteRepository) GetActiveByClusterAndDate(
	ctx context.Context,
	clusterID kernel.UUID,
	dropDate time.Time,
) (*geo.Route, error) {
	if err := clusterID.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDTO
	err := r.db.WithContext(ctx).
		First(&dto, "cluster_id = ? AND drop_date = ? AND active = ?",
			clusterID.Bytes(), dropDate.Format("2006-01-02"), true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route", dropDate.Format("2006-01-02"))
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves all active routes.
func (r *GormRouteRepository) GetAllActive(ctx context.Context) ([]*geo.Route, error) {
	var dtos []RouteDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "active = ?", true).Error; err != nil {
		return nil, err
	}

	routes := make([]*geo.Route, 0, len(dtos))
	for _, dto := range dtos {
		route, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		routes = append(routes, route)
	}

	return routes, nil
}

// AddVolume books one allocation's boxed weight onto the route with a single
// additive UPDATE. Concurrent bookings therefore accumulate instead of
// overwriting each other's read-modify-write.
func (r *GormRouteRepository) AddVolume(ctx context.Context, routeID kernel.UUID, boxedWeightLbs float64) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&RouteDTO{}).
		Where("id = ?", routeID.Bytes()).
		Updates(map[string]any{
			"committed_volume_lbs": gorm.Expr("committed_volume_lbs + ?", boxedWeightLbs),
			"allocation_count":     gorm.Expr("allocation_count + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route", routeID.String())
	}
	return nil
}

// UpdateDensity stores a freshly computed density score.
func (r *GormRouteRepository) UpdateDensity(ctx context.Context, routeID kernel.UUID, score float64) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&RouteDTO{}).
		Where("id = ?", routeID.Bytes()).
		Update("density_score", score)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route", routeID.String())
	}
	return nil
}
