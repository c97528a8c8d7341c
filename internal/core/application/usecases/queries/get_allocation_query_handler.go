package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllocationQueryHandler assembles the detail view of one allocation from
// the allocations, checkpoints and event log tables.
//
// Example:
//
//	handler := NewGetAllocationQueryHandler(db)
//	query, _ := NewGetAllocationQuery(allocationID)
//
//	detail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get allocation: %v", err)
//	    return err
//	}
type GetAllocationQueryHandler struct {
	db *gorm.DB
}

// NewGetAllocationQueryHandler creates a handler for allocation detail queries.
// Requires a GORM database connection for query execution.
func NewGetAllocationQueryHandler(db *gorm.DB) GetAllocationQueryHandler {
	return GetAllocationQueryHandler{db: db}
}

// Handle executes the query to assemble the allocation detail view.
// Returns an ObjectNotFoundError when no allocation has the requested ID.
func (h GetAllocationQueryHandler) Handle(
	ctx context.Context,
	query GetAllocationQuery,
) (AllocationDetail, error) {
	if err := query.Validate(); err != nil {
		return AllocationDetail{}, err
	}

	detail, err := h.loadAllocation(ctx, query.AllocationID())
	if err != nil {
		return AllocationDetail{}, err
	}

	detail.Checkpoints, err = loadCheckpoints(ctx, h.db, query.AllocationID())
	if err != nil {
		return AllocationDetail{}, err
	}

	detail.Events, err = h.loadEvents(ctx, query.AllocationID())
	if err != nil {
		return AllocationDetail{}, err
	}

	return detail, nil
}

func (h GetAllocationQueryHandler) loadAllocation(
	ctx context.Context,
	allocationID kernel.UUID,
) (AllocationDetail, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			buyer_id,
			plan,
			status,
			window_start,
			window_end,
			hanging_weight_lbs,
			boxed_weight_lbs,
			cuts_preferences,
			storage_capacity_confirmed,
			shipping_address,
			pricing_snapshot,
			checkout_session_id,
			payment_intent_id,
			assigned_rancher_id,
			assigned_processor_id,
			route_id,
			delivered_at,
			created_at
		FROM allocations
		WHERE id = ?
	`, allocationID.Bytes()).Row()

	var detail AllocationDetail
	var id, buyerID uuid.UUID
	var rancherID, processorID, routeID uuid.NullUUID
	var cutsJSON, addressJSON, pricingJSON []byte
	var deliveredAt sql.NullTime

	err := row.Scan(
		&id,
		&buyerID,
		&detail.Plan,
		&detail.Status,
		&detail.WindowStart,
		&detail.WindowEnd,
		&detail.HangingWeightLbs,
		&detail.BoxedWeightLbs,
		&cutsJSON,
		&detail.StorageCapacityConfirmed,
		&addressJSON,
		&pricingJSON,
		&detail.CheckoutSessionID,
		&detail.PaymentIntentID,
		&rancherID,
		&processorID,
		&routeID,
		&deliveredAt,
		&detail.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AllocationDetail{}, errs.NewObjectNotFoundError("allocation", allocationID.String())
		}
		return AllocationDetail{}, err
	}

	detail.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return AllocationDetail{}, err
	}
	detail.BuyerID, err = kernel.UUIDFromBytes(buyerID[:])
	if err != nil {
		return AllocationDetail{}, err
	}

	detail.AssignedRancherID, err = optionalUUID(rancherID)
	if err != nil {
		return AllocationDetail{}, err
	}
	detail.AssignedProcessorID, err = optionalUUID(processorID)
	if err != nil {
		return AllocationDetail{}, err
	}
	detail.RouteID, err = optionalUUID(routeID)
	if err != nil {
		return AllocationDetail{}, err
	}

	if deliveredAt.Valid {
		t := deliveredAt.Time
		detail.DeliveredAt = &t
	}

	if len(cutsJSON) > 0 {
		if err = json.Unmarshal(cutsJSON, &detail.CutsPreferences); err != nil {
			return AllocationDetail{}, err
		}
	}
	if len(addressJSON) > 0 {
		var address allocation.ShippingAddress
		if err = json.Unmarshal(addressJSON, &address); err != nil {
			return AllocationDetail{}, err
		}
		detail.ShippingAddress = &address
	}
	if len(pricingJSON) > 0 {
		var pricing allocation.PricingSnapshot
		if err = json.Unmarshal(pricingJSON, &pricing); err != nil {
			return AllocationDetail{}, err
		}
		if !pricing.IsZero() {
			detail.Pricing = &pricing
		}
	}

	return detail, nil
}

func (h GetAllocationQueryHandler) loadEvents(
	ctx context.Context,
	allocationID kernel.UUID,
) ([]EventRow, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			actor_id,
			actor_role,
			entity_type,
			entity_id,
			event_name,
			payload,
			created_at
		FROM event_log_entries
		WHERE allocation_id = ?
		ORDER BY created_at
	`, allocationID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]EventRow, 0)

	for rows.Next() {
		var event EventRow
		var id, entityID uuid.UUID
		var actorID uuid.NullUUID
		var payloadJSON []byte

		err = rows.Scan(
			&id,
			&actorID,
			&event.ActorRole,
			&event.EntityType,
			&entityID,
			&event.EventName,
			&payloadJSON,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		event.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		event.EntityID, err = kernel.UUIDFromBytes(entityID[:])
		if err != nil {
			return nil, err
		}
		event.ActorID, err = optionalUUID(actorID)
		if err != nil {
			return nil, err
		}

		if len(payloadJSON) > 0 {
			if err = json.Unmarshal(payloadJSON, &event.Payload); err != nil {
				return nil, err
			}
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// optionalUUID converts a nullable database UUID into an optional domain UUID.
func optionalUUID(value uuid.NullUUID) (*kernel.UUID, error) {
	if !value.Valid {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes(value.UUID[:])
	if err != nil {
		return nil, err
	}

	return &id, nil
}
