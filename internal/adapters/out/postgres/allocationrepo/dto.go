// Package allocationrepo provides data transfer objects and mapping functions
// for allocation persistence. This package implements the repository pattern
// for the allocation domain aggregate, handling the conversion between domain
// entities and database representations.
package allocationrepo

import (
	"encoding/json"
	"time"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AllocationDTO represents the database structure for persisting allocation
// aggregates. Statuses and plans are stored as their wire strings so rows
// stay readable in ad-hoc SQL, and the flexible sub-documents (cut sheet,
// address, frozen pricing) live in JSONB columns.
type AllocationDTO struct {
	ID                       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BuyerID                  uuid.UUID  `gorm:"type:uuid;index"`
	Plan                     string     `gorm:"type:varchar(16)"`
	Status                   string     `gorm:"type:varchar(32);index"`
	WindowStart              time.Time
	WindowEnd                time.Time
	HangingWeightLbs         float64
	BoxedWeightLbs           float64
	CutsPreferences          datatypes.JSON
	StorageCapacityConfirmed bool
	ShippingAddress          datatypes.JSON
	PricingSnapshot          datatypes.JSON
	CheckoutSessionID        string     `gorm:"type:varchar(255);index"`
	PaymentIntentID          string     `gorm:"type:varchar(255)"`
	AssignedRancherID        *uuid.UUID `gorm:"type:uuid;index"`
	AssignedProcessorID      *uuid.UUID `gorm:"type:uuid"`
	RouteID                  *uuid.UUID `gorm:"type:uuid;index"`
	DeliveredAt              *time.Time
	CreatedAt                time.Time
}

// TableName specifies the database table name for allocation entities.
// Overrides GORM's default naming convention to use "allocations".
func (AllocationDTO) TableName() string {
	return "allocations"
}

// fromDomain converts an allocation domain aggregate to its database
// representation. The JSON sub-documents are marshaled here; a nil shipping
// address becomes a NULL column rather than a JSON null.
func fromDomain(aggregate *allocation.AllocationIntent) (AllocationDTO, error) {
	cuts, err := json.Marshal(aggregate.CutsPreferences())
	if err != nil {
		return AllocationDTO{}, err
	}

	var address datatypes.JSON
	if aggregate.ShippingAddress() != nil {
		raw, addrErr := json.Marshal(aggregate.ShippingAddress())
		if addrErr != nil {
			return AllocationDTO{}, addrErr
		}
		address = raw
	}

	var pricing datatypes.JSON
	if !aggregate.PricingSnapshot().IsZero() {
		raw, priceErr := json.Marshal(aggregate.PricingSnapshot())
		if priceErr != nil {
			return AllocationDTO{}, priceErr
		}
		pricing = raw
	}

	return AllocationDTO{
		ID:                       aggregate.ID().Bytes(),
		BuyerID:                  aggregate.BuyerID().Bytes(),
		Plan:                     aggregate.Plan().String(),
		Status:                   aggregate.Status().String(),
		WindowStart:              aggregate.WindowStart(),
		WindowEnd:                aggregate.WindowEnd(),
		HangingWeightLbs:         aggregate.HangingWeightLbs(),
		BoxedWeightLbs:           aggregate.BoxedWeightLbs(),
		CutsPreferences:          cuts,
		StorageCapacityConfirmed: aggregate.StorageCapacityConfirmed(),
		ShippingAddress:          address,
		PricingSnapshot:          pricing,
		CheckoutSessionID:        aggregate.CheckoutSessionID(),
		PaymentIntentID:          aggregate.PaymentIntentID(),
		AssignedRancherID:        optionalBytes(aggregate.AssignedRancherID()),
		AssignedProcessorID:      optionalBytes(aggregate.AssignedProcessorID()),
		RouteID:                  optionalBytes(aggregate.RouteID()),
		DeliveredAt:              aggregate.DeliveredAt(),
		CreatedAt:                aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to an allocation domain aggregate.
// Reconstructs the complete aggregate including the frozen pricing snapshot
// using RestoreAllocationIntent.
func toDomain(dto AllocationDTO) (*allocation.AllocationIntent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	plan, err := allocation.PlanFromString(dto.Plan)
	if err != nil {
		return nil, err
	}
	status, err := allocation.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var cuts map[string]string
	if len(dto.CutsPreferences) > 0 {
		if err = json.Unmarshal(dto.CutsPreferences, &cuts); err != nil {
			return nil, err
		}
	}

	var address *allocation.ShippingAddress
	if len(dto.ShippingAddress) > 0 {
		var parsed allocation.ShippingAddress
		if err = json.Unmarshal(dto.ShippingAddress, &parsed); err != nil {
			return nil, err
		}
		address = &parsed
	}

	var snapshot allocation.PricingSnapshot
	if len(dto.PricingSnapshot) > 0 {
		if err = json.Unmarshal(dto.PricingSnapshot, &snapshot); err != nil {
			return nil, err
		}
	}

	rancherID, err := optionalUUID(dto.AssignedRancherID)
	if err != nil {
		return nil, err
	}
	processorID, err := optionalUUID(dto.AssignedProcessorID)
	if err != nil {
		return nil, err
	}
	routeID, err := optionalUUID(dto.RouteID)
	if err != nil {
		return nil, err
	}

	return allocation.RestoreAllocationIntent(allocation.RestoreAllocationIntentArgs{
		ID:                       id,
		BuyerID:                  buyerID,
		Plan:                     plan,
		Status:                   status,
		WindowStart:              dto.WindowStart,
		WindowEnd:                dto.WindowEnd,
		HangingWeightLbs:         dto.HangingWeightLbs,
		BoxedWeightLbs:           dto.BoxedWeightLbs,
		CutsPreferences:          cuts,
		StorageCapacityConfirmed: dto.StorageCapacityConfirmed,
		ShippingAddress:          address,
		PricingSnapshot:          snapshot,
		CheckoutSessionID:        dto.CheckoutSessionID,
		PaymentIntentID:          dto.PaymentIntentID,
		AssignedRancherID:        rancherID,
		AssignedProcessorID:      processorID,
		RouteID:                  routeID,
		DeliveredAt:              dto.DeliveredAt,
		CreatedAt:                dto.CreatedAt,
	})
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
