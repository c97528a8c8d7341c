package commands

import (
	"context"
	"errors"
	"time"

	"herdshare/internal/core/domain/model/account"
	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/domain/model/eventlog"
	"herdshare/internal/core/domain/model/geo"
	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/core/domain/model/pricing"
	"herdshare/internal/core/domain/services"
	"herdshare/internal/pkg/errs"
)

// CreateAllocationCommandHandler handles the business logic for reserving a
// share: it resolves the geo surcharge from the shipping ZIP, freezes the
// pricing snapshot, and records the creation in the audit trail, all in one
// transaction.
//
// Example:
//
//	handler := NewCreateAllocationCommandHandler(uowFactory, 2.9)
//	cmd, _ := NewCreateAllocationCommand(id, buyerID, allocation.Quarter,
//	    windowStart, windowEnd, 0, nil, true, &address)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("allocation creation failed: %w", err)
//	}
//	// Allocation is now in DRAFT with a frozen pricing snapshot
type CreateAllocationCommandHandler struct {
	uowFactory     CreateAllocationUoWFactory
	calculator     services.PricingCalculator
	planner        services.RoutePlanner
	taxRatePercent float64
}

// NewCreateAllocationCommandHandler creates a handler for allocation creation.
// taxRatePercent applies to every allocation; zero disables tax.
func NewCreateAllocationCommandHandler(
	uowFactory CreateAllocationUoWFactory,
	taxRatePercent float64,
) CreateAllocationCommandHandler {
	return CreateAllocationCommandHandler{
		uowFactory:     uowFactory,
		calculator:     services.NewPricingCalculator(),
		planner:        services.NewRoutePlanner(),
		taxRatePercent: taxRatePercent,
	}
}

// Handle processes the allocation creation command.
// The pricing snapshot is computed once here and never recomputed; checkout
// charges exactly this total regardless of later price card changes.
func (h *CreateAllocationCommandHandler) Handle(ctx context.Context, cmd CreateAllocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	intent, err := allocation.NewAllocationIntent(
		cmd.AllocationID(),
		cmd.BuyerID(),
		cmd.Plan(),
		cmd.WindowStart(),
		cmd.WindowEnd(),
		cmd.HangingWeightLbs(),
		cmd.CutsPreferences(),
		cmd.StorageCapacityConfirmed(),
		cmd.ShippingAddress(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	surcharge, err := h.resolveSurcharge(ctx, uow, cmd.ShippingAddress())
	if err != nil {
		return err
	}

	rate, err := h.resolveRate(ctx, uow, cmd.Plan())
	if err != nil {
		return err
	}

	snapshot := h.calculator.Calculate(
		cmd.Plan(), cmd.HangingWeightLbs(), rate, surcharge, h.taxRatePercent)
	if err = intent.SetPricingSnapshot(snapshot); err != nil {
		return err
	}

	if err = uow.AllocationRepository().Add(ctx, intent); err != nil {
		return err
	}

	allocationID := intent.ID()
	buyerID := intent.BuyerID()
	entry, err := eventlog.NewEntry(
		kernel.NewUUID(), &buyerID, account.Buyer,
		"allocation", allocationID, "allocation_created",
		map[string]any{
			"plan":       intent.Plan().String(),
			"totalCents": snapshot.Total,
		},
		&allocationID,
	)
	if err != nil {
		return err
	}

	if err = uow.EventLogRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// resolveSurcharge matches the shipping ZIP to the first active cluster.
// A missing address or unmatched ZIP falls back to the MEDIUM tier surcharge.
func (h *CreateAllocationCommandHandler) resolveSurcharge(
	ctx context.Context,
	uow CreateAllocationUoW,
	address *allocation.ShippingAddress,
) (int64, error) {
	if address == nil || address.Zip == "" {
		return geo.FallbackSurchargePerLb(), nil
	}

	zip, err := kernel.NewZipCode(address.Zip)
	if err != nil {
		return 0, err
	}

	clusters, err := uow.ClusterRepository().GetAllActive(ctx)
	if err != nil {
		return 0, err
	}

	cluster := h.planner.ResolveCluster(zip, clusters)
	if cluster == nil {
		return geo.FallbackSurchargePerLb(), nil
	}
	return cluster.SurchargePerLb(), nil
}

// resolveRate prefers the stored price card covering now and falls back to
// the hardcoded defaults when none does.
func (h *CreateAllocationCommandHandler) resolveRate(
	ctx context.Context,
	uow CreateAllocationUoW,
	plan allocation.ProductPlan,
) (pricing.PlanRate, error) {
	config, err := uow.PricingConfigRepository().GetCovering(ctx, time.Now().UTC())
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return pricing.DefaultRate(plan), nil
		}
		return pricing.PlanRate{}, err
	}
	return config.Rate(plan), nil
}
