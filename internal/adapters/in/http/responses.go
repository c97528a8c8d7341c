package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"herdshare/internal/core/application/usecases/commands"
	"herdshare/internal/core/application/usecases/queries"
	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/pkg/errs"
)

// errorResponse is the error body for every non-2xx response. Allowed is
// populated only for rejected status transitions.
type errorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Allowed []string `json:"allowed,omitempty"`
}

// writeError maps an application error onto an HTTP response. Validation
// failures are 400, missing objects 404, everything unclassified 500 with a
// generic message so internals never leak to callers.
func writeError(ctx echo.Context, err error) error {
	var transition *allocation.StatusTransitionError
	if errors.As(err, &transition) {
		allowed := make([]string, len(transition.Allowed))
		for i, status := range transition.Allowed {
			allowed[i] = status.String()
		}
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: transition.Error(),
			Allowed: allowed,
		})
	}

	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}

	// Ownership is answered with 404, not 403, so ids stay unguessable.
	if errors.Is(err, commands.ErrNotAllocationOwner) {
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "Allocation not found",
		})
	}

	if errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange) ||
		errors.Is(err, commands.ErrNoClusterForAllocation) ||
		errors.Is(err, allocation.ErrPricingNotCalculated) ||
		errors.Is(err, allocation.ErrCheckoutSessionIsRequired) ||
		errors.Is(err, allocation.ErrPricingSnapshotIsImmutable) {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return ctx.JSON(http.StatusInternalServerError, errorResponse{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}

// writeBadRequest responds 400 with the given message.
func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

type allocationSummaryResponse struct {
	ID               string    `json:"id"`
	Plan             string    `json:"plan"`
	Status           string    `json:"status"`
	WindowStart      time.Time `json:"windowStart"`
	WindowEnd        time.Time `json:"windowEnd"`
	HangingWeightLbs float64   `json:"hangingWeightLbs"`
	BoxedWeightLbs   float64   `json:"boxedWeightLbs"`
	TotalCents       int64     `json:"totalCents"`
	CreatedAt        time.Time `json:"createdAt"`
}

func toSummaryResponse(row queries.AllocationSummary) allocationSummaryResponse {
	return allocationSummaryResponse{
		ID:               row.ID.String(),
		Plan:             row.Plan,
		Status:           row.Status,
		WindowStart:      row.WindowStart,
		WindowEnd:        row.WindowEnd,
		HangingWeightLbs: row.HangingWeightLbs,
		BoxedWeightLbs:   row.BoxedWeightLbs,
		TotalCents:       row.TotalCents,
		CreatedAt:        row.CreatedAt,
	}
}

func toSummaryResponses(rows []queries.AllocationSummary) []allocationSummaryResponse {
	response := make([]allocationSummaryResponse, len(rows))
	for i, row := range rows {
		response[i] = toSummaryResponse(row)
	}
	return response
}

type checkpointResponse struct {
	ID           string    `json:"id"`
	AllocationID string    `json:"allocationId"`
	Kind         string    `json:"kind"`
	Verdict      string    `json:"verdict"`
	ValueCelsius *float64  `json:"valueCelsius,omitempty"`
	DocumentRef  string    `json:"documentRef,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	RecordedBy   string    `json:"recordedBy"`
	RecordedAt   time.Time `json:"recordedAt"`
}

func toCheckpointResponses(rows []queries.CheckpointRow) []checkpointResponse {
	response := make([]checkpointResponse, len(rows))
	for i, row := range rows {
		response[i] = checkpointResponse{
			ID:           row.ID.String(),
			AllocationID: row.AllocationID.String(),
			Kind:         row.Kind,
			Verdict:      row.Verdict,
			ValueCelsius: row.ValueCelsius,
			DocumentRef:  row.DocumentRef,
			Notes:        row.Notes,
			RecordedBy:   row.RecordedBy.String(),
			RecordedAt:   row.RecordedAt,
		}
	}
	return response
}

type eventResponse struct {
	ID        string         `json:"id"`
	ActorID   *string        `json:"actorId,omitempty"`
	ActorRole string         `json:"actorRole"`
	EventName string         `json:"eventName"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toEventResponses(rows []queries.EventRow) []eventResponse {
	response := make([]eventResponse, len(rows))
	for i, row := range rows {
		var actorID *string
		if row.ActorID != nil {
			id := row.ActorID.String()
			actorID = &id
		}
		response[i] = eventResponse{
			ID:        row.ID.String(),
			ActorID:   actorID,
			ActorRole: row.ActorRole,
			EventName: row.EventName,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		}
	}
	return response
}

type allocationDetailResponse struct {
	allocationSummaryResponse

	BuyerID                  string                      `json:"buyerId"`
	CutsPreferences          map[string]string           `json:"cutsPreferences,omitempty"`
	StorageCapacityConfirmed bool                        `json:"storageCapacityConfirmed"`
	ShippingAddress          *allocation.ShippingAddress `json:"shippingAddress,omitempty"`
	Pricing                  *allocation.PricingSnapshot `json:"pricing,omitempty"`
	AssignedRancherID        *string                     `json:"assignedRancherId,omitempty"`
	RouteID                  *string                     `json:"routeId,omitempty"`
	DeliveredAt              *time.Time                  `json:"deliveredAt,omitempty"`
	Checkpoints              []checkpointResponse        `json:"checkpoints"`
	Events                   []eventResponse             `json:"events"`
}

func toDetailResponse(detail queries.AllocationDetail) allocationDetailResponse {
	var total int64
	if detail.Pricing != nil {
		total = detail.Pricing.Total
	}

	var rancherID, routeID *string
	if detail.AssignedRancherID != nil {
		id := detail.AssignedRancherID.String()
		rancherID = &id
	}
	if detail.RouteID != nil {
		id := detail.RouteID.String()
		routeID = &id
	}

	return allocationDetailResponse{
		allocationSummaryResponse: allocationSummaryResponse{
			ID:               detail.ID.String(),
			Plan:             detail.Plan,
			Status:           detail.Status,
			WindowStart:      detail.WindowStart,
			WindowEnd:        detail.WindowEnd,
			HangingWeightLbs: detail.HangingWeightLbs,
			BoxedWeightLbs:   detail.BoxedWeightLbs,
			TotalCents:       total,
			CreatedAt:        detail.CreatedAt,
		},
		BuyerID:                  detail.BuyerID.String(),
		CutsPreferences:          detail.CutsPreferences,
		StorageCapacityConfirmed: detail.StorageCapacityConfirmed,
		ShippingAddress:          detail.ShippingAddress,
		Pricing:                  detail.Pricing,
		AssignedRancherID:        rancherID,
		RouteID:                  routeID,
		DeliveredAt:              detail.DeliveredAt,
		Checkpoints:              toCheckpointResponses(detail.Checkpoints),
		Events:                   toEventResponses(detail.Events),
	}
}

type commitmentResponse struct {
	ID                 string    `json:"id"`
	RancherID          string    `json:"rancherId"`
	PeriodStart        time.Time `json:"periodStart"`
	PeriodEnd          time.Time `json:"periodEnd"`
	HeadCount          int       `json:"headCount"`
	EstimatedWeightLbs float64   `json:"estimatedWeightLbs"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
}

func toCommitmentResponses(rows []queries.CommitmentRow) []commitmentResponse {
	response := make([]commitmentResponse, len(rows))
	for i, row := range rows {
		response[i] = commitmentResponse{
			ID:                 row.ID.String(),
			RancherID:          row.RancherID.String(),
			PeriodStart:        row.PeriodStart,
			PeriodEnd:          row.PeriodEnd,
			HeadCount:          row.HeadCount,
			EstimatedWeightLbs: row.EstimatedWeightLbs,
			Status:             row.Status,
			CreatedAt:          row.CreatedAt,
		}
	}
	return response
}

type demandResponse struct {
	Plan             string  `json:"plan"`
	Count            int64   `json:"count"`
	HangingWeightLbs float64 `json:"hangingWeightLbs"`
}

func toDemandResponses(rows []queries.DemandByPlan) []demandResponse {
	response := make([]demandResponse, len(rows))
	for i, row := range rows {
		response[i] = demandResponse(row)
	}
	return response
}
