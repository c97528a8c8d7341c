package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"herdshare/internal/core/application/usecases/commands"
)

// signatureHeader carries the provider's payload signature on webhook calls.
const signatureHeader = "Payment-Signature"

// paymentEventEnvelope is the provider's webhook document. Only the fields
// the application consumes are mapped.
type paymentEventEnvelope struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string `json:"id"`
			PaymentIntent string `json:"payment_intent"`
		} `json:"object"`
	} `json:"data"`
}

// PaymentWebhook handles POST /api/v1/webhooks/payment - processes payment
// provider events. The signature is verified against the raw body before any
// parsing; unverified payloads are never processed.
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return writeBadRequest(ctx, "Failed to read request body")
	}

	if err = s.gateway.VerifySignature(payload, ctx.Request().Header.Get(signatureHeader)); err != nil {
		return writeBadRequest(ctx, "Invalid webhook signature")
	}

	var event paymentEventEnvelope
	if err = json.Unmarshal(payload, &event); err != nil {
		return writeBadRequest(ctx, "Invalid webhook payload")
	}

	// For session-level events data.object is the checkout session; for
	// payment-level events it is the payment intent itself, so the object id
	// is the payment reference and no session id is present.
	sessionID, paymentIntentID := event.Data.Object.ID, event.Data.Object.PaymentIntent
	switch event.Type {
	case commands.EventPaymentIntentSucceeded, commands.EventPaymentIntentFailed:
		sessionID, paymentIntentID = "", event.Data.Object.ID
	}

	cmd, err := commands.NewProcessPaymentEventCommand(event.Type, sessionID, paymentIntentID)
	if err != nil {
		return writeBadRequest(ctx, "Invalid webhook event: "+err.Error())
	}

	if handleErr := s.processPaymentEventHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}
