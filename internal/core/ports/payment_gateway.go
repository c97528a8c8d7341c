package ports

import (
	"context"

	"herdshare/internal/core/domain/model/allocation"
)

// CheckoutSession is the payment provider's hosted-checkout handle for one
// allocation's total.
type CheckoutSession struct {
	ID          string
	RedirectURL string
}

// PaymentGateway defines the contract to the external payment provider.
// The domain never talks to the provider directly; webhook signature
// verification also lives behind this port so handlers stay testable.
type PaymentGateway interface {
	// CreateCheckoutSession opens a hosted checkout for the allocation's
	// frozen total and returns the provider's session handle.
	CreateCheckoutSession(ctx context.Context, intent *allocation.AllocationIntent) (CheckoutSession, error)

	// VerifySignature checks a webhook payload against its signature header.
	// Returns an error when the signature is missing, malformed, or does not
	// match; the payload must not be processed in that case.
	VerifySignature(payload []byte, signatureHeader string) error
}
