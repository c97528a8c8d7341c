// Package payments implements the payment gateway port against a hosted
// checkout provider. The adapter covers exactly two concerns: opening a
// checkout session for an allocation's frozen total, and verifying webhook
// signatures so unverified payloads never reach the application layer.
package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/core/ports"
	"herdshare/internal/pkg/errs"
)

var (
	// ErrSignatureInvalid is returned when a webhook signature is missing,
	// malformed, stale, or does not match the payload.
	ErrSignatureInvalid = errors.New("webhook signature is invalid")

	// ErrSessionCreationFailed is returned when the provider rejects a
	// checkout session request.
	ErrSessionCreationFailed = errors.New("checkout session creation failed")
)

// signatureTolerance bounds the accepted age of a signed webhook payload.
// Older timestamps are treated as replays.
const signatureTolerance = 5 * time.Minute

// Gateway talks to the hosted checkout provider over its HTTP API.
type Gateway struct {
	baseURL       string
	secretKey     string
	webhookSecret string
	successURL    string
	cancelURL     string
	httpClient    *http.Client

	now func() time.Time
}

// Config carries the provider credentials and redirect targets.
type Config struct {
	BaseURL       string
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

// NewGateway creates a payment gateway adapter.
func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("payment base url")
	}
	if cfg.SecretKey == "" {
		return nil, errs.NewValueIsRequiredError("payment secret key")
	}
	if cfg.WebhookSecret == "" {
		return nil, errs.NewValueIsRequiredError("payment webhook secret")
	}

	return &Gateway{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		now:           time.Now,
	}, nil
}

// sessionResponse is the provider's checkout session document. Only the
// fields the application consumes are mapped.
type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession opens a hosted checkout for the allocation's frozen
// total. The allocation id travels in the session metadata so webhook events
// can be correlated even without the stored session id.
func (g *Gateway) CreateCheckoutSession(
	ctx context.Context,
	intent *allocation.AllocationIntent,
) (ports.CheckoutSession, error) {
	if err := intent.Validate(); err != nil {
		return ports.CheckoutSession{}, err
	}

	snapshot := intent.PricingSnapshot()
	if snapshot.IsZero() {
		return ports.CheckoutSession{}, allocation.ErrPricingNotCalculated
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(snapshot.Total, 10))
	form.Set("line_items[0][price_data][product_data][name]",
		fmt.Sprintf("%s beef share, %.0f lbs hanging", intent.Plan(), snapshot.EstimatedWeightLbs))
	form.Set("line_items[0][quantity]", "1")
	form.Set("metadata[allocation_id]", intent.ID().String())
	form.Set("success_url", g.successURL)
	form.Set("cancel_url", g.cancelURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return ports.CheckoutSession{}, err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return ports.CheckoutSession{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.CheckoutSession{}, fmt.Errorf("%w: provider returned %d",
			ErrSessionCreationFailed, resp.StatusCode)
	}

	var session sessionResponse
	if err = json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return ports.CheckoutSession{}, err
	}
	if session.ID == "" {
		return ports.CheckoutSession{}, fmt.Errorf("%w: response carries no session id",
			ErrSessionCreationFailed)
	}

	return ports.CheckoutSession{
		ID:          session.ID,
		RedirectURL: session.URL,
	}, nil
}

// VerifySignature checks a webhook payload against its signature header.
// The header carries a unix timestamp and an HMAC-SHA256 of
// "<timestamp>.<payload>" keyed with the webhook secret, in the form
// "t=<unix>,v1=<hex>". Stale timestamps are rejected as replays.
func (g *Gateway) VerifySignature(payload []byte, signatureHeader string) error {
	timestamp, signatures, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return err
	}

	age := g.now().Sub(time.Unix(timestamp, 0))
	if age > signatureTolerance || age < -signatureTolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", ErrSignatureInvalid)
	}

	expected := computeSignature(g.webhookSecret, timestamp, payload)
	for _, candidate := range signatures {
		if hmac.Equal([]byte(candidate), []byte(expected)) {
			return nil
		}
	}
	return fmt.Errorf("%w: no matching signature", ErrSignatureInvalid)
}

// parseSignatureHeader splits "t=<unix>,v1=<hex>[,v1=<hex>...]" into its
// timestamp and candidate signatures. Multiple v1 entries appear during
// webhook secret rotation.
func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, fmt.Errorf("%w: header is missing", ErrSignatureInvalid)
	}

	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return 0, nil, fmt.Errorf("%w: malformed header element %q", ErrSignatureInvalid, part)
		}

		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("%w: malformed timestamp", ErrSignatureInvalid)
			}
			timestamp = parsed
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("%w: header lacks timestamp or signature", ErrSignatureInvalid)
	}
	return timestamp, signatures, nil
}

// computeSignature returns the hex HMAC-SHA256 of "<timestamp>.<payload>".
func computeSignature(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
