package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/worlddist/ordering-backend/internal/config"
	"github.com/worlddist/ordering-backend/internal/domain"
)

var ErrPaymentUnavailable = &domain.Error{Kind: domain.KindPaymentUnavailable, Message: "payment gateway is not configured"}

// placeholderKeys are credential values left behind by example env
// files; treating them as unconfigured avoids confusing gateway errors.
var placeholderKeys = map[string]struct{}{
	"":                       {},
	"sk_test_placeholder":    {},
	"your_stripe_secret_key": {},
}

// PaymentService bridges checkout to the card gateway's REST API. It
// holds no persistent state; every intent is a single round-trip.
type PaymentService struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewPaymentService(cfg *config.Config) *PaymentService {
	return &PaymentService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type PaymentIntent struct {
	IntentID     string
	ClientSecret string
}

type gatewayIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreatePaymentIntent creates a gateway-side intent for amountMinor
// expressed in the currency's smallest unit. Gateway-reported failures
// surface the gateway's own message as a rejected payment; transport
// and decoding failures stay internal.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	if _, unset := placeholderKeys[s.cfg.StripeSecretKey]; unset {
		return nil, ErrPaymentUnavailable
	}
	if amountMinor <= 0 {
		return nil, domain.Validationf("amount must be a positive number of minor units")
	}
	if currency == "" {
		currency = "eur"
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	endpoint := s.cfg.StripeAPIURL + "/v1/payment_intents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build payment intent request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.StripeSecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	var body gatewayIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode payment gateway response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if body.Error != nil && body.Error.Message != "" {
			return nil, &domain.Error{Kind: domain.KindPaymentRejected, Message: body.Error.Message}
		}
		return nil, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	return &PaymentIntent{
		IntentID:     body.ID,
		ClientSecret: body.ClientSecret,
	}, nil
}
