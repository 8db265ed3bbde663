package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/worlddist/ordering-backend/internal/domain"
	"github.com/worlddist/ordering-backend/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type PaymentIntentRequest struct {
	Amount   int64             `json:"amount"` // minor units (cents)
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req PaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validationf("invalid request body"))
		return
	}

	intent, err := h.paymentService.CreatePaymentIntent(r.Context(), req.Amount, req.Currency, req.Metadata)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.IntentID,
	})
}

// Webhook acknowledges gateway events without processing them.
// Signature verification and status transitions are not implemented.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"received": true})
}
