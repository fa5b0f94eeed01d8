package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"ev-rental-backend/internal/logger"
	"ev-rental-backend/internal/service"
)

// webhookSecretHeader carries the shared secret the payment provider sends
// with every capture delivery.
const webhookSecretHeader = "X-Webhook-Secret"

// PaymentHandler exposes payment state. Capture happens at the payment
// provider; this service only learns about it through the webhook.
type PaymentHandler struct {
	gates         service.GateService
	webhookSecret string
}

func NewPaymentHandler(gates service.GateService, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{gates: gates, webhookSecret: webhookSecret}
}

func (h *PaymentHandler) ListByRental(w http.ResponseWriter, r *http.Request) {
	payments, err := h.gates.ListPayments(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

// MarkPaid is the provider-facing capture webhook. Deliveries must carry the
// configured shared secret. Idempotent: repeat deliveries of the same event
// succeed.
func (h *PaymentHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	got := r.Header.Get(webhookSecretHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.webhookSecret)) != 1 {
		logger.Warn("webhook delivery with missing or wrong secret", "payment_id", mux.Vars(r)["id"])
		respondError(w, http.StatusUnauthorized, "invalid_webhook_secret", "missing or invalid webhook secret")
		return
	}

	if err := h.gates.MarkPaymentPaid(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
