package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/service"
)

type ReturnHandler struct {
	returns service.ReturnService
}

func NewReturnHandler(returns service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returns: returns}
}

// Quote previews the late fee for a return happening now (or at ?at=RFC3339).
func (h *ReturnHandler) Quote(w http.ResponseWriter, r *http.Request) {
	at := time.Now()
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "bad_request", "at must be an RFC3339 timestamp")
			return
		}
		at = parsed
	}

	quote, err := h.returns.QuoteCheckout(r.Context(), mux.Vars(r)["id"], at)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

type checkoutRequest struct {
	Checklist          domain.CheckoutChecklist `json:"checklist"`
	OdometerKm         *int64                   `json:"odometer_km"`
	BatteryLevel       *int                     `json:"battery_level"`
	AdditionalFeeCents int64                    `json:"additional_fee_cents"`
	FeeJustification   string                   `json:"fee_justification"`
	Note               string                   `json:"note"`
	Photos             []domain.InspectionPhoto `json:"photos"`
}

func (h *ReturnHandler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	ac, _ := AuthFromContext(r.Context())

	var req checkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.returns.SubmitCheckout(r.Context(), ac.UserID, mux.Vars(r)["id"], service.CheckoutInput{
		Checklist:          req.Checklist,
		OdometerKm:         req.OdometerKm,
		BatteryLevel:       req.BatteryLevel,
		AdditionalFeeCents: req.AdditionalFeeCents,
		FeeJustification:   req.FeeJustification,
		Note:               req.Note,
		Photos:             req.Photos,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}
