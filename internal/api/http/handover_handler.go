package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/service"
)

// HandoverHandler exposes the staff-side handover workflow: gate status,
// contract signing and the check-in submission itself.
type HandoverHandler struct {
	handover service.HandoverService
	gates    service.GateService
}

func NewHandoverHandler(handover service.HandoverService, gates service.GateService) *HandoverHandler {
	return &HandoverHandler{handover: handover, gates: gates}
}

type gateStatusResponse struct {
	ContractSigned bool             `json:"contract_signed"`
	PaymentCleared bool             `json:"payment_cleared"`
	Contract       *domain.Contract `json:"contract"`
	Payments       []domain.Payment `json:"payments"`
}

// GateStatus reports both handover preconditions so the staff console can
// show what still blocks the check-in.
func (h *HandoverHandler) GateStatus(w http.ResponseWriter, r *http.Request) {
	rentalID := mux.Vars(r)["id"]

	contract, err := h.gates.GetContract(r.Context(), rentalID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	payments, err := h.gates.ListPayments(r.Context(), rentalID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	paid := false
	for _, p := range payments {
		if p.Status == domain.PaymentStatusPaid {
			paid = true
			break
		}
	}
	respondJSON(w, http.StatusOK, gateStatusResponse{
		ContractSigned: contract.SignedByStaff,
		PaymentCleared: paid,
		Contract:       contract,
		Payments:       payments,
	})
}

func (h *HandoverHandler) SignContract(w http.ResponseWriter, r *http.Request) {
	ac, _ := AuthFromContext(r.Context())

	contract, err := h.gates.SignContract(r.Context(), ac.UserID, mux.Vars(r)["id"])
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contract)
}

type checkinRequest struct {
	Checklist    domain.CheckinChecklist  `json:"checklist"`
	OdometerKm   *int64                   `json:"odometer_km"`
	BatteryLevel *int                     `json:"battery_level"`
	Note         string                   `json:"note"`
	Photos       []domain.InspectionPhoto `json:"photos"`
}

func (h *HandoverHandler) SubmitCheckin(w http.ResponseWriter, r *http.Request) {
	ac, _ := AuthFromContext(r.Context())

	var req checkinRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.handover.SubmitCheckin(r.Context(), ac.UserID, mux.Vars(r)["id"], service.CheckinInput{
		Checklist:    req.Checklist,
		OdometerKm:   req.OdometerKm,
		BatteryLevel: req.BatteryLevel,
		Note:         req.Note,
		Photos:       req.Photos,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}
