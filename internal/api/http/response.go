package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ev-rental-backend/internal/domain"
	"ev-rental-backend/internal/logger"
)

// errorBody is the structured error every handler returns. Remediation is
// set for recoverable workflow states so the front-end can offer the right
// next action instead of a generic failure message.
type errorBody struct {
	Error       string `json:"error"`
	Code        string `json:"code"`
	Remediation string `json:"remediation,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("encode response failed", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorBody{Error: message, Code: code})
}

// respondDomainError maps workflow errors onto HTTP statuses. Validation and
// duration problems are the caller's to fix (400); unsatisfied gates and lost
// transition races are expected workflow states (409) with a remediation
// hint; a missing detail record is a data-integrity fault, not a client
// error.
func respondDomainError(w http.ResponseWriter, err error) {
	var gateErr *domain.GateUnsatisfiedError
	var valErr *domain.ValidationError

	switch {
	case errors.As(err, &valErr):
		respondJSON(w, http.StatusBadRequest, errorBody{
			Error: valErr.Error(),
			Code:  "validation_error",
		})
	case errors.Is(err, domain.ErrInvalidDuration):
		respondJSON(w, http.StatusBadRequest, errorBody{
			Error: err.Error(),
			Code:  "invalid_duration",
		})
	case errors.As(err, &gateErr):
		respondJSON(w, http.StatusConflict, errorBody{
			Error:       gateErr.Error(),
			Code:        fmt.Sprintf("gate_unsatisfied_%s", gateErr.Gate),
			Remediation: gateRemediation(gateErr.Gate),
		})
	case errors.Is(err, domain.ErrInvalidStateTransition):
		respondJSON(w, http.StatusConflict, errorBody{
			Error:       err.Error(),
			Code:        "invalid_state_transition",
			Remediation: "refresh the order and retry from its current status",
		})
	case errors.Is(err, domain.ErrFeedbackExists):
		respondJSON(w, http.StatusConflict, errorBody{
			Error: err.Error(),
			Code:  "feedback_exists",
		})
	// Ownership violations respond as not-found so a renter cannot probe
	// which order ids exist.
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrContractNotFound),
		errors.Is(err, domain.ErrNotOwner):
		respondJSON(w, http.StatusNotFound, errorBody{
			Error: err.Error(),
			Code:  "not_found",
		})
	case errors.Is(err, domain.ErrDetailNotFound):
		logger.Error("rental order missing detail record", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{
			Error: err.Error(),
			Code:  "integrity_fault",
		})
	default:
		logger.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func gateRemediation(gate string) string {
	switch gate {
	case domain.GateContract:
		return "sign the rental contract before handover"
	case domain.GatePayment:
		return "the deposit payment must clear before handover"
	default:
		return ""
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return false
	}
	return true
}
